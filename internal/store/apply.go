package store

import (
	"log/slog"

	"gitwise/internal/models"
	"gitwise/internal/observability"
)

// Apply produces the next state for one action. It never mutates its
// input. An unrecognized action is logged and returns the state
// unchanged rather than crashing the update cycle.
func Apply(s State, a Action) State {
	next := s.Clone()

	switch act := a.(type) {
	case SetUser:
		next.User = act.User
		next.Token = act.Token

	case Logout:
		next.User = nil
		next.Token = ""
		next.Favorites = make(map[uint]*models.Favorite)
		next.FavoriteByUserPost = make(map[UserPost]uint)

	case SetPosts:
		next.Posts = make(map[uint]*models.Post, len(act.Posts))
		next.PostOrder = next.PostOrder[:0]
		for _, p := range act.Posts {
			if _, seen := next.Posts[p.ID]; seen {
				continue
			}
			cp := p
			next.Posts[p.ID] = &cp
			next.PostOrder = append(next.PostOrder, p.ID)
		}

	case AddPosts:
		for _, p := range act.Posts {
			if _, seen := next.Posts[p.ID]; seen {
				continue
			}
			cp := p
			next.Posts[p.ID] = &cp
			next.PostOrder = append(next.PostOrder, p.ID)
		}

	case AddPost:
		cp := act.Post
		if _, seen := next.Posts[cp.ID]; !seen {
			next.PostOrder = append([]uint{cp.ID}, next.PostOrder...)
		}
		next.Posts[cp.ID] = &cp

	case EditPost:
		if _, ok := next.Posts[act.Post.ID]; ok {
			cp := act.Post
			next.Posts[act.Post.ID] = &cp
		}

	case DeletePost:
		delete(next.Posts, act.ID)
		next.PostOrder = removeID(next.PostOrder, act.ID)
		for _, cid := range next.CommentsByPost[act.ID] {
			delete(next.Comments, cid)
		}
		delete(next.CommentsByPost, act.ID)
		for id, l := range next.Likes {
			if l.PostID == act.ID {
				delete(next.LikeByUserPost, UserPost{UserID: l.UserID, PostID: l.PostID})
				delete(next.Likes, id)
			}
		}
		for id, f := range next.Favorites {
			if f.PostID == act.ID {
				delete(next.FavoriteByUserPost, UserPost{UserID: f.UserID, PostID: f.PostID})
				delete(next.Favorites, id)
			}
		}

	case SetComments:
		for _, cid := range next.CommentsByPost[act.PostID] {
			delete(next.Comments, cid)
		}
		ids := make([]uint, 0, len(act.Comments))
		for _, c := range act.Comments {
			if _, seen := next.Comments[c.ID]; seen {
				continue
			}
			cc := c
			next.Comments[c.ID] = &cc
			ids = append(ids, c.ID)
		}
		next.CommentsByPost[act.PostID] = ids

	case AddComment:
		cc := act.Comment
		if _, seen := next.Comments[cc.ID]; !seen {
			next.CommentsByPost[cc.PostID] = append(next.CommentsByPost[cc.PostID], cc.ID)
		}
		next.Comments[cc.ID] = &cc

	case DeleteComment:
		if c, ok := next.Comments[act.ID]; ok {
			next.CommentsByPost[c.PostID] = removeID(next.CommentsByPost[c.PostID], act.ID)
			delete(next.Comments, act.ID)
		}

	case UpdateCommentLikes:
		if c, ok := next.Comments[act.CommentID]; ok {
			c.HasLiked = act.HasLiked
			if act.LikeCount != nil {
				c.LikeCount = *act.LikeCount
			}
		}

	case SetLikes:
		next.Likes = make(map[uint]*models.Like, len(act.Likes))
		next.LikeByUserPost = make(map[UserPost]uint, len(act.Likes))
		for _, l := range act.Likes {
			upsertLike(&next, l)
		}

	case AddLike:
		upsertLike(&next, act.Like)

	case DeleteLike:
		if l, ok := next.Likes[act.ID]; ok {
			delete(next.LikeByUserPost, UserPost{UserID: l.UserID, PostID: l.PostID})
			delete(next.Likes, act.ID)
		}

	case SetFavorites:
		next.Favorites = make(map[uint]*models.Favorite, len(act.Favorites))
		next.FavoriteByUserPost = make(map[UserPost]uint, len(act.Favorites))
		for _, f := range act.Favorites {
			upsertFavorite(&next, f)
		}

	case AddFavorite:
		upsertFavorite(&next, act.Favorite)

	case DeleteFavoriteByPost:
		key := UserPost{UserID: act.UserID, PostID: act.PostID}
		if id, ok := next.FavoriteByUserPost[key]; ok {
			delete(next.Favorites, id)
			delete(next.FavoriteByUserPost, key)
		}

	case ReplaceLikeID:
		if l, ok := next.Likes[act.OldID]; ok && act.NewID != act.OldID {
			l.ID = act.NewID
			next.Likes[act.NewID] = l
			delete(next.Likes, act.OldID)
			next.LikeByUserPost[UserPost{UserID: l.UserID, PostID: l.PostID}] = act.NewID
		}

	case ReplaceFavoriteID:
		if f, ok := next.Favorites[act.OldID]; ok && act.NewID != act.OldID {
			f.ID = act.NewID
			next.Favorites[act.NewID] = f
			delete(next.Favorites, act.OldID)
			next.FavoriteByUserPost[UserPost{UserID: f.UserID, PostID: f.PostID}] = act.NewID
		}

	default:
		observability.GlobalLogger.Warn("ignoring unknown store action",
			slog.String("action", Name(a)),
		)
	}

	return next
}

// upsertLike inserts a like, replacing any existing record on the same
// (user, post) pair so the pair uniqueness invariant always holds.
func upsertLike(s *State, l models.Like) {
	key := UserPost{UserID: l.UserID, PostID: l.PostID}
	if existing, ok := s.LikeByUserPost[key]; ok && existing != l.ID {
		delete(s.Likes, existing)
	}
	cl := l
	s.Likes[l.ID] = &cl
	s.LikeByUserPost[key] = l.ID
}

func upsertFavorite(s *State, f models.Favorite) {
	key := UserPost{UserID: f.UserID, PostID: f.PostID}
	if existing, ok := s.FavoriteByUserPost[key]; ok && existing != f.ID {
		delete(s.Favorites, existing)
	}
	cf := f
	s.Favorites[f.ID] = &cf
	s.FavoriteByUserPost[key] = f.ID
}

func removeID(ids []uint, id uint) []uint {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
