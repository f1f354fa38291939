// Package store holds the client-side mirror of server entities: a
// typed state container updated by pure transitions, plus the
// versioned snapshot persistence that survives restarts.
package store

import (
	"sort"

	"gitwise/internal/models"
)

// UserPost keys the per-pair engagement indexes. At most one like and
// one favorite may exist per pair.
type UserPost struct {
	UserID uint
	PostID uint
}

// State is the full client-side mirror. Entities live in maps keyed by
// id; ordering and foreign-key association are kept in explicit
// indexes instead of being recomputed by scanning.
type State struct {
	User  *models.User
	Token string

	Posts     map[uint]*models.Post
	PostOrder []uint

	Comments       map[uint]*models.Comment
	CommentsByPost map[uint][]uint

	Likes          map[uint]*models.Like
	LikeByUserPost map[UserPost]uint

	Favorites          map[uint]*models.Favorite
	FavoriteByUserPost map[UserPost]uint
}

// NewState returns an empty, fully initialized state.
func NewState() State {
	return State{
		Posts:              make(map[uint]*models.Post),
		Comments:           make(map[uint]*models.Comment),
		CommentsByPost:     make(map[uint][]uint),
		Likes:              make(map[uint]*models.Like),
		LikeByUserPost:     make(map[UserPost]uint),
		Favorites:          make(map[uint]*models.Favorite),
		FavoriteByUserPost: make(map[UserPost]uint),
	}
}

// Clone returns a deep copy. Apply always works on a clone so a
// transition never aliases the previous state.
func (s State) Clone() State {
	next := NewState()
	next.Token = s.Token
	if s.User != nil {
		u := *s.User
		next.User = &u
	}
	for id, p := range s.Posts {
		cp := *p
		next.Posts[id] = &cp
	}
	next.PostOrder = append([]uint(nil), s.PostOrder...)
	for id, c := range s.Comments {
		cc := *c
		next.Comments[id] = &cc
	}
	for postID, ids := range s.CommentsByPost {
		next.CommentsByPost[postID] = append([]uint(nil), ids...)
	}
	for id, l := range s.Likes {
		cl := *l
		next.Likes[id] = &cl
	}
	for k, v := range s.LikeByUserPost {
		next.LikeByUserPost[k] = v
	}
	for id, f := range s.Favorites {
		cf := *f
		next.Favorites[id] = &cf
	}
	for k, v := range s.FavoriteByUserPost {
		next.FavoriteByUserPost[k] = v
	}
	return next
}

// OrderedPosts returns the posts in display order.
func (s State) OrderedPosts() []models.Post {
	out := make([]models.Post, 0, len(s.PostOrder))
	for _, id := range s.PostOrder {
		if p, ok := s.Posts[id]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// CommentsFor returns the comments of one post in insertion order.
func (s State) CommentsFor(postID uint) []models.Comment {
	ids := s.CommentsByPost[postID]
	out := make([]models.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := s.Comments[id]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// OrderedFavorites returns the favorites sorted by record id.
func (s State) OrderedFavorites() []models.Favorite {
	out := make([]models.Favorite, 0, len(s.Favorites))
	for _, f := range s.Favorites {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LikeIDFor returns the like record id for a (user, post) pair.
func (s State) LikeIDFor(userID, postID uint) (uint, bool) {
	id, ok := s.LikeByUserPost[UserPost{UserID: userID, PostID: postID}]
	return id, ok
}

// FavoriteIDFor returns the favorite record id for a (user, post) pair.
func (s State) FavoriteIDFor(userID, postID uint) (uint, bool) {
	id, ok := s.FavoriteByUserPost[UserPost{UserID: userID, PostID: postID}]
	return id, ok
}

// LoggedIn reports whether both a user and a token are present.
func (s State) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}
