package store

import "gitwise/internal/models"

// Action is the sealed union of state transitions. Each transition is
// its own type, so an invalid action is a compile-time error rather
// than an unmatched string.
type Action interface {
	actionName() string
}

// SetUser replaces the session identity wholesale (login, bootstrap).
type SetUser struct {
	User  *models.User
	Token string
}

// Logout clears the session identity and the user's favorites.
type Logout struct{}

// SetPosts replaces the post collection with one full fetch.
type SetPosts struct {
	Posts []models.Post
}

// AddPosts merges a further page into the collection, de-duplicating
// by id.
type AddPosts struct {
	Posts []models.Post
}

// AddPost prepends a newly created post.
type AddPost struct {
	Post models.Post
}

// EditPost replaces a post by id. It never changes the collection size.
type EditPost struct {
	Post models.Post
}

// DeletePost removes a post and cascades to its comments, likes and
// favorites, keeping the indexes referentially closed.
type DeletePost struct {
	ID uint
}

// SetComments replaces the comments of one post.
type SetComments struct {
	PostID   uint
	Comments []models.Comment
}

// AddComment appends a comment to its post.
type AddComment struct {
	Comment models.Comment
}

// DeleteComment removes a comment by id.
type DeleteComment struct {
	ID uint
}

// UpdateCommentLikes patches a comment's like state to server truth.
// LikeCount is optional; reconciliation dispatches carry only HasLiked.
type UpdateCommentLikes struct {
	CommentID uint
	LikeCount *int
	HasLiked  bool
}

// SetLikes replaces the like collection.
type SetLikes struct {
	Likes []models.Like
}

// AddLike upserts a like. An existing record for the same
// (user, post) pair is replaced, never duplicated.
type AddLike struct {
	Like models.Like
}

// DeleteLike removes a like by record id.
type DeleteLike struct {
	ID uint
}

// SetFavorites replaces the favorite collection.
type SetFavorites struct {
	Favorites []models.Favorite
}

// AddFavorite upserts a favorite on its (user, post) pair.
type AddFavorite struct {
	Favorite models.Favorite
}

// DeleteFavoriteByPost removes the user's favorite on a post.
type DeleteFavoriteByPost struct {
	UserID uint
	PostID uint
}

// ReplaceLikeID re-keys an optimistic like once the server assigns the
// real record id.
type ReplaceLikeID struct {
	OldID uint
	NewID uint
}

// ReplaceFavoriteID re-keys an optimistic favorite once the server
// assigns the real record id.
type ReplaceFavoriteID struct {
	OldID uint
	NewID uint
}

func (SetUser) actionName() string              { return "set_user" }
func (Logout) actionName() string               { return "logout" }
func (SetPosts) actionName() string             { return "set_posts" }
func (AddPosts) actionName() string             { return "add_posts" }
func (AddPost) actionName() string              { return "add_post" }
func (EditPost) actionName() string             { return "edit_post" }
func (DeletePost) actionName() string           { return "delete_post" }
func (SetComments) actionName() string          { return "set_comments" }
func (AddComment) actionName() string           { return "add_comment" }
func (DeleteComment) actionName() string        { return "delete_comment" }
func (UpdateCommentLikes) actionName() string   { return "update_comment_likes" }
func (SetLikes) actionName() string             { return "set_likes" }
func (AddLike) actionName() string              { return "add_like" }
func (DeleteLike) actionName() string           { return "delete_like" }
func (SetFavorites) actionName() string         { return "set_favorites" }
func (AddFavorite) actionName() string          { return "add_favorite" }
func (DeleteFavoriteByPost) actionName() string { return "delete_favorite" }
func (ReplaceLikeID) actionName() string        { return "replace_like_id" }
func (ReplaceFavoriteID) actionName() string    { return "replace_favorite_id" }

// Name exposes the transition name for logging.
func Name(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.actionName()
}
