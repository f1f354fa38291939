package models

// CommentAuthor is the denormalized author summary embedded in a comment.
type CommentAuthor struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// Comment represents a comment on a post.
type Comment struct {
	ID        uint          `json:"id"`
	PostID    uint          `json:"post_id"`
	UserID    uint          `json:"user_id"`
	Text      string        `json:"text"`
	Author    CommentAuthor `json:"author"`
	LikeCount int           `json:"like_count"`
	HasLiked  bool          `json:"has_liked"`
}
