package models

// Post represents a project post.
// The backend uses repo_URL/image_URL field casing; keep it on the wire.
type Post struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	RepoURL       string `json:"repo_URL"`
	ImageURL      string `json:"image_URL"`
	Stack         string `json:"stack"`
	Level         string `json:"level"`
	UserID        uint   `json:"user_id"`
	FavoriteCount int    `json:"favorite_count"`
	LikesCount    int    `json:"likes_count"`
	CommentsCount int    `json:"comments_count"`

	// Likes is only populated by the user-posts endpoint, which embeds
	// the like records of each post.
	Likes []Like `json:"likes,omitempty"`
}
