package api

import (
	"context"
	"fmt"
	"net/http"

	"gitwise/internal/models"
)

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

// RegisterResponse is the body of a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// PostsResponse wraps a page of posts.
type PostsResponse struct {
	Posts []models.Post `json:"posts"`
}

// PostResponse wraps a single post returned by a mutation.
type PostResponse struct {
	Msg  string      `json:"msg"`
	Post models.Post `json:"post"`
}

// CommentsResponse wraps the comments of one post.
type CommentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

// CommentResponse wraps a single created comment.
type CommentResponse struct {
	Comment models.Comment `json:"comment"`
}

// CommentLikeResponse carries server truth after a comment like toggle.
type CommentLikeResponse struct {
	LikeCount int  `json:"like_count"`
	HasLiked  bool `json:"has_liked"`
}

// LikeResponse wraps the like record created for a post.
type LikeResponse struct {
	Like models.Like `json:"like"`
}

// FavoritesResponse wraps the current user's favorites.
type FavoritesResponse struct {
	Favorites []models.Favorite `json:"favorites"`
}

// FavoriteResponse wraps a single created favorite.
type FavoriteResponse struct {
	Favorite models.Favorite `json:"favorite"`
}

// SearchResult is one ranked hit from smart search. The backend
// duplicates post fields into the hit so it can be rendered directly.
type SearchResult struct {
	PostID      uint   `json:"post_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_URL"`
	Stack       string `json:"stack"`
	Level       string `json:"level"`
	Reason      string `json:"reason,omitempty"`
}

// SmartSearchResponse wraps the ranked results of a natural-language search.
type SmartSearchResponse struct {
	Results  []SearchResult         `json:"results"`
	DevDebug map[string]interface{} `json:"dev_debug,omitempty"`
}

// StripeSessionResponse carries the hosted checkout URL.
type StripeSessionResponse struct {
	URL string `json:"url"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request body.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Username string `json:"username"`
}

// PostInput is the body for creating or editing a post.
type PostInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RepoURL     string `json:"repo_URL"`
	ImageURL    string `json:"image_URL"`
	Stack       string `json:"stack"`
	Level       string `json:"level"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/api/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg Registration) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.Do(ctx, http.MethodPost, "/api/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPosts fetches one page of the public post collection. page <= 0
// requests the unpaginated default listing.
func (c *Client) ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error) {
	path := "/api/posts"
	if page > 0 {
		path = fmt.Sprintf("/api/posts?page=%d&per_page=%d", page, perPage)
	}
	var out PostsResponse
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) ListUserPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	var out PostsResponse
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", userID), nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	var out PostResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/user/post/%d", userID), in, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, postID uint, in PostInput) (*models.Post, error) {
	var out PostResponse
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/post/%d", postID), in, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, postID uint) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/post/%d", postID), nil, nil)
}

func (c *Client) AdminListPosts(ctx context.Context) ([]models.Post, error) {
	var out PostsResponse
	if err := c.Do(ctx, http.MethodGet, "/api/admin/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) AdminDeletePost(ctx context.Context, postID uint) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/posts/%d", postID), nil, nil)
}

func (c *Client) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var out CommentsResponse
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/post/%d/comments", postID), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

func (c *Client) AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	body := map[string]string{"text": text}
	var out CommentResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/post/%d/comments", postID), body, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, commentID uint) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), nil, nil)
}

func (c *Client) LikeComment(ctx context.Context, commentID uint) (*CommentLikeResponse, error) {
	var out CommentLikeResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/comments/%d/like", commentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UnlikeComment(ctx context.Context, commentID uint) (*CommentLikeResponse, error) {
	var out CommentLikeResponse
	if err := c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d/like", commentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikePost(ctx context.Context, postID uint) (*models.Like, error) {
	var out LikeResponse
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/post/%d/likes", postID), nil, &out); err != nil {
		return nil, err
	}
	return &out.Like, nil
}

func (c *Client) UnlikePost(ctx context.Context, postID uint) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/post/%d/likes", postID), nil, nil)
}

func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var out FavoritesResponse
	if err := c.Do(ctx, http.MethodGet, "/api/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out.Favorites, nil
}

func (c *Client) AddFavorite(ctx context.Context, postID uint) (*models.Favorite, error) {
	body := map[string]uint{"post_id": postID}
	var out FavoriteResponse
	if err := c.Do(ctx, http.MethodPost, "/api/favorites", body, &out); err != nil {
		return nil, err
	}
	return &out.Favorite, nil
}

func (c *Client) DeleteFavorite(ctx context.Context, favoriteID uint) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", favoriteID), nil, nil)
}

// SmartSearch runs a natural-language search over posts. Ranking
// happens server-side; the client only carries the request and tags.
func (c *Client) SmartSearch(ctx context.Context, userRequest string, userTags []string) (*SmartSearchResponse, error) {
	body := map[string]interface{}{"user_request": userRequest}
	if len(userTags) > 0 {
		body["user_tags"] = userTags
	}
	var out SmartSearchResponse
	if err := c.Do(ctx, http.MethodPost, "/api/smart-search", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStripeSession creates a hosted checkout session for a donation.
// amountCents is the donation amount in USD cents.
func (c *Client) CreateStripeSession(ctx context.Context, amountCents int, frontendURL string) (string, error) {
	body := map[string]interface{}{
		"amount":       amountCents,
		"currency":     "usd",
		"frontend_url": frontendURL,
	}
	var out StripeSessionResponse
	if err := c.Do(ctx, http.MethodPost, "/api/create-stripe-session", body, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
