package actions

import (
	"context"

	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/notify"
	"gitwise/internal/store"
)

// backendStub implements Backend with overridable function fields.
// Unset fields return zero values so tests only wire what they assert.
type backendStub struct {
	setTokenFn     func(token string)
	clearTokenFn   func()
	tokenExpiredFn func() bool

	loginFn    func(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	registerFn func(ctx context.Context, reg api.Registration) (*api.RegisterResponse, error)

	listPostsFn       func(ctx context.Context, page, perPage int) ([]models.Post, error)
	listUserPostsFn   func(ctx context.Context, userID uint) ([]models.Post, error)
	createPostFn      func(ctx context.Context, userID uint, in api.PostInput) (*models.Post, error)
	updatePostFn      func(ctx context.Context, postID uint, in api.PostInput) (*models.Post, error)
	deletePostFn      func(ctx context.Context, postID uint) error
	adminListPostsFn  func(ctx context.Context) ([]models.Post, error)
	adminDeletePostFn func(ctx context.Context, postID uint) error

	listCommentsFn  func(ctx context.Context, postID uint) ([]models.Comment, error)
	addCommentFn    func(ctx context.Context, postID uint, text string) (*models.Comment, error)
	deleteCommentFn func(ctx context.Context, commentID uint) error
	likeCommentFn   func(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error)
	unlikeCommentFn func(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error)

	likePostFn   func(ctx context.Context, postID uint) (*models.Like, error)
	unlikePostFn func(ctx context.Context, postID uint) error

	listFavoritesFn  func(ctx context.Context) ([]models.Favorite, error)
	addFavoriteFn    func(ctx context.Context, postID uint) (*models.Favorite, error)
	deleteFavoriteFn func(ctx context.Context, favoriteID uint) error

	smartSearchFn         func(ctx context.Context, userRequest string, userTags []string) (*api.SmartSearchResponse, error)
	createStripeSessionFn func(ctx context.Context, amountCents int, frontendURL string) (string, error)
}

func (b *backendStub) SetToken(token string) {
	if b.setTokenFn != nil {
		b.setTokenFn(token)
	}
}

func (b *backendStub) ClearToken() {
	if b.clearTokenFn != nil {
		b.clearTokenFn()
	}
}

func (b *backendStub) TokenExpired() bool {
	if b.tokenExpiredFn != nil {
		return b.tokenExpiredFn()
	}
	return false
}

func (b *backendStub) Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error) {
	return b.loginFn(ctx, creds)
}

func (b *backendStub) Register(ctx context.Context, reg api.Registration) (*api.RegisterResponse, error) {
	return b.registerFn(ctx, reg)
}

func (b *backendStub) ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error) {
	return b.listPostsFn(ctx, page, perPage)
}

func (b *backendStub) ListUserPosts(ctx context.Context, userID uint) ([]models.Post, error) {
	return b.listUserPostsFn(ctx, userID)
}

func (b *backendStub) CreatePost(ctx context.Context, userID uint, in api.PostInput) (*models.Post, error) {
	return b.createPostFn(ctx, userID, in)
}

func (b *backendStub) UpdatePost(ctx context.Context, postID uint, in api.PostInput) (*models.Post, error) {
	return b.updatePostFn(ctx, postID, in)
}

func (b *backendStub) DeletePost(ctx context.Context, postID uint) error {
	return b.deletePostFn(ctx, postID)
}

func (b *backendStub) AdminListPosts(ctx context.Context) ([]models.Post, error) {
	return b.adminListPostsFn(ctx)
}

func (b *backendStub) AdminDeletePost(ctx context.Context, postID uint) error {
	return b.adminDeletePostFn(ctx, postID)
}

func (b *backendStub) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return b.listCommentsFn(ctx, postID)
}

func (b *backendStub) AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	return b.addCommentFn(ctx, postID, text)
}

func (b *backendStub) DeleteComment(ctx context.Context, commentID uint) error {
	return b.deleteCommentFn(ctx, commentID)
}

func (b *backendStub) LikeComment(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error) {
	return b.likeCommentFn(ctx, commentID)
}

func (b *backendStub) UnlikeComment(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error) {
	return b.unlikeCommentFn(ctx, commentID)
}

func (b *backendStub) LikePost(ctx context.Context, postID uint) (*models.Like, error) {
	return b.likePostFn(ctx, postID)
}

func (b *backendStub) UnlikePost(ctx context.Context, postID uint) error {
	return b.unlikePostFn(ctx, postID)
}

func (b *backendStub) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	return b.listFavoritesFn(ctx)
}

func (b *backendStub) AddFavorite(ctx context.Context, postID uint) (*models.Favorite, error) {
	return b.addFavoriteFn(ctx, postID)
}

func (b *backendStub) DeleteFavorite(ctx context.Context, favoriteID uint) error {
	return b.deleteFavoriteFn(ctx, favoriteID)
}

func (b *backendStub) SmartSearch(ctx context.Context, userRequest string, userTags []string) (*api.SmartSearchResponse, error) {
	return b.smartSearchFn(ctx, userRequest, userTags)
}

func (b *backendStub) CreateStripeSession(ctx context.Context, amountCents int, frontendURL string) (string, error) {
	return b.createStripeSessionFn(ctx, amountCents, frontendURL)
}

// newTestService wires a stub backend, an empty store and a recording
// notifier together.
func newTestService(backend *backendStub) (*Service, *store.Store, *notify.Recorder) {
	st := store.New()
	rec := &notify.Recorder{}
	svc := NewService(backend, st, rec, Options{PerPage: 2, FrontendURL: "https://gitwise.example"})
	return svc, st, rec
}

// loggedInState seeds a store with an authenticated user.
func loggedInState(st *store.Store, user models.User) {
	st.Dispatch(store.SetUser{User: &user, Token: "test-token"})
}
