// Package actions implements the action layer: each operation performs
// one network call and, on success, one state transition. Engagement
// toggles are optimistic with rollback, guarded by a per-entity
// in-flight gate so overlapping toggles cannot duplicate side effects.
package actions

import (
	"context"
	"encoding/binary"

	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/notify"
	"gitwise/internal/store"

	"github.com/google/uuid"
)

// Backend is the slice of the API client the action layer consumes.
type Backend interface {
	SetToken(token string)
	ClearToken()
	TokenExpired() bool

	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	Register(ctx context.Context, reg api.Registration) (*api.RegisterResponse, error)

	ListPosts(ctx context.Context, page, perPage int) ([]models.Post, error)
	ListUserPosts(ctx context.Context, userID uint) ([]models.Post, error)
	CreatePost(ctx context.Context, userID uint, in api.PostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, postID uint, in api.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, postID uint) error
	AdminListPosts(ctx context.Context) ([]models.Post, error)
	AdminDeletePost(ctx context.Context, postID uint) error

	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error
	LikeComment(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error)
	UnlikeComment(ctx context.Context, commentID uint) (*api.CommentLikeResponse, error)

	LikePost(ctx context.Context, postID uint) (*models.Like, error)
	UnlikePost(ctx context.Context, postID uint) error

	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, postID uint) (*models.Favorite, error)
	DeleteFavorite(ctx context.Context, favoriteID uint) error

	SmartSearch(ctx context.Context, userRequest string, userTags []string) (*api.SmartSearchResponse, error)
	CreateStripeSession(ctx context.Context, amountCents int, frontendURL string) (string, error)
}

// Options configure a Service.
type Options struct {
	PerPage     int
	FrontendURL string
}

// Service wires the backend, the store and user feedback together.
type Service struct {
	api      Backend
	store    *store.Store
	notifier notify.Notifier
	opts     Options
	inflight *gate
}

// NewService creates the action layer.
func NewService(backend Backend, st *store.Store, notifier notify.Notifier, opts Options) *Service {
	if opts.PerPage <= 0 {
		opts.PerPage = 6
	}
	if notifier == nil {
		notifier = notify.Silent{}
	}
	return &Service{
		api:      backend,
		store:    st,
		notifier: notifier,
		opts:     opts,
		inflight: newGate(),
	}
}

// Store exposes the underlying state container for read access.
func (s *Service) Store() *store.Store {
	return s.store
}

// requireUser checks the logged-in preconditions before a protected
// request is issued: identity present and token not known-expired.
func (s *Service) requireUser(st store.State, msg string) (*models.User, error) {
	if !st.LoggedIn() {
		s.notifier.Error(msg)
		return nil, models.NewPreconditionError(msg)
	}
	if s.api.TokenExpired() {
		const expired = "Your session has expired. Please log in again."
		s.notifier.Error(expired)
		return nil, models.NewUnauthorizedError(expired)
	}
	return st.User, nil
}

// tempIDBit marks ids assigned locally for optimistic records; it
// keeps them out of the range of server-assigned ids.
const tempIDBit uint = 1 << 31

// tempID derives a local record id for an optimistic insert. The id is
// replaced with the server-assigned one on confirmation.
func tempID() uint {
	u := uuid.New()
	return uint(binary.BigEndian.Uint32(u[0:4])) | tempIDBit
}
