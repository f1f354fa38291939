package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitwise/internal/actions"
	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/notify"
	"gitwise/internal/store"
)

// fakeBackend is a canned-data Backend for session tests.
type fakeBackend struct {
	token         string
	expired       bool
	posts         []models.Post
	favorites     []models.Favorite
	favoriteCalls int
}

func (f *fakeBackend) SetToken(token string) { f.token = token }

func (f *fakeBackend) ClearToken() { f.token = "" }

func (f *fakeBackend) TokenExpired() bool { return f.expired }

func (f *fakeBackend) Login(context.Context, api.Credentials) (*api.LoginResponse, error) {
	return nil, nil
}

func (f *fakeBackend) Register(context.Context, api.Registration) (*api.RegisterResponse, error) {
	return nil, nil
}

func (f *fakeBackend) ListPosts(context.Context, int, int) ([]models.Post, error) {
	return f.posts, nil
}

func (f *fakeBackend) ListUserPosts(context.Context, uint) ([]models.Post, error) { return nil, nil }

func (f *fakeBackend) CreatePost(context.Context, uint, api.PostInput) (*models.Post, error) {
	return nil, nil
}

func (f *fakeBackend) UpdatePost(context.Context, uint, api.PostInput) (*models.Post, error) {
	return nil, nil
}

func (f *fakeBackend) DeletePost(context.Context, uint) error { return nil }

func (f *fakeBackend) AdminListPosts(context.Context) ([]models.Post, error) { return nil, nil }

func (f *fakeBackend) AdminDeletePost(context.Context, uint) error { return nil }

func (f *fakeBackend) ListComments(context.Context, uint) ([]models.Comment, error) {
	return nil, nil
}

func (f *fakeBackend) AddComment(context.Context, uint, string) (*models.Comment, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteComment(context.Context, uint) error { return nil }

func (f *fakeBackend) LikeComment(context.Context, uint) (*api.CommentLikeResponse, error) {
	return nil, nil
}

func (f *fakeBackend) UnlikeComment(context.Context, uint) (*api.CommentLikeResponse, error) {
	return nil, nil
}

func (f *fakeBackend) LikePost(context.Context, uint) (*models.Like, error) { return nil, nil }

func (f *fakeBackend) UnlikePost(context.Context, uint) error { return nil }

func (f *fakeBackend) ListFavorites(context.Context) ([]models.Favorite, error) {
	f.favoriteCalls++
	return f.favorites, nil
}

func (f *fakeBackend) AddFavorite(context.Context, uint) (*models.Favorite, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteFavorite(context.Context, uint) error { return nil }

func (f *fakeBackend) SmartSearch(context.Context, string, []string) (*api.SmartSearchResponse, error) {
	return nil, nil
}

func (f *fakeBackend) CreateStripeSession(context.Context, int, string) (string, error) {
	return "", nil
}

func newTestManager(t *testing.T, backend *fakeBackend) (*Manager, *store.Store, *store.SnapshotStore) {
	t.Helper()
	snaps, err := store.OpenSnapshotStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	st := store.New()
	svc := actions.NewService(backend, st, &notify.Recorder{}, actions.Options{})
	return NewManager(svc, backend, snaps), st, snaps
}

func TestBootstrapWithoutSnapshotLoadsPostsOnly(t *testing.T) {
	backend := &fakeBackend{posts: []models.Post{{ID: 1, Title: "p"}}}
	mgr, st, _ := newTestManager(t, backend)

	require.NoError(t, mgr.Bootstrap(context.Background()))

	state := st.State()
	assert.False(t, state.LoggedIn())
	assert.Len(t, state.OrderedPosts(), 1)
	assert.Zero(t, backend.favoriteCalls)
}

func TestBootstrapRestoresSession(t *testing.T) {
	backend := &fakeBackend{
		posts:     []models.Post{{ID: 1}},
		favorites: []models.Favorite{{ID: 2, PostID: 1, UserID: 7}},
	}
	mgr, st, snaps := newTestManager(t, backend)
	require.NoError(t, snaps.Save("saved-token", &models.User{ID: 7, Username: "dev"}))

	require.NoError(t, mgr.Bootstrap(context.Background()))

	state := st.State()
	require.True(t, state.LoggedIn())
	assert.Equal(t, uint(7), state.User.ID)
	assert.Equal(t, "saved-token", state.Token)
	assert.Equal(t, "saved-token", backend.token)
	assert.Equal(t, 1, backend.favoriteCalls)
	assert.Len(t, state.OrderedFavorites(), 1)
}

func TestBootstrapDiscardsExpiredSession(t *testing.T) {
	backend := &fakeBackend{expired: true}
	mgr, st, snaps := newTestManager(t, backend)
	require.NoError(t, snaps.Save("stale-token", &models.User{ID: 7}))

	require.NoError(t, mgr.Bootstrap(context.Background()))

	assert.False(t, st.State().LoggedIn())
	assert.Empty(t, backend.token)
	_, _, ok, err := snaps.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginPersistsSnapshotAndFetchesFavorites(t *testing.T) {
	backend := &fakeBackend{favorites: []models.Favorite{{ID: 4, PostID: 2, UserID: 7}}}
	mgr, st, snaps := newTestManager(t, backend)
	require.NoError(t, mgr.Bootstrap(context.Background()))

	st.Dispatch(store.SetUser{User: &models.User{ID: 7, Username: "dev"}, Token: "fresh-token"})

	token, user, ok, err := snaps.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, 1, backend.favoriteCalls)
	assert.Len(t, st.State().OrderedFavorites(), 1)
}

func TestLogoutClearsSnapshot(t *testing.T) {
	backend := &fakeBackend{}
	mgr, st, snaps := newTestManager(t, backend)
	require.NoError(t, mgr.Bootstrap(context.Background()))

	st.Dispatch(store.SetUser{User: &models.User{ID: 7}, Token: "t"})
	st.Dispatch(store.Logout{})

	_, _, ok, err := snaps.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, st.State().LoggedIn())
}

func TestUnrelatedDispatchDoesNotRewriteSnapshot(t *testing.T) {
	backend := &fakeBackend{}
	mgr, st, snaps := newTestManager(t, backend)
	require.NoError(t, mgr.Bootstrap(context.Background()))

	st.Dispatch(store.SetUser{User: &models.User{ID: 7}, Token: "t"})
	require.NoError(t, snaps.Clear())

	st.Dispatch(store.SetPosts{Posts: []models.Post{{ID: 5}}})

	_, _, ok, err := snaps.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
