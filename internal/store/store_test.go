package store

import (
	"sync"
	"testing"

	"gitwise/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DispatchNotifiesSubscribers(t *testing.T) {
	st := New()

	var got []string
	st.Subscribe(func(s State) {
		got = append(got, s.Token)
	})

	st.Dispatch(SetUser{User: &models.User{ID: 1}, Token: "tok123"})
	st.Dispatch(Logout{})

	require.Len(t, got, 2)
	assert.Equal(t, "tok123", got[0])
	assert.Empty(t, got[1])
}

func TestStore_StateReturnsIsolatedCopy(t *testing.T) {
	st := New()
	st.Dispatch(SetPosts{Posts: []models.Post{{ID: 1, Title: "original"}}})

	copy1 := st.State()
	copy1.Posts[1].Title = "tampered"
	copy1.PostOrder = append(copy1.PostOrder, 99)

	fresh := st.State()
	assert.Equal(t, "original", fresh.Posts[1].Title)
	assert.Equal(t, []uint{1}, fresh.PostOrder)
}

func TestStore_ConcurrentDispatchKeepsInvariants(t *testing.T) {
	st := New()
	st.Dispatch(SetPosts{Posts: []models.Post{{ID: 7}}})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			st.Dispatch(AddLike{Like: models.Like{ID: uint(100 + n), PostID: 7, UserID: 3}})
		}(i)
	}
	wg.Wait()

	// whatever the interleaving, the pair invariant holds
	s := st.State()
	assert.Len(t, s.Likes, 1)
	_, ok := s.LikeIDFor(3, 7)
	assert.True(t, ok)
}

func TestState_Views(t *testing.T) {
	st := New()
	st.Dispatch(SetPosts{Posts: []models.Post{{ID: 2}, {ID: 1}}})
	st.Dispatch(SetFavorites{Favorites: []models.Favorite{
		{ID: 9, PostID: 1, UserID: 4},
		{ID: 3, PostID: 2, UserID: 4},
	}})

	s := st.State()
	posts := s.OrderedPosts()
	require.Len(t, posts, 2)
	assert.Equal(t, uint(2), posts[0].ID)

	favs := s.OrderedFavorites()
	require.Len(t, favs, 2)
	assert.Equal(t, uint(3), favs[0].ID)
	assert.Equal(t, uint(9), favs[1].ID)
}
