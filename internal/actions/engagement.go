package actions

import (
	"context"
	"errors"

	"gitwise/internal/models"
	"gitwise/internal/observability"
	"gitwise/internal/store"
)

// TogglePostLike likes or unlikes a post. Liked-ness is derived from
// the store's (user, post) index at call time, never from a caller
// supplied flag, so a stale UI cannot flip the wrong way. The update
// is optimistic and rolled back on hard failure.
func (s *Service) TogglePostLike(ctx context.Context, postID uint) error {
	st := s.store.State()
	user, err := s.requireUser(st, "You must be logged in to like posts.")
	if err != nil {
		return err
	}

	if !s.inflight.tryAcquire(opPostLike, postID) {
		return ErrOperationInFlight
	}
	defer s.inflight.release(opPostLike, postID)

	logger := observability.NewActionLogger("toggle_post_like")
	likeID, liked := st.LikeIDFor(user.ID, postID)
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID, "liked": liked})

	if liked {
		original := *st.Likes[likeID]
		s.store.Dispatch(store.DeleteLike{ID: likeID})

		if err := s.api.UnlikePost(ctx, postID); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				// server never had the like; the removal already
				// matches its truth
				logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "not_liked"})
				return nil
			}
			s.store.Dispatch(store.AddLike{Like: original})
			logger.LogRollback(ctx, err, map[string]interface{}{"post_id": postID})
			s.notifier.Error(err.Error())
			return err
		}
		logger.LogSuccess(ctx, nil)
		return nil
	}

	temp := tempID()
	s.store.Dispatch(store.AddLike{Like: models.Like{ID: temp, PostID: postID, UserID: user.ID}})

	like, err := s.api.LikePost(ctx, postID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			// already liked server-side; keep the local record
			logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "already_liked"})
			return nil
		}
		s.store.Dispatch(store.DeleteLike{ID: temp})
		logger.LogRollback(ctx, err, map[string]interface{}{"post_id": postID})
		s.notifier.Error(err.Error())
		return err
	}

	s.store.Dispatch(store.ReplaceLikeID{OldID: temp, NewID: like.ID})
	logger.LogSuccess(ctx, map[string]interface{}{"like_id": like.ID})
	return nil
}

// ToggleFavorite adds or removes the user's favorite on a post,
// optimistically. The DELETE path uses the canonical favorite id from
// the (user, post) index.
func (s *Service) ToggleFavorite(ctx context.Context, postID uint) error {
	st := s.store.State()
	user, err := s.requireUser(st, "You must be logged in to favorite posts.")
	if err != nil {
		return err
	}

	if !s.inflight.tryAcquire(opFavorite, postID) {
		return ErrOperationInFlight
	}
	defer s.inflight.release(opFavorite, postID)

	logger := observability.NewActionLogger("toggle_favorite")
	favoriteID, favorited := st.FavoriteIDFor(user.ID, postID)
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID, "favorited": favorited})

	if favorited {
		original := *st.Favorites[favoriteID]
		s.store.Dispatch(store.DeleteFavoriteByPost{UserID: user.ID, PostID: postID})

		if err := s.api.DeleteFavorite(ctx, favoriteID); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
				logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "not_favorited"})
				return nil
			}
			s.store.Dispatch(store.AddFavorite{Favorite: original})
			logger.LogRollback(ctx, err, map[string]interface{}{"post_id": postID})
			s.notifier.Error(err.Error())
			return err
		}
		s.notifier.Success("Post removed from favorites!")
		logger.LogSuccess(ctx, nil)
		return nil
	}

	temp := tempID()
	s.store.Dispatch(store.AddFavorite{Favorite: models.Favorite{ID: temp, PostID: postID, UserID: user.ID}})

	favorite, err := s.api.AddFavorite(ctx, postID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
			logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "already_favorited"})
			return nil
		}
		s.store.Dispatch(store.DeleteFavoriteByPost{UserID: user.ID, PostID: postID})
		logger.LogRollback(ctx, err, map[string]interface{}{"post_id": postID})
		s.notifier.Error(err.Error())
		return err
	}

	s.store.Dispatch(store.ReplaceFavoriteID{OldID: temp, NewID: favorite.ID})
	s.notifier.Success("Post added to favorites!")
	logger.LogSuccess(ctx, map[string]interface{}{"favorite_id": favorite.ID})
	return nil
}

// FetchFavorites replaces the current user's favorites from the server.
func (s *Service) FetchFavorites(ctx context.Context) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to load favorites."); err != nil {
		return err
	}

	logger := observability.NewActionLogger("fetch_favorites")
	logger.LogStart(ctx, nil)

	favorites, err := s.api.ListFavorites(ctx)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to load favorites.")
		return err
	}

	s.store.Dispatch(store.SetFavorites{Favorites: favorites})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(favorites)})
	return nil
}
