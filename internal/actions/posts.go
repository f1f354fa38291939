package actions

import (
	"context"
	"strings"

	"gitwise/internal/api"
	"gitwise/internal/cache"
	"gitwise/internal/models"
	"gitwise/internal/observability"
	"gitwise/internal/store"
)

// FetchAllPosts loads the full public post collection, replacing the
// local mirror. The public listing is served cache-aside.
func (s *Service) FetchAllPosts(ctx context.Context) error {
	logger := observability.NewActionLogger("fetch_all_posts")
	logger.LogStart(ctx, nil)

	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsPageKey(0, 0), &posts, cache.ListTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.api.ListPosts(ctx, 0, 0)
		return fetchErr
	})
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to load posts.")
		return err
	}

	s.store.Dispatch(store.SetPosts{Posts: posts})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(posts)})
	return nil
}

// FetchMorePosts merges one further page into the collection,
// de-duplicating by id.
func (s *Service) FetchMorePosts(ctx context.Context, page int) error {
	logger := observability.NewActionLogger("fetch_more_posts")
	logger.LogStart(ctx, map[string]interface{}{"page": page})

	var posts []models.Post
	err := cache.Aside(ctx, cache.PostsPageKey(page, s.opts.PerPage), &posts, cache.ListTTL, func() error {
		var fetchErr error
		posts, fetchErr = s.api.ListPosts(ctx, page, s.opts.PerPage)
		return fetchErr
	})
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to load more posts.")
		return err
	}

	s.store.Dispatch(store.AddPosts{Posts: posts})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(posts)})
	return nil
}

// FetchUserPosts loads one user's posts and the like records embedded
// in them.
func (s *Service) FetchUserPosts(ctx context.Context, userID uint) error {
	logger := observability.NewActionLogger("fetch_user_posts")
	logger.LogStart(ctx, map[string]interface{}{"user_id": userID})

	posts, err := s.api.ListUserPosts(ctx, userID)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to load user posts.")
		return err
	}

	var likes []models.Like
	for _, p := range posts {
		likes = append(likes, p.Likes...)
	}
	s.store.Dispatch(store.SetPosts{Posts: posts})
	s.store.Dispatch(store.SetLikes{Likes: likes})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(posts)})
	return nil
}

// CreatePost publishes a project post. The new post is prepended to
// the collection once the server confirms it.
func (s *Service) CreatePost(ctx context.Context, in api.PostInput) error {
	st := s.store.State()
	user, err := s.requireUser(st, "You must be logged in to create a post.")
	if err != nil {
		return err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.RepoURL) == "" {
		msg := "Title, description and repository URL are required."
		s.notifier.Error(msg)
		return models.NewValidationError(msg)
	}

	logger := observability.NewActionLogger("create_post")
	logger.LogStart(ctx, map[string]interface{}{"title": in.Title})

	post, err := s.api.CreatePost(ctx, user.ID, in)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to save project: " + err.Error())
		return err
	}

	s.store.Dispatch(store.AddPost{Post: *post})
	cache.InvalidatePostPages(ctx)
	s.notifier.Success("Project created successfully!")
	logger.LogSuccess(ctx, map[string]interface{}{"post_id": post.ID})
	return nil
}

// EditPost replaces a post by id with the server's updated copy.
func (s *Service) EditPost(ctx context.Context, postID uint, in api.PostInput) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to edit a post."); err != nil {
		return err
	}

	logger := observability.NewActionLogger("edit_post")
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID})

	post, err := s.api.UpdatePost(ctx, postID, in)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to update post.")
		return err
	}

	s.store.Dispatch(store.EditPost{Post: *post})
	cache.InvalidatePostPages(ctx)
	s.notifier.Success("Post updated successfully!")
	logger.LogSuccess(ctx, nil)
	return nil
}

// DeletePost removes a post; the store cascades its comments, likes
// and favorites.
func (s *Service) DeletePost(ctx context.Context, postID uint) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to delete a post."); err != nil {
		return err
	}

	logger := observability.NewActionLogger("delete_post")
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID})

	if err := s.api.DeletePost(ctx, postID); err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to delete post.")
		return err
	}

	s.store.Dispatch(store.DeletePost{ID: postID})
	cache.InvalidatePostPages(ctx)
	s.notifier.Success("Post deleted successfully!")
	logger.LogSuccess(ctx, nil)
	return nil
}

// FetchAdminPosts loads the moderation listing. Admin only.
func (s *Service) FetchAdminPosts(ctx context.Context) error {
	st := s.store.State()
	user, err := s.requireUser(st, "You must be logged in for administration.")
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		msg := "Administrator access is required."
		s.notifier.Error(msg)
		return models.NewForbiddenError(msg)
	}

	logger := observability.NewActionLogger("fetch_admin_posts")
	logger.LogStart(ctx, nil)

	posts, err := s.api.AdminListPosts(ctx)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to load posts for administration.")
		return err
	}

	s.store.Dispatch(store.SetPosts{Posts: posts})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(posts)})
	return nil
}

// AdminDeletePost removes any user's post through the admin endpoint.
func (s *Service) AdminDeletePost(ctx context.Context, postID uint) error {
	st := s.store.State()
	user, err := s.requireUser(st, "You must be logged in for administration.")
	if err != nil {
		return err
	}
	if !user.IsAdmin {
		msg := "Administrator access is required."
		s.notifier.Error(msg)
		return models.NewForbiddenError(msg)
	}

	logger := observability.NewActionLogger("admin_delete_post")
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID})

	if err := s.api.AdminDeletePost(ctx, postID); err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to delete post as admin.")
		return err
	}

	s.store.Dispatch(store.DeletePost{ID: postID})
	cache.InvalidatePostPages(ctx)
	s.notifier.Success("Post deleted successfully by admin!")
	logger.LogSuccess(ctx, nil)
	return nil
}
