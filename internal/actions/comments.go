package actions

import (
	"context"
	"errors"
	"strings"

	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/observability"
	"gitwise/internal/store"
)

// LoadComments replaces the local comments of one post. The endpoint
// works without auth; a missing-auth response is not worth a toast.
func (s *Service) LoadComments(ctx context.Context, postID uint) error {
	logger := observability.NewActionLogger("load_comments")
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID})

	comments, err := s.api.ListComments(ctx, postID)
	if err != nil {
		logger.LogError(ctx, err)
		if !strings.Contains(err.Error(), "Missing Authorization Header") {
			s.notifier.Error("Failed to load comments.")
		}
		return err
	}

	s.store.Dispatch(store.SetComments{PostID: postID, Comments: comments})
	logger.LogSuccess(ctx, map[string]interface{}{"count": len(comments)})
	return nil
}

// AddComment posts a comment and appends the server's copy.
func (s *Service) AddComment(ctx context.Context, postID uint, text string) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to add a comment."); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		msg := "Comment text is required."
		s.notifier.Error(msg)
		return models.NewValidationError(msg)
	}

	logger := observability.NewActionLogger("add_comment")
	logger.LogStart(ctx, map[string]interface{}{"post_id": postID})

	comment, err := s.api.AddComment(ctx, postID, text)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to add comment.")
		return err
	}

	s.store.Dispatch(store.AddComment{Comment: *comment})
	logger.LogSuccess(ctx, map[string]interface{}{"comment_id": comment.ID})
	return nil
}

// DeleteComment removes a comment. A rejection (e.g. not the owner)
// leaves local state untouched.
func (s *Service) DeleteComment(ctx context.Context, commentID uint) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to delete a comment."); err != nil {
		return err
	}

	logger := observability.NewActionLogger("delete_comment")
	logger.LogStart(ctx, map[string]interface{}{"comment_id": commentID})

	if err := s.api.DeleteComment(ctx, commentID); err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to delete comment.")
		return err
	}

	s.store.Dispatch(store.DeleteComment{ID: commentID})
	logger.LogSuccess(ctx, nil)
	return nil
}

// ToggleCommentLike optimistically flips a comment's like state, then
// reconciles with the server's response. A "already liked" conflict or
// a "not liked" miss is treated as server truth, not as a failure.
func (s *Service) ToggleCommentLike(ctx context.Context, commentID uint) error {
	st := s.store.State()
	if _, err := s.requireUser(st, "You must be logged in to like a comment."); err != nil {
		return err
	}
	comment, ok := st.Comments[commentID]
	if !ok {
		return models.NewNotFoundError("comment", commentID)
	}

	if !s.inflight.tryAcquire(opCommentLike, commentID) {
		return ErrOperationInFlight
	}
	defer s.inflight.release(opCommentLike, commentID)

	logger := observability.NewActionLogger("toggle_comment_like")
	logger.LogStart(ctx, map[string]interface{}{"comment_id": commentID, "has_liked": comment.HasLiked})

	// optimistic flip
	flipped := !comment.HasLiked
	optimisticCount := comment.LikeCount
	if flipped {
		optimisticCount++
	} else if optimisticCount > 0 {
		optimisticCount--
	}
	s.store.Dispatch(store.UpdateCommentLikes{
		CommentID: commentID,
		LikeCount: &optimisticCount,
		HasLiked:  flipped,
	})

	var resp *api.CommentLikeResponse
	var err error
	if flipped {
		resp, err = s.api.LikeComment(ctx, commentID)
	} else {
		resp, err = s.api.UnlikeComment(ctx, commentID)
	}

	if err == nil {
		if resp != nil {
			s.store.Dispatch(store.UpdateCommentLikes{
				CommentID: commentID,
				LikeCount: &resp.LikeCount,
				HasLiked:  resp.HasLiked,
			})
		}
		logger.LogSuccess(ctx, nil)
		return nil
	}

	// server-implied truth beats the optimistic guess
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		lower := strings.ToLower(appErr.Message)
		switch {
		case appErr.Code == models.CodeConflict && strings.Contains(lower, "already liked"):
			s.store.Dispatch(store.UpdateCommentLikes{CommentID: commentID, LikeCount: &comment.LikeCount, HasLiked: true})
			logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "already_liked"})
			return nil
		case appErr.Code == models.CodeNotFound && strings.Contains(lower, "not liked"):
			s.store.Dispatch(store.UpdateCommentLikes{CommentID: commentID, LikeCount: &comment.LikeCount, HasLiked: false})
			logger.LogSuccess(ctx, map[string]interface{}{"reconciled": "not_liked"})
			return nil
		}
	}

	// hard failure: roll back to what we knew before
	s.store.Dispatch(store.UpdateCommentLikes{
		CommentID: commentID,
		LikeCount: &comment.LikeCount,
		HasLiked:  comment.HasLiked,
	})
	logger.LogRollback(ctx, err, map[string]interface{}{"comment_id": commentID})
	s.notifier.Error("Failed to update comment like status.")
	return err
}
