package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewCommentsCommand creates the comments command group.
func NewCommentsCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write post comments",
	}
	cmd.AddCommand(newCommentsListCommand(app))
	cmd.AddCommand(newCommentsAddCommand(app))
	cmd.AddCommand(newCommentsDeleteCommand(app))
	cmd.AddCommand(newCommentsLikeCommand(app))
	return cmd
}

func newCommentsListCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <post-id>",
		Short: "List the comments of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.LoadComments(cmd.Context(), postID); err != nil {
				return WrapExitError(ExitFailure, "load comments", err)
			}
			comments := a.Service.Store().State().CommentsFor(postID)
			if a.Out.Format == "json" {
				return a.Out.Success(comments)
			}
			if len(comments) == 0 {
				return a.Out.Success("No comments.")
			}
			var b strings.Builder
			for i, c := range comments {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "#%d %s: %s (likes: %d)", c.ID, c.Author.Username, c.Text, c.LikeCount)
			}
			return a.Out.Success(b.String())
		},
	}
}

func newCommentsAddCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <post-id> <text>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := a.Service.AddComment(cmd.Context(), postID, text); err != nil {
				return WrapExitError(ExitFailure, "add comment", err)
			}
			return a.Out.Success("Comment added.")
		},
	}
}

func newCommentsDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.DeleteComment(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "delete comment", err)
			}
			return a.Out.Success(fmt.Sprintf("Deleted comment #%d", id))
		},
	}
}

func newCommentsLikeCommand(app func() *App) *cobra.Command {
	var postID uint

	cmd := &cobra.Command{
		Use:   "like <comment-id>",
		Short: "Toggle your like on a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			// the toggle works on the locally mirrored comment
			if postID > 0 {
				if err := a.Service.LoadComments(cmd.Context(), postID); err != nil {
					return WrapExitError(ExitFailure, "load comments", err)
				}
			}
			if err := a.Service.ToggleCommentLike(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "toggle comment like", err)
			}
			c := a.Service.Store().State().Comments[id]
			if c == nil {
				return a.Out.Success("Done.")
			}
			if c.HasLiked {
				return a.Out.Success(fmt.Sprintf("Liked comment #%d (likes: %d)", id, c.LikeCount))
			}
			return a.Out.Success(fmt.Sprintf("Unliked comment #%d (likes: %d)", id, c.LikeCount))
		},
	}

	cmd.Flags().UintVar(&postID, "post", 0, "post id to load the comment from first")
	return cmd
}
