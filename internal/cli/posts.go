package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gitwise/internal/api"
	"gitwise/internal/models"
)

// parseID parses a positive integer command argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid id %q", arg))
	}
	return uint(id), nil
}

func renderPosts(out *OutputFormatter, posts []models.Post) error {
	if out.Format == "json" {
		return out.Success(posts)
	}
	if len(posts) == 0 {
		return out.Success("No posts.")
	}
	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#%d %s", p.ID, p.Title)
		if p.Stack != "" || p.Level != "" {
			fmt.Fprintf(&b, " (%s %s)", p.Stack, p.Level)
		}
		fmt.Fprintf(&b, "\n    %s\n    repo: %s  likes: %d  comments: %d",
			p.Description, p.RepoURL, p.LikesCount, p.CommentsCount)
	}
	return out.Success(b.String())
}

// NewPostsCommand creates the posts command group.
func NewPostsCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Browse and manage project posts",
	}
	cmd.AddCommand(newPostsListCommand(app))
	cmd.AddCommand(newPostsMineCommand(app))
	cmd.AddCommand(newPostsCreateCommand(app))
	cmd.AddCommand(newPostsEditCommand(app))
	cmd.AddCommand(newPostsDeleteCommand(app))
	return cmd
}

func newPostsListCommand(app func() *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List project posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if page > 0 {
				if err := a.Service.FetchMorePosts(cmd.Context(), page); err != nil {
					return WrapExitError(ExitFailure, "load posts", err)
				}
			}
			return renderPosts(a.Out, a.Service.Store().State().OrderedPosts())
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "also load this page before listing")
	return cmd
}

func newPostsMineCommand(app func() *App) *cobra.Command {
	var userID uint

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List one user's posts (defaults to the logged-in user)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id := userID
			if id == 0 {
				state := a.Service.Store().State()
				if !state.LoggedIn() {
					return NewExitError(ExitFailure, "not logged in; pass --user")
				}
				id = state.User.ID
			}
			if err := a.Service.FetchUserPosts(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "load user posts", err)
			}
			return renderPosts(a.Out, a.Service.Store().State().OrderedPosts())
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "user id to list instead of the session user")
	return cmd
}

func postInputFlags(cmd *cobra.Command, in *api.PostInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "post title")
	cmd.Flags().StringVar(&in.Description, "description", "", "post description")
	cmd.Flags().StringVar(&in.RepoURL, "repo", "", "repository URL")
	cmd.Flags().StringVar(&in.ImageURL, "image", "", "image URL")
	cmd.Flags().StringVar(&in.Stack, "stack", "", "tech stack tag")
	cmd.Flags().StringVar(&in.Level, "level", "", "difficulty level")
}

func newPostsCreateCommand(app func() *App) *cobra.Command {
	var in api.PostInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a project post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.Service.CreatePost(cmd.Context(), in); err != nil {
				return WrapExitError(ExitFailure, "create post", err)
			}
			posts := a.Service.Store().State().OrderedPosts()
			return a.Out.Success(fmt.Sprintf("Created post #%d", posts[0].ID))
		},
	}

	postInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("repo")
	return cmd
}

func newPostsEditCommand(app func() *App) *cobra.Command {
	var in api.PostInput

	cmd := &cobra.Command{
		Use:   "edit <post-id>",
		Short: "Update a project post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.EditPost(cmd.Context(), id, in); err != nil {
				return WrapExitError(ExitFailure, "edit post", err)
			}
			return a.Out.Success(fmt.Sprintf("Updated post #%d", id))
		},
	}

	postInputFlags(cmd, &in)
	return cmd
}

func newPostsDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a project post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.DeletePost(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "delete post", err)
			}
			return a.Out.Success(fmt.Sprintf("Deleted post #%d", id))
		},
	}
}
