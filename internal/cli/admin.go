package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAdminCommand creates the admin command group. The server enforces
// the admin role; the client checks it up front for a clearer error.
func NewAdminCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Moderate posts (admin only)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "posts",
		Short: "List every post for moderation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.Service.FetchAdminPosts(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "load posts", err)
			}
			return renderPosts(a.Out, a.Service.Store().State().OrderedPosts())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete any user's post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.AdminDeletePost(cmd.Context(), id); err != nil {
				return WrapExitError(ExitFailure, "delete post", err)
			}
			return a.Out.Success(fmt.Sprintf("Deleted post #%d", id))
		},
	})

	return cmd
}
