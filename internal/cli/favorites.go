package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewLikeCommand creates the like command, a toggle on a post.
func NewLikeCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "like <post-id>",
		Short: "Toggle your like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.TogglePostLike(cmd.Context(), postID); err != nil {
				return WrapExitError(ExitFailure, "toggle like", err)
			}
			state := a.Service.Store().State()
			if _, liked := state.LikeIDFor(state.User.ID, postID); liked {
				return a.Out.Success(fmt.Sprintf("Liked post #%d", postID))
			}
			return a.Out.Success(fmt.Sprintf("Unliked post #%d", postID))
		},
	}
}

// NewFavoritesCommand creates the favorites command group.
func NewFavoritesCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage your favorite posts",
	}
	cmd.AddCommand(newFavoritesListCommand(app))
	cmd.AddCommand(newFavoritesToggleCommand(app))
	return cmd
}

func newFavoritesListCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your favorite posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.Service.FetchFavorites(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "load favorites", err)
			}
			state := a.Service.Store().State()
			favorites := state.OrderedFavorites()
			if a.Out.Format == "json" {
				return a.Out.Success(favorites)
			}
			if len(favorites) == 0 {
				return a.Out.Success("No favorites.")
			}
			var b strings.Builder
			for i, f := range favorites {
				if i > 0 {
					b.WriteByte('\n')
				}
				if p, ok := state.Posts[f.PostID]; ok {
					fmt.Fprintf(&b, "post #%d %s", f.PostID, p.Title)
				} else {
					fmt.Fprintf(&b, "post #%d", f.PostID)
				}
			}
			return a.Out.Success(b.String())
		},
	}
}

func newFavoritesToggleCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <post-id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			postID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.Service.ToggleFavorite(cmd.Context(), postID); err != nil {
				return WrapExitError(ExitFailure, "toggle favorite", err)
			}
			state := a.Service.Store().State()
			if _, ok := state.FavoriteIDFor(state.User.ID, postID); ok {
				return a.Out.Success(fmt.Sprintf("Favorited post #%d", postID))
			}
			return a.Out.Success(fmt.Sprintf("Unfavorited post #%d", postID))
		},
	}
}
