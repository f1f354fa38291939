// Package cli implements the gitwise command line interface on top of
// the action layer.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// appRef lets subcommands reach the App built in PersistentPreRunE.
type appRef struct {
	app *App
}

func (r *appRef) get() *App { return r.app }

// NewRootCommand creates the gitwise root command. The factory builds
// the App after global flags are parsed.
func NewRootCommand(factory AppFactory) *cobra.Command {
	opts := &RootOptions{}
	ref := &appRef{}

	cmd := &cobra.Command{
		Use:           "gitwise",
		Short:         "GitWise - share and discover developer projects",
		Long:          "A client for the GitWise developer network: browse project posts, comment, like, favorite and search.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			app, err := factory(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ref.app = app
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRegisterCommand(ref.get))
	cmd.AddCommand(NewLoginCommand(ref.get))
	cmd.AddCommand(NewLogoutCommand(ref.get))
	cmd.AddCommand(NewWhoamiCommand(ref.get))
	cmd.AddCommand(NewPostsCommand(ref.get))
	cmd.AddCommand(NewCommentsCommand(ref.get))
	cmd.AddCommand(NewLikeCommand(ref.get))
	cmd.AddCommand(NewFavoritesCommand(ref.get))
	cmd.AddCommand(NewSearchCommand(ref.get))
	cmd.AddCommand(NewAdminCommand(ref.get))
	cmd.AddCommand(NewDonateCommand(ref.get))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
