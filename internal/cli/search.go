package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the smart search command.
func NewSearchCommand(app func() *App) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "search <question>",
		Short: "Search posts with a natural-language question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			query := strings.Join(args, " ")
			results, err := a.Service.SmartSearch(cmd.Context(), query, tags)
			if err != nil {
				return WrapExitError(ExitFailure, "search", err)
			}
			if a.Out.Format == "json" {
				return a.Out.Success(results)
			}
			if len(results) == 0 {
				return a.Out.Success("No matches.")
			}
			var b strings.Builder
			for i, r := range results {
				if i > 0 {
					b.WriteByte('\n')
				}
				fmt.Fprintf(&b, "#%d %s", r.PostID, r.Title)
				if r.Reason != "" {
					fmt.Fprintf(&b, "\n    %s", r.Reason)
				}
			}
			return a.Out.Success(b.String())
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "stack tags to bias the search")
	return cmd
}

// NewDonateCommand creates the donate command.
func NewDonateCommand(app func() *App) *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   "donate",
		Short: "Open a checkout session to support the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			url, err := a.Service.CreateDonationSession(cmd.Context(), amount)
			if err != nil {
				return WrapExitError(ExitFailure, "create checkout session", err)
			}
			if a.Out.Format == "json" {
				return a.Out.Success(map[string]string{"url": url})
			}
			return a.Out.Success("Open this link to complete the donation:\n" + url)
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 10, "donation amount in USD")
	return cmd
}
