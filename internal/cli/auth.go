package cli

import (
	"github.com/spf13/cobra"

	"gitwise/internal/api"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(app func() *App) *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !a.Service.Signup(cmd.Context(), reg) {
				return NewExitError(ExitFailure, "registration failed")
			}
			return a.Out.Success("Registered. Log in with: gitwise login " + reg.Email)
		},
	}

	cmd.Flags().StringVar(&reg.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&reg.Password, "password", "", "account password (required)")
	cmd.Flags().StringVar(&reg.Username, "username", "", "public username (required)")
	cmd.Flags().StringVar(&reg.Name, "name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(app func() *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !a.Service.Login(cmd.Context(), args[0], password) {
				return NewExitError(ExitFailure, "login failed")
			}
			user := a.Service.Store().State().User
			return a.Out.Success("Logged in as " + user.Username)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Service.Logout()
			return a.Out.Success("Logged out.")
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			state := a.Service.Store().State()
			if !state.LoggedIn() {
				return NewExitError(ExitFailure, "not logged in")
			}
			if a.Out.Format == "json" {
				return a.Out.Success(state.User)
			}
			return a.Out.Success(state.User.Username + " <" + state.User.Email + ">")
		},
	}
}
