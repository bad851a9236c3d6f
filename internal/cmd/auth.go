package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	loginEmail    string
	loginPassword string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Sign in to the Impactboard admin API",
}

func newAuthService() *service.AuthService {
	return service.NewAuthService(newSession(api.Default()), nil)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login with email and password",
	Long:  "Authenticate and save the session. Missing credentials are prompted for.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newAuthService().Login(cmd.Context(), loginEmail, loginPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newAuthService().Logout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Display the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newAuthService().WhoAmI(cmd.Context())
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
}
