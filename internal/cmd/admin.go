package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	usersSearch       string
	usersRoleFilter   string
	usersStatusFilter string
	usersStatusReason string
	usersPages        pageFlags
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewDashboardService(api.Default()).Show(cmd.Context())
	},
}

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "Member management commands",
	Long:    "List members, change their role or status, and remove accounts (admin-only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List members",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := usersPages.params()
		p.Search = usersSearch
		p.Status = usersStatusFilter
		if usersRoleFilter != "" {
			p.Extra = map[string]string{"role": usersRoleFilter}
		}
		return service.NewUserService(api.Default()).ListUsers(cmd.Context(), p)
	},
}

var usersViewCmd = &cobra.Command{
	Use:   "view <user-id>",
	Short: "View a member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewUserService(api.Default()).ViewUser(cmd.Context(), args[0])
	},
}

var usersStatusCmd = &cobra.Command{
	Use:       "status <user-id> <" + strings.Join(service.UserStatuses, "|") + ">",
	Short:     "Activate, suspend or ban a member",
	Args:      cobra.ExactArgs(2),
	ValidArgs: service.UserStatuses,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewUserService(api.Default()).SetStatus(cmd.Context(), args[0], args[1], usersStatusReason)
	},
}

var usersRoleCmd = &cobra.Command{
	Use:   "role <user-id> <" + strings.Join(service.UserRoles, "|") + ">",
	Short: "Change a member's role",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewUserService(api.Default()).SetRole(cmd.Context(), args[0], args[1])
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete a member account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("user", args[0]); !ok || err != nil {
			return err
		}
		return service.NewUserService(api.Default()).DeleteUser(cmd.Context(), args[0])
	},
}

func init() {
	usersPages.register(usersListCmd, 20)
	usersListCmd.Flags().StringVar(&usersSearch, "search", "", "Match name, username or email")
	usersListCmd.Flags().StringVar(&usersRoleFilter, "role", "", "Filter by role")
	usersListCmd.Flags().StringVar(&usersStatusFilter, "status", "", "Filter by status")
	usersStatusCmd.Flags().StringVar(&usersStatusReason, "reason", "", "Reason recorded with the change")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersViewCmd)
	usersCmd.AddCommand(usersStatusCmd)
	usersCmd.AddCommand(usersRoleCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}
