package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/service"
)

var connectionPages pageFlags

var connectionsCmd = &cobra.Command{
	Use:     "connections",
	Aliases: []string{"connection"},
	Short:   "Connection commands",
	Long:    "View connections and answer pending connection requests",
}

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewConnectionService(api.Default()).ListConnections(cmd.Context(), connectionPages.params())
	},
}

var connectionsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending connection requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewConnectionService(api.Default()).ListRequests(cmd.Context(), api.ListParams{})
	},
}

var connectionsAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept a connection request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewConnectionService(api.Default()).Accept(cmd.Context(), args[0])
	},
}

var connectionsDeclineCmd = &cobra.Command{
	Use:   "decline <request-id>",
	Short: "Decline a connection request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewConnectionService(api.Default()).Decline(cmd.Context(), args[0])
	},
}

var connectionsRemoveCmd = &cobra.Command{
	Use:   "remove <connection-id>",
	Short: "Remove a connection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("connection", args[0]); !ok || err != nil {
			return err
		}
		return service.NewConnectionService(api.Default()).Remove(cmd.Context(), args[0])
	},
}

func init() {
	connectionPages.register(connectionsListCmd, 20)

	connectionsCmd.AddCommand(connectionsListCmd)
	connectionsCmd.AddCommand(connectionsRequestsCmd)
	connectionsCmd.AddCommand(connectionsAcceptCmd)
	connectionsCmd.AddCommand(connectionsDeclineCmd)
	connectionsCmd.AddCommand(connectionsRemoveCmd)
}
