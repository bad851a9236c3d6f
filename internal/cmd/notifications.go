package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/config"
	clierrors "github.com/impactboard/admin-cli/pkg/errors"
	"github.com/impactboard/admin-cli/pkg/realtime"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	notifPages      pageFlags
	notifUnreadOnly bool
	broadcastInput  api.BroadcastInput
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Notification commands",
	Long:    "View, stream and broadcast notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := notifPages.params()
		if notifUnreadOnly {
			p.Extra = map[string]string{"unread": "true"}
		}
		return service.NewNotificationService(api.Default()).ListNotifications(cmd.Context(), p)
	},
}

var notificationsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for real-time notifications",
	Long:  "Stream notifications and new submissions over the realtime connection until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := newSession(api.Default()).Restore()
		if err != nil {
			return err
		}
		if creds == nil {
			return clierrors.UnauthorizedError()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stream := realtime.NewClient(realtime.DefaultConfig(config.RealtimeURL()))
		return service.NewNotificationWatcher(stream, newToasts()).Watch(ctx, creds.Token)
	},
}

var notificationsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show unread notification count",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewNotificationService(api.Default()).UnreadCount(cmd.Context())
	},
}

var notificationsMarkReadCmd = &cobra.Command{
	Use:   "mark-read [notification-id]",
	Short: "Mark notifications as read",
	Long:  "Mark one notification as read, or all of them when no ID is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewNotificationService(api.Default())
		if len(args) == 0 {
			return svc.MarkAllRead(cmd.Context())
		}
		return svc.MarkRead(cmd.Context(), args[0])
	},
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <notification-id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewNotificationService(api.Default()).Delete(cmd.Context(), args[0])
	},
}

var notificationsBroadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "Send an announcement to members",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewNotificationService(api.Default()).Broadcast(cmd.Context(), broadcastInput)
	},
}

func init() {
	notifPages.register(notificationsListCmd, 20)
	notificationsListCmd.Flags().BoolVar(&notifUnreadOnly, "unread", false, "Only unread notifications")

	notificationsBroadcastCmd.Flags().StringVarP(&broadcastInput.Title, "title", "t", "", "Announcement title")
	notificationsBroadcastCmd.Flags().StringVarP(&broadcastInput.Message, "message", "m", "", "Announcement text")
	notificationsBroadcastCmd.Flags().StringVar(&broadcastInput.Audience, "audience", "", "Audience (default: all members)")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsWatchCmd)
	notificationsCmd.AddCommand(notificationsCountCmd)
	notificationsCmd.AddCommand(notificationsMarkReadCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	notificationsCmd.AddCommand(notificationsBroadcastCmd)
}
