package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/output"
	"github.com/impactboard/admin-cli/pkg/prompter"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	messagePages        pageFlags
	messageContent      string
	messageConversation string
)

var messageCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"message"},
	Short:   "Direct messaging commands",
	Long:    "Read, send and remove direct messages",
}

func newMessagesService() *service.MessagesService {
	return service.NewMessagesService(api.Default().Messages, newToasts())
}

var messageInboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMessagesService()
		if err := api.AsError(svc.LoadConversations(cmd.Context(), messagePages.params()), "Failed to load conversations"); err != nil {
			return err
		}
		return svc.PrintConversations(time.Now())
	},
}

var messageThreadCmd = &cobra.Command{
	Use:   "thread <conversation-id>",
	Short: "Show a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMessagesService()
		if err := api.AsError(svc.OpenThread(cmd.Context(), args[0], messagePages.params()), "Failed to load messages"); err != nil {
			return err
		}
		return svc.PrintThread(time.Now())
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send <conversation-id>",
	Short: "Send a direct message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content := messageContent
		if content == "" {
			var err error
			if content, err = prompter.PromptString("Message: "); err != nil {
				return err
			}
		}
		msg, err := newMessagesService().Send(cmd.Context(), args[0], content)
		if err != nil {
			return err
		}
		output.PrintSuccess("✓ Message sent: %s", msg.Key())
		return nil
	},
}

var messageMarkReadCmd = &cobra.Command{
	Use:   "mark-read <conversation-id>",
	Short: "Mark a conversation as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMessagesService()
		if err := api.AsError(svc.LoadConversations(cmd.Context(), api.ListParams{}), "Failed to load conversations"); err != nil {
			return err
		}
		return outcomeError(svc.MarkConversationRead(cmd.Context(), args[0]), "Conversation", args[0])
	},
}

var messageDeleteCmd = &cobra.Command{
	Use:   "delete <message-id>",
	Short: "Delete a message",
	Long: `Delete a message. With --conversation the thread is loaded first and
the message is removed from it immediately, coming back if the delete fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("message", args[0]); !ok || err != nil {
			return err
		}
		svc := newMessagesService()
		if messageConversation != "" {
			if err := api.AsError(svc.OpenThread(cmd.Context(), messageConversation, api.ListParams{}), "Failed to load messages"); err != nil {
				return err
			}
		}
		return outcomeError(svc.DeleteMessage(cmd.Context(), args[0]), "Message", args[0])
	},
}

func init() {
	messagePages.register(messageInboxCmd, 20)
	messageThreadCmd.Flags().IntVar(&messagePages.page, "page", 1, "Page number")
	messageThreadCmd.Flags().IntVar(&messagePages.limit, "limit", 50, "Messages per page")
	messageSendCmd.Flags().StringVarP(&messageContent, "content", "c", "", "Message text")
	messageDeleteCmd.Flags().StringVar(&messageConversation, "conversation", "", "Conversation the message belongs to")

	messageCmd.AddCommand(messageInboxCmd)
	messageCmd.AddCommand(messageThreadCmd)
	messageCmd.AddCommand(messageSendCmd)
	messageCmd.AddCommand(messageMarkReadCmd)
	messageCmd.AddCommand(messageDeleteCmd)
}
