package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/prompter"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	storyInput api.StoryInput
	storyPages pageFlags
)

var storyCmd = &cobra.Command{
	Use:     "stories",
	Aliases: []string{"story"},
	Short:   "Impact story commands",
	Long:    "List, view, publish and remove impact stories",
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).ListStories(cmd.Context(), storyPages.params())
	},
}

var storyViewCmd = &cobra.Command{
	Use:   "view <story-id>",
	Short: "View a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).ViewStory(cmd.Context(), args[0])
	},
}

var storyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish an impact story",
	Long:  "Publish an impact story. Without --content the body is read from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := storyInput
		if in.Content == "" {
			content, err := prompter.PromptMultilineString("Story", 200)
			if err != nil {
				return err
			}
			in.Content = content
		}
		return service.NewContentService(api.Default()).CreateStory(cmd.Context(), in)
	},
}

var storyDeleteCmd = &cobra.Command{
	Use:   "delete <story-id>",
	Short: "Delete a story",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("story", args[0]); !ok || err != nil {
			return err
		}
		return service.NewContentService(api.Default()).DeleteStory(cmd.Context(), args[0])
	},
}

func init() {
	storyPages.register(storyListCmd, 10)

	storyCreateCmd.Flags().StringVarP(&storyInput.Title, "title", "t", "", "Story title")
	storyCreateCmd.Flags().StringVarP(&storyInput.Content, "content", "c", "", "Story body")
	storyCreateCmd.Flags().StringVar(&storyInput.Location, "location", "", "Where it happened")
	storyCreateCmd.Flags().StringVar(&storyInput.ImpactMetric, "impact", "", "Headline impact, e.g. \"120 trees planted\"")

	storyCmd.AddCommand(storyListCmd)
	storyCmd.AddCommand(storyViewCmd)
	storyCmd.AddCommand(storyCreateCmd)
	storyCmd.AddCommand(storyDeleteCmd)
}
