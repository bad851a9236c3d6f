package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	resourceInput    api.ResourceInput
	resourceSearch   string
	resourceCategory string
	resourcePages    pageFlags
)

var resourceCmd = &cobra.Command{
	Use:     "resources",
	Aliases: []string{"resource"},
	Short:   "Resource library commands",
	Long:    "List, view, share and moderate library resources",
}

var resourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := resourcePages.params()
		p.Search = resourceSearch
		if resourceCategory != "" {
			p.Extra = map[string]string{"category": resourceCategory}
		}
		return service.NewContentService(api.Default()).ListResources(cmd.Context(), p)
	},
}

var resourceViewCmd = &cobra.Command{
	Use:   "view <resource-id>",
	Short: "View resource details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).ViewResource(cmd.Context(), args[0])
	},
}

var resourceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Share a new resource",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).CreateResource(cmd.Context(), resourceInput)
	},
}

var resourceUpdateCmd = &cobra.Command{
	Use:   "update <resource-id>",
	Short: "Update a resource's fields or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).UpdateResource(cmd.Context(), args[0], resourceInput)
	},
}

var resourceDeleteCmd = &cobra.Command{
	Use:   "delete <resource-id>",
	Short: "Delete a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("resource", args[0]); !ok || err != nil {
			return err
		}
		return service.NewContentService(api.Default()).DeleteResource(cmd.Context(), args[0])
	},
}

func init() {
	resourcePages.register(resourceListCmd, 10)
	resourceListCmd.Flags().StringVar(&resourceSearch, "search", "", "Search text")
	resourceListCmd.Flags().StringVar(&resourceCategory, "category", "", "Filter by category")

	for _, c := range []*cobra.Command{resourceCreateCmd, resourceUpdateCmd} {
		c.Flags().StringVarP(&resourceInput.Title, "title", "t", "", "Resource title")
		c.Flags().StringVarP(&resourceInput.Description, "description", "d", "", "Description")
		c.Flags().StringVar(&resourceInput.URL, "url", "", "Link or file URL")
		c.Flags().StringVar(&resourceInput.Category, "category", "", "Category")
		c.Flags().StringSliceVar(&resourceInput.Tags, "tag", nil, "Tag (repeatable)")
	}
	resourceUpdateCmd.Flags().StringVar(&resourceInput.Status, "status", "", "New status")

	resourceCmd.AddCommand(resourceListCmd)
	resourceCmd.AddCommand(resourceViewCmd)
	resourceCmd.AddCommand(resourceCreateCmd)
	resourceCmd.AddCommand(resourceUpdateCmd)
	resourceCmd.AddCommand(resourceDeleteCmd)
}
