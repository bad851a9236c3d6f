package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/service"
)

var (
	postTitle   string
	postContent string
	postTags    []string
	postStatus  string
	postSearch  string
	postPages   pageFlags
)

var postCmd = &cobra.Command{
	Use:     "posts",
	Aliases: []string{"post"},
	Short:   "Post management commands",
	Long:    "List, view, publish and moderate community posts",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := postPages.params()
		p.Search = postSearch
		p.Status = postStatus
		return service.NewContentService(api.Default()).ListPosts(cmd.Context(), p)
	},
}

var postViewCmd = &cobra.Command{
	Use:   "view <post-id>",
	Short: "View post details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).ViewPost(cmd.Context(), args[0])
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a post as the signed-in admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).CreatePost(cmd.Context(), api.PostInput{
			Title:   postTitle,
			Content: postContent,
			Tags:    postTags,
		})
	},
}

var postUpdateCmd = &cobra.Command{
	Use:   "update <post-id>",
	Short: "Update a post's fields or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewContentService(api.Default()).UpdatePost(cmd.Context(), args[0], api.PostInput{
			Title:   postTitle,
			Content: postContent,
			Tags:    postTags,
			Status:  postStatus,
		})
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ok, err := confirmDelete("post", args[0]); !ok || err != nil {
			return err
		}
		return service.NewContentService(api.Default()).DeletePost(cmd.Context(), args[0])
	},
}

func init() {
	postPages.register(postListCmd, 10)
	postListCmd.Flags().StringVar(&postSearch, "search", "", "Search text")
	postListCmd.Flags().StringVar(&postStatus, "status", "", "Filter by status")

	for _, c := range []*cobra.Command{postCreateCmd, postUpdateCmd} {
		c.Flags().StringVarP(&postTitle, "title", "t", "", "Post title")
		c.Flags().StringVarP(&postContent, "content", "c", "", "Post body")
		c.Flags().StringSliceVar(&postTags, "tag", nil, "Tag (repeatable)")
	}
	postUpdateCmd.Flags().StringVar(&postStatus, "status", "", "New status (e.g. published, hidden)")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postViewCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postUpdateCmd)
	postCmd.AddCommand(postDeleteCmd)
}
