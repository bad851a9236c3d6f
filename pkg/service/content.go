package service

import (
	"context"
	"fmt"
	"time"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/formatter"
	"github.com/impactboard/admin-cli/pkg/logger"
	"github.com/impactboard/admin-cli/pkg/output"
)

// ContentService manages posts, resources and stories.
type ContentService struct {
	posts     *api.PostsService
	resources *api.ResourcesService
	stories   *api.StoriesService
	now       func() time.Time
}

// NewContentService creates a new content service
func NewContentService(svc *api.Services) *ContentService {
	return &ContentService{posts: svc.Posts, resources: svc.Resources, stories: svc.Stories, now: time.Now}
}

// printPagination writes the "page x of y" footer for backend-paged lists.
func printPagination(p *api.Pagination, shown int) {
	if p == nil || output.GetOutputFormat() == output.FormatJSON {
		return
	}
	total := p.Total
	if total == 0 {
		total = shown
	}
	formatter.Faint.Fprintf(output.Out, "Page %d of %d · %d total\n", p.Page, p.TotalPages, total)
}

// ListPosts displays a page of posts
func (s *ContentService) ListPosts(ctx context.Context, p api.ListParams) error {
	logger.Debug("Listing posts", "page", p.Page)
	res := s.posts.List(ctx, p)
	if err := api.AsError(res, "Failed to list posts"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No posts found.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, post := range res.Data {
		rows = append(rows, []string{
			post.Key(),
			formatter.Truncate(post.Title, 40),
			formatter.Truncate(post.Author.DisplayName(), 24),
			formatter.OrDash(post.Status),
			fmt.Sprint(int(post.Likes)),
			formatter.RelativeTime(post.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "TITLE", "AUTHOR", "STATUS", "LIKES", "CREATED"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// ViewPost displays a post's details
func (s *ContentService) ViewPost(ctx context.Context, id string) error {
	res := s.posts.Get(ctx, id)
	if err := api.AsError(res, "Failed to fetch post"); err != nil {
		return err
	}
	post := res.Data
	return output.PrintRecord(post.Title, post, []output.Field{
		{Label: "ID", Value: post.Key()},
		{Label: "Author", Value: post.Author.DisplayName()},
		{Label: "Status", Value: formatter.OrDash(post.Status)},
		{Label: "Tags", Value: formatter.OrDash(formatter.Tags(post.Tags))},
		{Label: "Likes", Value: int(post.Likes)},
		{Label: "Comments", Value: int(post.Comments)},
		{Label: "Created", Value: formatter.RelativeTime(post.CreatedAt.Time, s.now())},
		{Label: "Content", Value: post.Content},
	})
}

// CreatePost publishes a post as the signed-in admin
func (s *ContentService) CreatePost(ctx context.Context, in api.PostInput) error {
	if in.Title == "" || in.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	res := s.posts.Create(ctx, in)
	if err := api.AsError(res, "Failed to create post"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Post created: %s", res.Data.Key())
	return nil
}

// UpdatePost changes a post's fields or status
func (s *ContentService) UpdatePost(ctx context.Context, id string, in api.PostInput) error {
	res := s.posts.Update(ctx, id, in)
	if err := api.AsError(res, "Failed to update post"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Post updated: %s", id)
	return nil
}

// DeletePost removes a post
func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	logger.Debug("Deleting post", "post_id", id)
	if err := api.AsError(s.posts.Delete(ctx, id), "Failed to delete post"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Post deleted: %s", id)
	return nil
}

// ListResources displays a page of shared resources
func (s *ContentService) ListResources(ctx context.Context, p api.ListParams) error {
	res := s.resources.List(ctx, p)
	if err := api.AsError(res, "Failed to list resources"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No resources found.")
	}

	rows := make([][]string, 0, len(res.Data))
	for _, r := range res.Data {
		rows = append(rows, []string{
			r.Key(),
			formatter.Truncate(r.Title, 40),
			formatter.OrDash(r.Category),
			formatter.OrDash(r.FileType),
			formatter.Truncate(r.Author.DisplayName(), 24),
			formatter.OrDash(r.Status),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "TITLE", "CATEGORY", "TYPE", "AUTHOR", "STATUS"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// ViewResource displays a resource's details
func (s *ContentService) ViewResource(ctx context.Context, id string) error {
	res := s.resources.Get(ctx, id)
	if err := api.AsError(res, "Failed to fetch resource"); err != nil {
		return err
	}
	r := res.Data
	return output.PrintRecord(r.Title, r, []output.Field{
		{Label: "ID", Value: r.Key()},
		{Label: "URL", Value: formatter.OrDash(r.URL)},
		{Label: "Category", Value: formatter.OrDash(r.Category)},
		{Label: "File type", Value: formatter.OrDash(r.FileType)},
		{Label: "Author", Value: r.Author.DisplayName()},
		{Label: "Tags", Value: formatter.OrDash(formatter.Tags(r.Tags))},
		{Label: "Created", Value: formatter.RelativeTime(r.CreatedAt.Time, s.now())},
		{Label: "Description", Value: r.Description},
	})
}

// CreateResource shares a new resource
func (s *ContentService) CreateResource(ctx context.Context, in api.ResourceInput) error {
	if in.Title == "" || in.URL == "" {
		return fmt.Errorf("title and url are required")
	}
	res := s.resources.Create(ctx, in)
	if err := api.AsError(res, "Failed to create resource"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Resource created: %s", res.Data.Key())
	return nil
}

// UpdateResource changes a resource's fields or status
func (s *ContentService) UpdateResource(ctx context.Context, id string, in api.ResourceInput) error {
	if err := api.AsError(s.resources.Update(ctx, id, in), "Failed to update resource"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Resource updated: %s", id)
	return nil
}

// DeleteResource removes a resource
func (s *ContentService) DeleteResource(ctx context.Context, id string) error {
	if err := api.AsError(s.resources.Delete(ctx, id), "Failed to delete resource"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Resource deleted: %s", id)
	return nil
}

// ListStories displays a page of impact stories
func (s *ContentService) ListStories(ctx context.Context, p api.ListParams) error {
	res := s.stories.List(ctx, p)
	if err := api.AsError(res, "Failed to list stories"); err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return printEmpty("No stories found.")
	}

	now := s.now()
	rows := make([][]string, 0, len(res.Data))
	for _, st := range res.Data {
		rows = append(rows, []string{
			st.Key(),
			formatter.Truncate(st.Title, 40),
			formatter.OrDash(st.Location),
			formatter.Truncate(st.Author.DisplayName(), 24),
			formatter.RelativeTime(st.CreatedAt.Time, now),
		})
	}
	if err := output.PrintList(res.Data, []string{"ID", "TITLE", "LOCATION", "AUTHOR", "CREATED"}, rows); err != nil {
		return err
	}
	printPagination(res.Pagination, len(res.Data))
	return nil
}

// ViewStory displays a story's details
func (s *ContentService) ViewStory(ctx context.Context, id string) error {
	res := s.stories.Get(ctx, id)
	if err := api.AsError(res, "Failed to fetch story"); err != nil {
		return err
	}
	st := res.Data
	return output.PrintRecord(st.Title, st, []output.Field{
		{Label: "ID", Value: st.Key()},
		{Label: "Author", Value: st.Author.DisplayName()},
		{Label: "Location", Value: formatter.OrDash(st.Location)},
		{Label: "Impact", Value: formatter.OrDash(st.ImpactMetric)},
		{Label: "Created", Value: formatter.RelativeTime(st.CreatedAt.Time, s.now())},
		{Label: "Content", Value: st.Content},
	})
}

// CreateStory publishes an impact story
func (s *ContentService) CreateStory(ctx context.Context, in api.StoryInput) error {
	if in.Title == "" || in.Content == "" {
		return fmt.Errorf("title and content are required")
	}
	res := s.stories.Create(ctx, in)
	if err := api.AsError(res, "Failed to create story"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Story created: %s", res.Data.Key())
	return nil
}

// DeleteStory removes a story
func (s *ContentService) DeleteStory(ctx context.Context, id string) error {
	if err := api.AsError(s.stories.Delete(ctx, id), "Failed to delete story"); err != nil {
		return err
	}
	output.PrintSuccess("✓ Story deleted: %s", id)
	return nil
}
