package api

import (
	"context"

	"github.com/go-resty/resty/v2"
)

// collection holds the list/get/create/delete calls shared by the content
// resources. T is the model, In the write payload.
type collection[T, In any] struct {
	c       *resty.Client
	service string
	path    string
}

func (s collection[T, In]) list(ctx context.Context, p ListParams) Result[[]T] {
	return callList[T](ctx, s.c, s.service, "list", p.Limit, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParams(p.Query()).Get(s.path)
	})
}

func (s collection[T, In]) get(ctx context.Context, id string) Result[T] {
	return call(ctx, s.c, s.service, "get", *new(T), func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Get(s.path + "/{id}")
	})
}

func (s collection[T, In]) create(ctx context.Context, in In) Result[T] {
	return call(ctx, s.c, s.service, "create", *new(T), func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(in).Post(s.path)
	})
}

func (s collection[T, In]) update(ctx context.Context, id string, in In) Result[T] {
	return call(ctx, s.c, s.service, "update", *new(T), func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).SetBody(in).Put(s.path + "/{id}")
	})
}

func (s collection[T, In]) delete(ctx context.Context, id string) Result[any] {
	return call[any](ctx, s.c, s.service, "delete", nil, func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("id", id).Delete(s.path + "/{id}")
	})
}

// PostsService wraps /api/posts.
type PostsService struct {
	collection[Post, PostInput]
}

func NewPostsService(c *resty.Client) *PostsService {
	return &PostsService{collection[Post, PostInput]{c: c, service: "posts", path: "/api/posts"}}
}

func (s *PostsService) List(ctx context.Context, p ListParams) Result[[]Post] { return s.list(ctx, p) }
func (s *PostsService) Get(ctx context.Context, id string) Result[Post]       { return s.get(ctx, id) }
func (s *PostsService) Create(ctx context.Context, in PostInput) Result[Post]  { return s.create(ctx, in) }
func (s *PostsService) Delete(ctx context.Context, id string) Result[any]      { return s.delete(ctx, id) }

func (s *PostsService) Update(ctx context.Context, id string, in PostInput) Result[Post] {
	return s.update(ctx, id, in)
}

// ResourcesService wraps /api/resources.
type ResourcesService struct {
	collection[Resource, ResourceInput]
}

func NewResourcesService(c *resty.Client) *ResourcesService {
	return &ResourcesService{collection[Resource, ResourceInput]{c: c, service: "resources", path: "/api/resources"}}
}

func (s *ResourcesService) List(ctx context.Context, p ListParams) Result[[]Resource] {
	return s.list(ctx, p)
}

func (s *ResourcesService) Get(ctx context.Context, id string) Result[Resource] { return s.get(ctx, id) }

func (s *ResourcesService) Create(ctx context.Context, in ResourceInput) Result[Resource] {
	return s.create(ctx, in)
}

func (s *ResourcesService) Update(ctx context.Context, id string, in ResourceInput) Result[Resource] {
	return s.update(ctx, id, in)
}

func (s *ResourcesService) Delete(ctx context.Context, id string) Result[any] { return s.delete(ctx, id) }

// StoriesService wraps /api/stories. Stories cannot be edited once posted.
type StoriesService struct {
	collection[Story, StoryInput]
}

func NewStoriesService(c *resty.Client) *StoriesService {
	return &StoriesService{collection[Story, StoryInput]{c: c, service: "stories", path: "/api/stories"}}
}

func (s *StoriesService) List(ctx context.Context, p ListParams) Result[[]Story] { return s.list(ctx, p) }
func (s *StoriesService) Get(ctx context.Context, id string) Result[Story]       { return s.get(ctx, id) }
func (s *StoriesService) Create(ctx context.Context, in StoryInput) Result[Story] { return s.create(ctx, in) }
func (s *StoriesService) Delete(ctx context.Context, id string) Result[any]      { return s.delete(ctx, id) }
