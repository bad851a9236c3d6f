package api

import (
	"github.com/go-resty/resty/v2"
	"github.com/impactboard/admin-cli/pkg/client"
)

// Services bundles every service client over one transport.
type Services struct {
	Admin         *AdminService
	Posts         *PostsService
	Resources     *ResourcesService
	Stories       *StoriesService
	QnA           *QnAService
	Connections   *ConnectionsService
	Notifications *NotificationsService
	Users         *UsersService
	Messages      *MessagesService
	Auth          *AuthService
}

func New(c *resty.Client) *Services {
	return &Services{
		Admin:         NewAdminService(c),
		Posts:         NewPostsService(c),
		Resources:     NewResourcesService(c),
		Stories:       NewStoriesService(c),
		QnA:           NewQnAService(c),
		Connections:   NewConnectionsService(c),
		Notifications: NewNotificationsService(c),
		Users:         NewUsersService(c),
		Messages:      NewMessagesService(c),
		Auth:          NewAuthService(c),
	}
}

// Default builds the services over the shared client.
func Default() *Services {
	return New(client.GetClient())
}
