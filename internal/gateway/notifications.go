package gateway

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/example/storefront-client/internal/notification"
)

// notificationDTO is the wire shape of one notification.
type notificationDTO struct {
	ID        string `json:"_id"`
	User      string `json:"user"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (d notificationDTO) normalize() notification.Notification {
	createdAt, _ := time.Parse(time.RFC3339, d.CreatedAt)
	return notification.Notification{
		ID:        d.ID,
		Title:     d.Title,
		Message:   d.Message,
		Type:      notification.Type(d.Type),
		Read:      d.Read,
		Link:      d.Link,
		CreatedAt: createdAt,
	}
}

// NotificationPage is one page of a user's notifications.
type NotificationPage struct {
	Notifications []notification.Notification
	Page          int
	Pages         int
	Total         int
}

// Notifications is the typed gateway for the notifications resource, polled
// by the client; delivery semantics are the backend's business.
type Notifications struct {
	c *Client
}

// ListForUser fetches one page of a user's notifications.
func (g *Notifications) ListForUser(ctx context.Context, userID string, page, limit int) (*NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Notifications []notificationDTO `json:"notifications"`
		Page          int               `json:"page"`
		Pages         int               `json:"pages"`
		Total         int               `json:"total"`
	}
	if err := g.c.get(ctx, "/notifications/user/"+url.PathEscape(userID), params, &resp); err != nil {
		return nil, err
	}

	out := &NotificationPage{Page: resp.Page, Pages: resp.Pages, Total: resp.Total}
	for _, dto := range resp.Notifications {
		out.Notifications = append(out.Notifications, dto.normalize())
	}
	return out, nil
}

// MarkRead marks one notification as read.
func (g *Notifications) MarkRead(ctx context.Context, id string) (*notification.Notification, error) {
	var dto notificationDTO
	if err := g.c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", struct{}{}, &dto); err != nil {
		return nil, err
	}
	n := dto.normalize()
	return &n, nil
}

// MarkAllRead marks every notification of the signed-in user as read and
// returns how many were modified.
func (g *Notifications) MarkAllRead(ctx context.Context) (int, error) {
	var resp struct {
		Success       bool   `json:"success"`
		Message       string `json:"message"`
		ModifiedCount int    `json:"modifiedCount"`
	}
	if err := g.c.put(ctx, "/notifications/read-all", struct{}{}, &resp); err != nil {
		return 0, err
	}
	return resp.ModifiedCount, nil
}

// Delete removes one notification.
func (g *Notifications) Delete(ctx context.Context, id string) error {
	return g.c.delete(ctx, "/notifications/"+url.PathEscape(id), nil)
}

// DeleteRead removes all read notifications and returns how many went away.
func (g *Notifications) DeleteRead(ctx context.Context) (int, error) {
	var resp struct {
		Success      bool   `json:"success"`
		Message      string `json:"message"`
		DeletedCount int    `json:"deletedCount"`
	}
	if err := g.c.delete(ctx, "/notifications/read", &resp); err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}
