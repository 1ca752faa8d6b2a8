package api

import (
	"context"
	"net/http"
)

// GetNotifications lists notifications, newest first.
func (c *Client) GetNotifications(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/notifications/"})
}

// GetUnreadCount returns {"unread_count": n}.
func (c *Client) GetUnreadCount(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/notifications/unread_count"})
}

// MarkNotificationRead flags a notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (*Response, error) {
	path, err := idPath("/notifications/", id, "/read")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{method: http.MethodPut, path: path})
}

// GetAchievements lists every achievement the backend knows about.
func (c *Client) GetAchievements(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/achievements/"})
}

// GetUserAchievements lists achievements unlocked by the current user.
func (c *Client) GetUserAchievements(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/achievements/user"})
}

// GetDailyQuestion fetches the question of the day.
func (c *Client) GetDailyQuestion(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/dialog/today"})
}

// AnswerDailyQuestion saves or replaces today's answer.
func (c *Client) AnswerDailyQuestion(ctx context.Context, answer string) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, "/dialog/answer", struct {
		Answer string `json:"answer"`
	}{Answer: answer})
}

// GetDialogHistory lists past questions and answers.
func (c *Client) GetDialogHistory(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/dialog/history"})
}
