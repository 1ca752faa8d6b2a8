package api

import (
	"context"
	"net/http"
	"strconv"
)

// CreateMoodEntry records today's mood. The backend updates the entry if one
// already exists for the day.
func (c *Client) CreateMoodEntry(ctx context.Context, data any) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, "/mood", data)
}

// GetTodaysMood fetches today's entry; the backend answers 404 when none exists.
func (c *Client) GetTodaysMood(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/mood/today"})
}

// DeleteMoodEntry deletes the current mood entry. There is no identifier:
// the backend keeps a single current entry per user.
func (c *Client) DeleteMoodEntry(ctx context.Context) (*Response, error) {
	return c.do(ctx, call{method: http.MethodDelete, path: "/mood"})
}

// GetMoodAnalytics fetches per-mood counts between two dates.
func (c *Client) GetMoodAnalytics(ctx context.Context, startDate, endDate string) (*Response, error) {
	return c.do(ctx, call{
		method: http.MethodGet,
		path:   "/mood/analytics/moods",
		query:  encodePairs("start_date", startDate, "end_date", endDate),
	})
}

// GetMoodEntry fetches one entry by id; the backend records the view.
func (c *Client) GetMoodEntry(ctx context.Context, id string) (*Response, error) {
	path, err := idPath("/mood/", id, "")
	if err != nil {
		return nil, err
	}
	return c.do(ctx, call{method: http.MethodGet, path: path})
}

// GetViewHistory pages through viewed entries. Zero values use backend defaults.
func (c *Client) GetViewHistory(ctx context.Context, page, perPage int) (*Response, error) {
	var kv []string
	if page > 0 {
		kv = append(kv, "page", strconv.Itoa(page))
	}
	if perPage > 0 {
		kv = append(kv, "per_page", strconv.Itoa(perPage))
	}
	return c.do(ctx, call{method: http.MethodGet, path: "/mood/history/views", query: encodePairs(kv...)})
}

// GetMoodChart fetches entries for the period.
func (c *Client) GetMoodChart(ctx context.Context, period Period) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/users/mood/chart", query: periodQuery(period)})
}

// GetMoodVerdict fetches the backend's summary of the period.
func (c *Client) GetMoodVerdict(ctx context.Context, period Period) (*Response, error) {
	return c.do(ctx, call{method: http.MethodGet, path: "/users/mood/verdict", query: periodQuery(period)})
}

func periodQuery(period Period) string {
	if period == "" {
		return ""
	}
	return encodePairs("period", string(period))
}
