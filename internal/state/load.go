package state

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/five82/moodlog/internal/api"
)

// Fetcher is the subset of the API client needed to build a dashboard.
type Fetcher interface {
	GetUserInfo(ctx context.Context, token string) (*api.Response, error)
	GetTodaysMood(ctx context.Context) (*api.Response, error)
	GetNotes(ctx context.Context) (*api.Response, error)
	GetMoodAnalytics(ctx context.Context, startDate, endDate string) (*api.Response, error)
	GetUnreadCount(ctx context.Context) (*api.Response, error)
	GetDailyQuestion(ctx context.Context) (*api.Response, error)
	GetUserAchievements(ctx context.Context) (*api.Response, error)
}

// AnalyticsDays is the window the dashboard counts moods over.
const AnalyticsDays = 30

// analyticsLayout is an ISO 8601 datetime without zone. The backend stores
// naive UTC timestamps.
const analyticsLayout = "2006-01-02T15:04:05"

// AnalyticsWindow returns the start and end query values for the
// AnalyticsDays ending at now. The start is midnight UTC so whole days are
// counted.
func AnalyticsWindow(now time.Time) (start, end string) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -AnalyticsDays)
	return from.Format(analyticsLayout), now.Format(analyticsLayout)
}

// Load fetches everything the dashboard shows. The profile, notes and
// analytics are required. A 404 from the remaining endpoints means the data
// does not exist (no mood logged today, feature not enabled on the backend).
func Load(ctx context.Context, f Fetcher, token string) (*Dashboard, error) {
	return LoadAt(ctx, f, token, time.Now())
}

// LoadAt is Load with the analytics window ending at now.
func LoadAt(ctx context.Context, f Fetcher, token string, now time.Time) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.User, err = api.DecodeAs[api.User](f.GetUserInfo(ctx, token)); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if d.Notes, err = api.DecodeAs[[]api.Note](f.GetNotes(ctx)); err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	start, end := AnalyticsWindow(now)
	if d.Analytics, err = api.DecodeAs[api.MoodAnalytics](f.GetMoodAnalytics(ctx, start, end)); err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}

	var errs []error
	mood, err := api.DecodeAs[api.MoodEntry](f.GetTodaysMood(ctx))
	switch {
	case err == nil:
		d.TodayMood, d.HasMood = mood, true
	case !api.IsStatus(err, http.StatusNotFound):
		errs = append(errs, fmt.Errorf("load today's mood: %w", err))
	}

	unread, err := api.DecodeAs[api.UnreadCount](f.GetUnreadCount(ctx))
	if optional(err) {
		d.UnreadCount = unread.UnreadCount
	} else {
		errs = append(errs, fmt.Errorf("load unread count: %w", err))
	}

	question, err := api.DecodeAs[api.DailyQuestion](f.GetDailyQuestion(ctx))
	if optional(err) {
		d.Question = question.Question
	} else {
		errs = append(errs, fmt.Errorf("load daily question: %w", err))
	}

	achievements, err := api.DecodeAs[[]api.UserAchievement](f.GetUserAchievements(ctx))
	if optional(err) {
		d.Achievements = achievements
	} else {
		errs = append(errs, fmt.Errorf("load achievements: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &d, nil
}

// optional reports whether err is nil or a 404.
func optional(err error) bool {
	return err == nil || api.IsStatus(err, http.StatusNotFound)
}
