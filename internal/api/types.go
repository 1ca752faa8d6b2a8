package api

import (
	"strings"
	"time"
)

// Credentials are the username/password pair sent to /auth/token.
type Credentials struct {
	Username string
	Password string
}

// UserCreate mirrors the /auth/register payload.
type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User mirrors the backend user representation.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate is the profile update payload; empty fields are omitted.
type UserUpdate struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// TokenResponse mirrors the /auth/token payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id,omitempty"`
}

// Mood values accepted by the backend.
const (
	MoodHappy   = "happy"
	MoodSad     = "sad"
	MoodAngry   = "angry"
	MoodCalm    = "calm"
	MoodTired   = "tired"
	MoodExcited = "excited"
	MoodAnxious = "anxious"
)

// Moods lists the mood values in display order.
var Moods = []string{MoodHappy, MoodExcited, MoodCalm, MoodTired, MoodAnxious, MoodSad, MoodAngry}

// MoodEntryInput is the payload for POST /mood.
type MoodEntryInput struct {
	Mood    string `json:"mood"`
	Details string `json:"details,omitempty"`
}

// MoodEntry mirrors a stored mood entry.
type MoodEntry struct {
	ID        int64     `json:"id"`
	Mood      string    `json:"mood"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodViewHistory mirrors /mood/history/views items.
type MoodViewHistory struct {
	ID        int64     `json:"id"`
	ViewedAt  time.Time `json:"viewed_at"`
	MoodEntry MoodEntry `json:"mood_entry"`
}

// MoodAnalytics maps mood value to entry count.
type MoodAnalytics map[string]int

// Total returns the number of entries across all moods.
func (a MoodAnalytics) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// MoodChartPoint mirrors /users/mood/chart items.
type MoodChartPoint struct {
	Date    time.Time `json:"date"`
	Mood    string    `json:"mood"`
	Details string    `json:"details"`
}

// MoodVerdict mirrors /users/mood/verdict.
type MoodVerdict struct {
	Verdict string `json:"verdict"`
}

// Period selects the window for chart and verdict endpoints.
type Period string

const (
	PeriodWeek        Period = "week"
	PeriodTwoWeeks    Period = "two_weeks"
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "three_months"
	PeriodHalfYear    Period = "half_year"
	PeriodYear        Period = "year"
)

// NoteInput is the payload for POST /mood/notes.
type NoteInput struct {
	Text string `json:"text"`
}

// Note mirrors a stored note.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification mirrors /notifications/ items.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCount mirrors /notifications/unread_count.
type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}

// Achievement mirrors /achievements/ items.
type Achievement struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserAchievement mirrors /achievements/user items.
type UserAchievement struct {
	ID          int64       `json:"id"`
	UnlockedAt  time.Time   `json:"unlocked_at"`
	Achievement Achievement `json:"achievement"`
}

// DailyQuestion mirrors /dialog/today.
type DailyQuestion struct {
	Question string `json:"question"`
}

// DialogMessage mirrors /dialog/history items.
type DialogMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// IsValidMood reports whether mood is one of the backend's values.
func IsValidMood(mood string) bool {
	mood = strings.ToLower(strings.TrimSpace(mood))
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}
