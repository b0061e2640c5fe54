package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type StudyLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Minutes   float64   `json:"minutes"`
	Date      string    `json:"date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

type MilestoneRecord struct {
	UserID        string    `json:"user_id"`
	MilestoneType string    `json:"milestone_type"`
	AchievedAt    time.Time `json:"achieved_at"`
}

type ReminderSettings struct {
	UserID    string    `json:"user_id"`
	Enabled   bool      `json:"reminder_enabled"`
	Time      string    `json:"reminder_time"` // HH:MM
	Type      string    `json:"reminder_type"` // push, email or both
	Days      []string  `json:"reminder_days"` // Mon..Sun codes
	UpdatedAt time.Time `json:"updated_at"`
}

// WeeklyBucket is one day of the Sunday-first weekly view. Derived, never persisted.
type WeeklyBucket struct {
	Day     string  `json:"day"`
	Date    string  `json:"date"`
	Minutes float64 `json:"minutes"`
	IsToday bool    `json:"isToday"`
}
