package service

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/config"
)

var validate = validator.New()

var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ReminderConfig is the POST /reminder-settings payload. Enabled is a
// pointer so "absent" and "false" stay distinguishable.
type ReminderConfig struct {
	Enabled *bool    `json:"enabled" validate:"required"`
	Time    string   `json:"time" validate:"required"`
	Type    string   `json:"type" validate:"required,oneof=push email both"`
	Days    []string `json:"days" validate:"dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
}

// ValidateReminderConfig rejects the payload on the first failing check:
// field presence, then time format, then type, then day codes.
func ValidateReminderConfig(cfg *ReminderConfig) *ValidationError {
	if cfg == nil || cfg.Enabled == nil || cfg.Time == "" || cfg.Type == "" || cfg.Days == nil {
		return invalid(KindInvalidInput, "Invalid input")
	}
	if !timeRe.MatchString(cfg.Time) {
		return invalid(KindInvalidTime, "Invalid time format. Use HH:mm")
	}
	if err := validate.Struct(cfg); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			if fieldErr.Field() == "Type" {
				return invalid(KindInvalidType, "Invalid reminder type")
			}
			return invalid(KindInvalidDays, "Invalid day values")
		}
	}
	return nil
}

// DefaultReminderSettings is what a user without a settings row gets.
func DefaultReminderSettings(userID string) *internal.ReminderSettings {
	return &internal.ReminderSettings{
		UserID:  userID,
		Enabled: true,
		Time:    config.DefaultReminderTime,
		Type:    config.DefaultReminderType,
		Days:    []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}
}

// NewReminderSettings builds the row to upsert from a validated payload.
func NewReminderSettings(userID string, cfg *ReminderConfig) *internal.ReminderSettings {
	return &internal.ReminderSettings{
		UserID:    userID,
		Enabled:   *cfg.Enabled,
		Time:      cfg.Time,
		Type:      cfg.Type,
		Days:      cfg.Days,
		UpdatedAt: time.Now(),
	}
}
