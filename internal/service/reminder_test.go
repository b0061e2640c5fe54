package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/studytracker/internal/config"
)

func boolPtr(b bool) *bool { return &b }

func validReminder() *ReminderConfig {
	return &ReminderConfig{
		Enabled: boolPtr(true),
		Time:    "19:00",
		Type:    "push",
		Days:    []string{"Mon", "Wed", "Fri"},
	}
}

func TestValidateReminderConfig_Valid(t *testing.T) {
	assert.Nil(t, ValidateReminderConfig(validReminder()))

	// An empty (but present) day list is allowed.
	cfg := validReminder()
	cfg.Days = []string{}
	assert.Nil(t, ValidateReminderConfig(cfg))

	cfg = validReminder()
	cfg.Enabled = boolPtr(false)
	assert.Nil(t, ValidateReminderConfig(cfg))
}

func TestValidateReminderConfig_MissingFields(t *testing.T) {
	for name, mutate := range map[string]func(*ReminderConfig){
		"nil enabled":  func(c *ReminderConfig) { c.Enabled = nil },
		"empty time":   func(c *ReminderConfig) { c.Time = "" },
		"empty type":   func(c *ReminderConfig) { c.Type = "" },
		"nil days":     func(c *ReminderConfig) { c.Days = nil },
	} {
		cfg := validReminder()
		mutate(cfg)
		verr := ValidateReminderConfig(cfg)
		assert.NotNil(t, verr, name)
		assert.Equal(t, "Invalid input", verr.Message, name)
	}
}

func TestValidateReminderConfig_TimeFormat(t *testing.T) {
	for _, bad := range []string{"9:00", "19:0", "1900", "19:00:00", "late"} {
		cfg := validReminder()
		cfg.Time = bad
		verr := ValidateReminderConfig(cfg)
		assert.NotNil(t, verr, "time=%s", bad)
		assert.Equal(t, "Invalid time format. Use HH:mm", verr.Message)
	}

	// Pattern-only check; out-of-range digits still pass.
	cfg := validReminder()
	cfg.Time = "25:99"
	assert.Nil(t, ValidateReminderConfig(cfg))
}

func TestValidateReminderConfig_Type(t *testing.T) {
	cfg := validReminder()
	cfg.Type = "sms"
	verr := ValidateReminderConfig(cfg)
	assert.NotNil(t, verr)
	assert.Equal(t, "Invalid reminder type", verr.Message)
}

func TestValidateReminderConfig_Days(t *testing.T) {
	cfg := validReminder()
	cfg.Days = []string{"Mon", "Funday"}
	verr := ValidateReminderConfig(cfg)
	assert.NotNil(t, verr)
	assert.Equal(t, "Invalid day values", verr.Message)
}

func TestDefaultReminderSettings(t *testing.T) {
	st := DefaultReminderSettings("u1")
	assert.Equal(t, "u1", st.UserID)
	assert.True(t, st.Enabled)
	assert.Equal(t, config.DefaultReminderTime, st.Time)
	assert.Equal(t, config.DefaultReminderType, st.Type)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, st.Days)
}

func TestNewReminderSettings(t *testing.T) {
	cfg := validReminder()
	st := NewReminderSettings("u1", cfg)
	assert.Equal(t, "u1", st.UserID)
	assert.True(t, st.Enabled)
	assert.Equal(t, "19:00", st.Time)
	assert.Equal(t, "push", st.Type)
	assert.Equal(t, []string{"Mon", "Wed", "Fri"}, st.Days)
	assert.False(t, st.UpdatedAt.IsZero())
}
