package storage

import (
	"context"
	"errors"

	"github.com/yourname/studytracker/internal"
)

// ErrNotFound signals a missing row (settings lookups) as opposed to a
// backend failure.
var ErrNotFound = errors.New("storage: not found")

type StudyLogRepository interface {
	SaveStudyLog(ctx context.Context, log *internal.StudyLog) error
	// ListStudyLogs returns the user's logs, newest created_at first.
	ListStudyLogs(ctx context.Context, userID string) ([]internal.StudyLog, error)
	// DeleteStudyLog removes the log only when both id and owner match and
	// reports the affected-row count.
	DeleteStudyLog(ctx context.Context, id, userID string) (int64, error)
}

type MilestoneRepository interface {
	ListMilestones(ctx context.Context, userID string) ([]internal.MilestoneRecord, error)
	// SaveMilestones inserts records idempotently: an existing
	// (user_id, milestone_type) pair is left untouched.
	SaveMilestones(ctx context.Context, records []internal.MilestoneRecord) error
	DeleteMilestones(ctx context.Context, userID string) error
}

type SettingsRepository interface {
	// GetSettings returns ErrNotFound when the user has no settings row.
	GetSettings(ctx context.Context, userID string) (*internal.ReminderSettings, error)
	UpsertSettings(ctx context.Context, settings *internal.ReminderSettings) (*internal.ReminderSettings, error)
	ListEnabledSettings(ctx context.Context) ([]internal.ReminderSettings, error)
}

// Store bundles the three repositories a backend must provide.
type Store interface {
	StudyLogRepository
	MilestoneRepository
	SettingsRepository
	Close() error
}
