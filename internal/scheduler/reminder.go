package scheduler

import (
	"context"
	"slices"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/storage"
)

// ReminderScheduler fires once a minute and finds every enabled reminder
// whose time and weekday match the tick. Delivery is a log line only; real
// push/email is out of scope.
type ReminderScheduler struct {
	settings storage.SettingsRepository
	cron     *cron.Cron
	logger   internal.Logger
}

func NewReminderScheduler(settings storage.SettingsRepository, logger internal.Logger) *ReminderScheduler {
	return &ReminderScheduler{
		settings: settings,
		cron:     cron.New(),
		logger:   logger,
	}
}

func (s *ReminderScheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		s.dispatch(time.Now())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Infof("reminder scheduler started")
	return nil
}

func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Infof("reminder scheduler stopped")
}

func (s *ReminderScheduler) dispatch(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.settings.ListEnabledSettings(ctx)
	if err != nil {
		s.logger.Errorf("reminder: failed to list settings: %v", err)
		return
	}
	for _, st := range rows {
		if ShouldFire(st, now) {
			s.logger.Infof("reminder: dispatching %s notification to user %s", st.Type, st.UserID)
		}
	}
}

// ShouldFire reports whether a reminder matches the given instant: the
// HH:MM must equal the wall clock minute and the weekday must be among the
// configured day codes.
func ShouldFire(st internal.ReminderSettings, now time.Time) bool {
	if !st.Enabled {
		return false
	}
	if st.Time != now.Format("15:04") {
		return false
	}
	return slices.Contains(st.Days, now.Weekday().String()[:3])
}
