package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/storage"
)

// CreateStudyLog persists a new log owned by user. The owner always comes
// from the resolved principal, never from the payload.
func CreateStudyLog(ctx context.Context, repo storage.StudyLogRepository, user *internal.User, title string, minutes float64, date string) (*internal.StudyLog, error) {
	log := &internal.StudyLog{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     title,
		Minutes:   minutes,
		Date:      date,
		CreatedAt: time.Now(),
	}
	if err := repo.SaveStudyLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ComputeAggregates derives the streak and cumulative-hours counters from a
// log history. The streak is the number of distinct log-bearing days within
// the trailing today/yesterday window, not a true consecutive-day run.
func ComputeAggregates(logs []internal.StudyLog, now time.Time) (currentStreak int, totalHours float64) {
	today := truncateToDay(now)
	yesterday := today.AddDate(0, 0, -1)

	seen := map[time.Time]bool{}
	for _, l := range logs {
		totalHours += l.Minutes / 60
		day := truncateToDay(l.CreatedAt.In(now.Location()))
		if day.Equal(today) || day.Equal(yesterday) {
			seen[day] = true
		}
	}
	return len(seen), totalHours
}

// RoundHours rounds an hour total to two decimals for API responses.
func RoundHours(hours float64) float64 {
	return math.Round(hours*100) / 100
}

// RefreshMilestones recomputes the user's aggregates from their full log
// history and persists any newly crossed thresholds. Called after log
// creation; failures are for the caller to log and swallow.
func RefreshMilestones(ctx context.Context, logRepo storage.StudyLogRepository, msRepo storage.MilestoneRepository, userID string, now time.Time) ([]string, error) {
	logs, err := logRepo.ListStudyLogs(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, hours := ComputeAggregates(logs, now)

	achieved, err := msRepo.ListMilestones(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievedTypes := make([]string, 0, len(achieved))
	for _, m := range achieved {
		achievedTypes = append(achievedTypes, m.MilestoneType)
	}

	newTypes := CheckMilestones(float64(streak), hours, achievedTypes)
	if len(newTypes) == 0 {
		return newTypes, nil
	}
	return newTypes, saveMilestoneTypes(ctx, msRepo, userID, newTypes, now)
}

// RebuildMilestones drops the user's milestone rows and re-derives them from
// the remaining log history. Used after log deletion, where an achievement
// may no longer be justified.
func RebuildMilestones(ctx context.Context, logRepo storage.StudyLogRepository, msRepo storage.MilestoneRepository, userID string, now time.Time) error {
	logs, err := logRepo.ListStudyLogs(ctx, userID)
	if err != nil {
		return err
	}
	streak, hours := ComputeAggregates(logs, now)

	if err := msRepo.DeleteMilestones(ctx, userID); err != nil {
		return err
	}
	types := CheckMilestones(float64(streak), hours, nil)
	if len(types) == 0 {
		return nil
	}
	return saveMilestoneTypes(ctx, msRepo, userID, types, now)
}

func saveMilestoneTypes(ctx context.Context, msRepo storage.MilestoneRepository, userID string, types []string, now time.Time) error {
	records := make([]internal.MilestoneRecord, 0, len(types))
	for _, t := range types {
		records = append(records, internal.MilestoneRecord{
			UserID:        userID,
			MilestoneType: t,
			AchievedAt:    now,
		})
	}
	return msRepo.SaveMilestones(ctx, records)
}
