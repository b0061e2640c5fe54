package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/storage"
)

func newTestStore(t *testing.T) *storage.FileStorage {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store, err := storage.NewFileStorage(
		filepath.Join(dir, "logs.json"),
		filepath.Join(dir, "milestones.json"),
		filepath.Join(dir, "settings.json"),
		logger,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateStudyLog(t *testing.T) {
	store := newTestStore(t)
	user := &internal.User{ID: "u1", Email: "demo@example.com"}

	log, err := CreateStudyLog(context.Background(), store, user, "Math", 60, "2026-08-26")
	require.NoError(t, err)
	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "u1", log.UserID)
	assert.Equal(t, "Math", log.Title)
	assert.Equal(t, 60.0, log.Minutes)
	assert.Equal(t, "2026-08-26", log.Date)
	assert.False(t, log.CreatedAt.IsZero())

	logs, err := store.ListStudyLogs(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, log.ID, logs[0].ID)
}

func TestComputeAggregates(t *testing.T) {
	now := time.Date(2026, 8, 26, 18, 0, 0, 0, time.UTC)

	streak, hours := ComputeAggregates(nil, now)
	assert.Equal(t, 0, streak)
	assert.Equal(t, 0.0, hours)

	logs := []internal.StudyLog{
		{Minutes: 60, CreatedAt: now.Add(-2 * time.Hour)},                 // today
		{Minutes: 30, CreatedAt: now.AddDate(0, 0, -1)},                   // yesterday
		{Minutes: 90, CreatedAt: now.AddDate(0, 0, -5)},                   // outside window
		{Minutes: 45, CreatedAt: time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC)}, // today again
	}
	streak, hours = ComputeAggregates(logs, now)
	assert.Equal(t, 2, streak)
	// Hours count every log, not just the streak window.
	assert.InDelta(t, 3.75, hours, 1e-9)

	// Two logs on the same day count the day once.
	streak, _ = ComputeAggregates(logs[:1], now)
	assert.Equal(t, 1, streak)
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 3.75, RoundHours(3.75))
	assert.Equal(t, 1.67, RoundHours(100.0/60))
	assert.Equal(t, 0.0, RoundHours(0))
}

func TestRefreshMilestones(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	user := &internal.User{ID: "u1"}

	// 5 maxed-out days: 120 hours total, crossing the 100-hour threshold.
	for i := 0; i < 5; i++ {
		_, err := CreateStudyLog(ctx, store, user, "Marathon", 1440, fmt.Sprintf("2026-08-2%d", i))
		require.NoError(t, err)
	}

	newTypes, err := RefreshMilestones(ctx, store, store, "u1", now)
	require.NoError(t, err)
	assert.Contains(t, newTypes, "hours_100")

	// A second refresh reports nothing new.
	newTypes, err = RefreshMilestones(ctx, store, store, "u1", now)
	require.NoError(t, err)
	assert.Empty(t, newTypes)

	records, err := store.ListMilestones(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "hours_100", records[0].MilestoneType)
}

func TestRebuildMilestones(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	user := &internal.User{ID: "u1"}

	log, err := CreateStudyLog(ctx, store, user, "Marathon", 1440, "2026-08-26")
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := CreateStudyLog(ctx, store, user, "Marathon", 1440, fmt.Sprintf("2026-08-2%d", i))
		require.NoError(t, err)
	}

	_, err = RefreshMilestones(ctx, store, store, "u1", now)
	require.NoError(t, err)
	records, err := store.ListMilestones(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, records)

	// Dropping a day pulls the total back under 100 hours; the rebuild
	// revokes the achievement.
	affected, err := store.DeleteStudyLog(ctx, log.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	require.NoError(t, RebuildMilestones(ctx, store, store, "u1", now))
	records, err = store.ListMilestones(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)
}
