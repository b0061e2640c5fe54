package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/studytracker/internal"
)

func logOn(date string, minutes float64) internal.StudyLog {
	return internal.StudyLog{ID: date, UserID: "u1", Title: "Math", Minutes: minutes, Date: date}
}

func TestCalculateDayTotal(t *testing.T) {
	logs := []internal.StudyLog{
		logOn("2026-08-26", 30),
		logOn("2026-08-26", 45),
		logOn("2026-08-25", 60),
	}
	assert.Equal(t, 75.0, CalculateDayTotal(logs, "2026-08-26"))
	assert.Equal(t, 0.0, CalculateDayTotal(logs, "2026-08-24"))
	assert.Equal(t, 0.0, CalculateDayTotal(nil, "2026-08-26"))
}

func TestGenerateWeeklyData(t *testing.T) {
	// Wednesday; the containing week runs Sun 08-23 through Sat 08-29.
	ref := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	logs := []internal.StudyLog{
		logOn("2026-08-23", 10),
		logOn("2026-08-26", 30),
		logOn("2026-08-26", 20),
		logOn("2026-08-29", 40),
		logOn("2026-08-22", 99), // previous week, excluded
		logOn("2026-08-30", 99), // next week, excluded
	}

	week := GenerateWeeklyData(logs, ref)
	assert.Len(t, week, 7)

	assert.Equal(t, "Sun", week[0].Day)
	assert.Equal(t, "2026-08-23", week[0].Date)
	assert.Equal(t, 10.0, week[0].Minutes)

	assert.Equal(t, "Wed", week[3].Day)
	assert.Equal(t, "2026-08-26", week[3].Date)
	assert.Equal(t, 50.0, week[3].Minutes)
	assert.True(t, week[3].IsToday)

	assert.Equal(t, "Sat", week[6].Day)
	assert.Equal(t, 40.0, week[6].Minutes)

	for i, b := range week {
		if i != 3 {
			assert.False(t, b.IsToday, "day=%s", b.Day)
		}
	}

	assert.Equal(t, 100.0, CalculateWeeklyTotal(week))
}

func TestGenerateWeeklyData_SundayReference(t *testing.T) {
	// A Sunday is the first bucket of its own week.
	ref := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	week := GenerateWeeklyData(nil, ref)
	assert.Equal(t, "2026-08-23", week[0].Date)
	assert.True(t, week[0].IsToday)
	assert.Equal(t, "2026-08-29", week[6].Date)
}

func TestConvertMinutesToTimeString(t *testing.T) {
	parts := ConvertMinutesToTimeString(90)
	assert.Equal(t, 1, parts.Hours)
	assert.Equal(t, 30.0, parts.Minutes)

	parts = ConvertMinutesToTimeString(59.5)
	assert.Equal(t, 0, parts.Hours)
	assert.Equal(t, 59.5, parts.Minutes)

	parts = ConvertMinutesToTimeString(1440)
	assert.Equal(t, 24, parts.Hours)
	assert.Equal(t, 0.0, parts.Minutes)
}

func TestCalculateStatistics(t *testing.T) {
	assert.Equal(t, Statistics{}, CalculateStatistics(nil))

	logs := []internal.StudyLog{
		logOn("2026-08-24", 30),
		logOn("2026-08-25", 60),
		logOn("2026-08-26", 45),
	}
	stats := CalculateStatistics(logs)
	assert.Equal(t, 135.0, stats.TotalMinutes)
	assert.Equal(t, 45.0, stats.AverageMinutes)
	assert.Equal(t, 60.0, stats.MaxMinutes)
	assert.Equal(t, 30.0, stats.MinMinutes)
	assert.Equal(t, 3, stats.TotalSessions)

	// Average is rounded to the nearest whole minute.
	stats = CalculateStatistics([]internal.StudyLog{logOn("2026-08-24", 10), logOn("2026-08-25", 15)})
	assert.Equal(t, 13.0, stats.AverageMinutes)
}

func TestFilterLogsByDateRange(t *testing.T) {
	logs := []internal.StudyLog{
		logOn("2026-08-20", 10),
		logOn("2026-08-23", 20),
		logOn("2026-08-26", 30),
		logOn("2026-08-30", 40),
	}

	filtered := FilterLogsByDateRange(logs, "2026-08-23", "2026-08-26")
	assert.Len(t, filtered, 2)
	assert.Equal(t, "2026-08-23", filtered[0].Date)
	assert.Equal(t, "2026-08-26", filtered[1].Date)

	// Bounds are inclusive and an empty result is still non-nil.
	filtered = FilterLogsByDateRange(logs, "2026-09-01", "2026-09-30")
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}
