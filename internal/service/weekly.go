package service

import (
	"math"
	"time"

	"github.com/yourname/studytracker/internal"
)

// dayLabels is the fixed Sunday-first weekday order of the weekly view,
// matching the codes used for reminder days.
var dayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// CalculateDayTotal sums the minutes of every log dated exactly dateStr.
// Comparison is string equality, so a log carrying extra time components
// never matches a bucket.
func CalculateDayTotal(logs []internal.StudyLog, dateStr string) float64 {
	var total float64
	for _, l := range logs {
		if l.Date == dateStr {
			total += l.Minutes
		}
	}
	return total
}

// GenerateWeeklyData buckets logs into the 7-day calendar week containing
// referenceDate, Sunday through Saturday. Exactly 7 buckets come back
// regardless of input; isToday marks the bucket at referenceDate's weekday.
func GenerateWeeklyData(logs []internal.StudyLog, referenceDate time.Time) []internal.WeeklyBucket {
	weekday := int(referenceDate.Weekday())
	startOfWeek := truncateToDay(referenceDate).AddDate(0, 0, -weekday)

	week := make([]internal.WeeklyBucket, 0, 7)
	for i := 0; i < 7; i++ {
		dateStr := startOfWeek.AddDate(0, 0, i).Format("2006-01-02")
		week = append(week, internal.WeeklyBucket{
			Day:     dayLabels[i],
			Date:    dateStr,
			Minutes: CalculateDayTotal(logs, dateStr),
			IsToday: i == weekday,
		})
	}
	return week
}

func CalculateWeeklyTotal(week []internal.WeeklyBucket) float64 {
	var total float64
	for _, b := range week {
		total += b.Minutes
	}
	return total
}

type TimeParts struct {
	Hours   int     `json:"hours"`
	Minutes float64 `json:"minutes"`
}

// ConvertMinutesToTimeString splits a minute total into whole hours and
// leftover minutes. There is no upper bound: 1440 minutes is 24h 0m.
func ConvertMinutesToTimeString(totalMinutes float64) TimeParts {
	return TimeParts{
		Hours:   int(math.Floor(totalMinutes / 60)),
		Minutes: math.Mod(totalMinutes, 60),
	}
}

type Statistics struct {
	TotalMinutes   float64 `json:"totalMinutes"`
	AverageMinutes float64 `json:"averageMinutes"`
	MaxMinutes     float64 `json:"maxMinutes"`
	MinMinutes     float64 `json:"minMinutes"`
	TotalSessions  int     `json:"totalSessions"`
}

// CalculateStatistics summarizes a log history. All fields are zero for an
// empty history; no division or extremum happens on empty input.
func CalculateStatistics(logs []internal.StudyLog) Statistics {
	if len(logs) == 0 {
		return Statistics{}
	}

	var total float64
	maxMinutes := logs[0].Minutes
	minMinutes := logs[0].Minutes
	for _, l := range logs {
		total += l.Minutes
		if l.Minutes > maxMinutes {
			maxMinutes = l.Minutes
		}
		if l.Minutes < minMinutes {
			minMinutes = l.Minutes
		}
	}

	return Statistics{
		TotalMinutes:   total,
		AverageMinutes: math.Round(total / float64(len(logs))),
		MaxMinutes:     maxMinutes,
		MinMinutes:     minMinutes,
		TotalSessions:  len(logs),
	}
}

// FilterLogsByDateRange keeps logs whose date falls within [startDate,
// endDate] inclusive. YYYY-MM-DD strings compare correctly as strings.
func FilterLogsByDateRange(logs []internal.StudyLog, startDate, endDate string) []internal.StudyLog {
	filtered := []internal.StudyLog{}
	for _, l := range logs {
		if l.Date >= startDate && l.Date <= endDate {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
