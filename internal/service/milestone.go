package service

import (
	"math"
	"slices"
	"sort"
	"time"
)

// MilestoneDefinition is one entry of the fixed achievement table. The
// metric a definition tracks is chosen by Category: "streak" definitions
// compare against the current streak, "hours" definitions against total
// study hours.
type MilestoneDefinition struct {
	Type     string
	Label    string
	Target   float64
	Category string
}

// MilestoneDefinitions lists every unlockable milestone, streak thresholds
// ascending then hour thresholds ascending. Check order follows this table.
var MilestoneDefinitions = []MilestoneDefinition{
	{Type: "streak_7", Label: "7日連続学習", Target: 7, Category: "streak"},
	{Type: "streak_14", Label: "14日連続学習", Target: 14, Category: "streak"},
	{Type: "streak_30", Label: "30日連続学習", Target: 30, Category: "streak"},
	{Type: "streak_100", Label: "100日連続学習", Target: 100, Category: "streak"},
	{Type: "hours_100", Label: "100時間達成", Target: 100, Category: "hours"},
	{Type: "hours_200", Label: "200時間達成", Target: 200, Category: "hours"},
	{Type: "hours_300", Label: "300時間達成", Target: 300, Category: "hours"},
	{Type: "hours_500", Label: "500時間達成", Target: 500, Category: "hours"},
}

// MilestoneLabel returns the display label for a milestone type, falling
// back to the type itself for unknown values.
func MilestoneLabel(milestoneType string) string {
	for _, def := range MilestoneDefinitions {
		if def.Type == milestoneType {
			return def.Label
		}
	}
	return milestoneType
}

// CheckMilestones returns the milestone types whose metric meets or exceeds
// the threshold and that are not already achieved. Thresholds are inclusive:
// a streak of exactly 7 unlocks streak_7. Re-checking an achieved milestone
// never re-emits it.
func CheckMilestones(currentStreak, totalHours float64, achieved []string) []string {
	newMilestones := []string{}
	for _, def := range MilestoneDefinitions {
		if slices.Contains(achieved, def.Type) {
			continue
		}
		metric := totalHours
		if def.Category == "streak" {
			metric = currentStreak
		}
		if metric >= def.Target {
			newMilestones = append(newMilestones, def.Type)
		}
	}
	return newMilestones
}

type Progress struct {
	Percentage int     `json:"percentage"`
	Remaining  float64 `json:"remaining"`
}

// CalculateProgress reports progress towards a target as a whole percentage
// clamped to [0, 100] (half rounds up) and the remaining distance, floored
// at zero.
func CalculateProgress(current, target float64) Progress {
	percentage := int(math.Round(current / target * 100))
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	return Progress{
		Percentage: percentage,
		Remaining:  math.Max(target-current, 0),
	}
}

type PendingMilestone struct {
	Type       string  `json:"type"`
	Label      string  `json:"label"`
	Category   string  `json:"category"`
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage int     `json:"percentage"`
	Remaining  float64 `json:"remaining"`
}

// GetPendingMilestones annotates every not-yet-achieved definition with its
// current metric and progress, sorted ascending by percentage. The sort is
// stable so ties keep the definition table's order.
func GetPendingMilestones(currentStreak, totalHours float64, achieved []string) []PendingMilestone {
	pending := []PendingMilestone{}
	for _, def := range MilestoneDefinitions {
		if slices.Contains(achieved, def.Type) {
			continue
		}
		current := totalHours
		if def.Category == "streak" {
			current = currentStreak
		}
		progress := CalculateProgress(current, def.Target)
		pending = append(pending, PendingMilestone{
			Type:       def.Type,
			Label:      def.Label,
			Category:   def.Category,
			Current:    current,
			Target:     def.Target,
			Percentage: progress.Percentage,
			Remaining:  progress.Remaining,
		})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Percentage < pending[j].Percentage
	})
	return pending
}

// IsStreakValid reports whether a streak is unbroken: the last log must be
// from today or yesterday relative to checkDate.
func IsStreakValid(lastLogDate *time.Time, checkDate time.Time) bool {
	if lastLogDate == nil {
		return false
	}
	last := truncateToDay(*lastLogDate)
	current := truncateToDay(checkDate)
	diffDays := current.Sub(last).Hours() / 24
	return diffDays <= 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
