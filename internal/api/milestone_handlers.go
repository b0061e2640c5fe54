package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/response"
	"github.com/yourname/studytracker/internal/service"
)

type achievedMilestone struct {
	Type       string    `json:"type"`
	Label      string    `json:"label"`
	AchievedAt time.Time `json:"achievedAt"`
}

// GetMilestones reports achieved milestones, pending ones with progress, and
// the aggregate counters they derive from.
func GetMilestones(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)
		ctx := c.Request.Context()

		records, err := app.MilestoneRepo().ListMilestones(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.ErrWithDetails("Failed to fetch milestones", err.Error()))
			return
		}

		logs, err := app.LogRepo().ListStudyLogs(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.ErrWithDetails("Failed to fetch progress data", err.Error()))
			return
		}

		currentStreak, totalHours := service.ComputeAggregates(logs, time.Now())

		achieved := make([]achievedMilestone, 0, len(records))
		achievedTypes := make([]string, 0, len(records))
		for _, m := range records {
			achieved = append(achieved, achievedMilestone{
				Type:       m.MilestoneType,
				Label:      service.MilestoneLabel(m.MilestoneType),
				AchievedAt: m.AchievedAt,
			})
			achievedTypes = append(achievedTypes, m.MilestoneType)
		}

		pending := service.GetPendingMilestones(float64(currentStreak), totalHours, achievedTypes)

		c.JSON(http.StatusOK, gin.H{
			"achieved": achieved,
			"pending":  pending,
			"stats": gin.H{
				"currentStreak": currentStreak,
				"totalHours":    service.RoundHours(totalHours),
			},
		})
	}
}

type milestoneCheckBody struct {
	CurrentStreak any `json:"currentStreak"`
	TotalHours    any `json:"totalHours"`
}

// PostMilestones accepts externally computed counters, persists any newly
// crossed thresholds and reports them.
func PostMilestones(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)
		ctx := c.Request.Context()

		var body milestoneCheckBody
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err("Invalid input"))
			return
		}
		currentStreak, okStreak := body.CurrentStreak.(float64)
		totalHours, okHours := body.TotalHours.(float64)
		if !okStreak || !okHours {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err("Invalid input"))
			return
		}

		records, err := app.MilestoneRepo().ListMilestones(ctx, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.ErrWithDetails("Failed to fetch milestones", err.Error()))
			return
		}
		achievedTypes := make([]string, 0, len(records))
		for _, m := range records {
			achievedTypes = append(achievedTypes, m.MilestoneType)
		}

		newMilestones := service.CheckMilestones(currentStreak, totalHours, achievedTypes)
		if len(newMilestones) > 0 {
			now := time.Now()
			toSave := make([]internal.MilestoneRecord, 0, len(newMilestones))
			for _, t := range newMilestones {
				toSave = append(toSave, internal.MilestoneRecord{
					UserID:        user.ID,
					MilestoneType: t,
					AchievedAt:    now,
				})
			}
			if err := app.MilestoneRepo().SaveMilestones(ctx, toSave); err != nil {
				HandleError(c, app.Logger(), http.StatusInternalServerError, response.Err("Failed to save milestones"))
				return
			}
		}

		message := "No new milestones"
		if len(newMilestones) > 0 {
			message = fmt.Sprintf("%d new milestone(s) unlocked!", len(newMilestones))
		}
		c.JSON(http.StatusOK, gin.H{
			"newMilestones": newMilestones,
			"count":         len(newMilestones),
			"message":       message,
		})
	}
}
