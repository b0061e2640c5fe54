package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/response"
	"github.com/yourname/studytracker/internal/service"
)

// GetStudyLogs returns the caller's logs, newest first. An empty history is
// an empty array, never a 404.
func GetStudyLogs(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		logs, err := app.LogRepo().ListStudyLogs(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.DatabaseError(err.Error()))
			return
		}
		if logs == nil {
			logs = []internal.StudyLog{}
		}
		c.JSON(http.StatusOK, logs)
	}
}

func PostStudyLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		var body service.StudyLogBody
		bodyRef := &body
		if err := c.ShouldBindJSON(&body); err != nil {
			bodyRef = nil
		}
		if verr := service.ValidateStudyLogBody(bodyRef); verr != nil {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err(postErrorMessage(verr)))
			return
		}

		log, err := service.CreateStudyLog(c.Request.Context(), app.LogRepo(), user,
			body.Title.(string), body.Minutes.(float64), body.Date.(string))
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.DatabaseError(err.Error()))
			return
		}

		// Milestone recomputation is best-effort: a failure here must never
		// fail the log creation.
		if _, err := service.RefreshMilestones(c.Request.Context(), app.LogRepo(), app.MilestoneRepo(), user.ID, time.Now()); err != nil {
			app.Logger().Errorf("milestone check after log creation failed: %v", err)
		}

		c.JSON(http.StatusOK, []internal.StudyLog{*log})
	}
}

// postErrorMessage collapses the field-level validation kinds into the
// coarse POST error strings.
func postErrorMessage(verr *service.ValidationError) string {
	switch verr.Kind {
	case service.KindInvalidMinutesType, service.KindMinutesOutOfRange:
		return "Invalid minutes value"
	case service.KindInvalidDateFormat, service.KindInvalidDate:
		return "Invalid date value"
	default:
		return "Missing required fields"
	}
}

func DeleteStudyLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		id, verr := service.ExtractIDFromURL(c.Request.URL.String())
		if verr != nil {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err(verr.Message))
			return
		}

		affected, err := app.LogRepo().DeleteStudyLog(c.Request.Context(), id, user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.DatabaseError(err.Error()))
			return
		}
		if affected == 0 {
			// Covers both "no such log" and "someone else's log".
			HandleError(c, app.Logger(), http.StatusNotFound, response.Err("Log not found"))
			return
		}

		if err := service.RebuildMilestones(c.Request.Context(), app.LogRepo(), app.MilestoneRepo(), user.ID, time.Now()); err != nil {
			app.Logger().Errorf("milestone rebuild after log deletion failed: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
	}
}

// GetWeeklyStudyData renders the Sunday-first week containing today with
// per-day totals and the week's total split into hours and minutes.
func GetWeeklyStudyData(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		logs, err := app.LogRepo().ListStudyLogs(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.DatabaseError(err.Error()))
			return
		}

		week := service.GenerateWeeklyData(logs, time.Now())
		total := service.CalculateWeeklyTotal(week)
		parts := service.ConvertMinutesToTimeString(total)

		c.JSON(http.StatusOK, gin.H{
			"week":         week,
			"totalMinutes": total,
			"hours":        parts.Hours,
			"minutes":      parts.Minutes,
		})
	}
}

func GetStudyStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		logs, err := app.LogRepo().ListStudyLogs(c.Request.Context(), user.ID)
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.DatabaseError(err.Error()))
			return
		}
		c.JSON(http.StatusOK, service.CalculateStatistics(logs))
	}
}
