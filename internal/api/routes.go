package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal/auth"
)

// RegisterRoutes wires the public health check and the authenticated
// resource routes.
func RegisterRoutes(r *gin.Engine, app App, provider auth.Provider) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/")
	protected.Use(RequestIDMiddleware())
	protected.Use(auth.Middleware(provider, app.Logger()))

	protected.GET("/study-logs", GetStudyLogs(app))
	protected.POST("/study-logs", PostStudyLog(app))
	protected.DELETE("/study-logs", DeleteStudyLog(app))
	protected.GET("/study-logs/weekly", GetWeeklyStudyData(app))
	protected.GET("/study-logs/stats", GetStudyStats(app))

	protected.GET("/milestones", GetMilestones(app))
	protected.POST("/milestones", PostMilestones(app))

	protected.GET("/reminder-settings", GetReminderSettings(app))
	protected.POST("/reminder-settings", PostReminderSettings(app))
	protected.POST("/reminder-settings/test", PostReminderTest(app))
}
