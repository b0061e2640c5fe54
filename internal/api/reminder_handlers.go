package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/config"
	"github.com/yourname/studytracker/internal/response"
	"github.com/yourname/studytracker/internal/service"
	"github.com/yourname/studytracker/internal/storage"
)

func reminderView(st *internal.ReminderSettings) gin.H {
	return gin.H{
		"enabled":   st.Enabled,
		"time":      st.Time,
		"type":      st.Type,
		"days":      st.Days,
		"updatedAt": st.UpdatedAt,
	}
}

// GetReminderSettings returns the persisted row, or the canonical defaults
// when the user has never saved settings. "No row" is not an error.
func GetReminderSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		st, err := app.SettingsRepo().GetSettings(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				defaults := service.DefaultReminderSettings(user.ID)
				c.JSON(http.StatusOK, gin.H{
					"enabled": defaults.Enabled,
					"time":    defaults.Time,
					"type":    defaults.Type,
					"days":    defaults.Days,
				})
				return
			}
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.Err("Failed to fetch settings"))
			return
		}

		c.JSON(http.StatusOK, reminderView(st))
	}
}

func PostReminderSettings(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		var body service.ReminderConfig
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err("Invalid input"))
			return
		}
		if verr := service.ValidateReminderConfig(&body); verr != nil {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err(verr.Message))
			return
		}

		saved, err := app.SettingsRepo().UpsertSettings(c.Request.Context(), service.NewReminderSettings(user.ID, &body))
		if err != nil {
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.Err("Failed to update settings"))
			return
		}

		view := reminderView(saved)
		view["id"] = saved.UserID
		view["userId"] = saved.UserID
		c.JSON(http.StatusOK, view)
	}
}

// PostReminderTest pretends to deliver a notification. It only checks that
// reminders are enabled; no delivery happens.
func PostReminderTest(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := principal(c)

		st, err := app.SettingsRepo().GetSettings(c.Request.Context(), user.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// No settings saved yet; reminders default to enabled.
				c.JSON(http.StatusOK, gin.H{
					"success": true,
					"message": "Test notification sent to browser",
					"type":    config.DefaultReminderType,
				})
				return
			}
			HandleError(c, app.Logger(), http.StatusInternalServerError, response.ErrWithDetails("Failed to fetch settings", err.Error()))
			return
		}

		if !st.Enabled {
			HandleError(c, app.Logger(), http.StatusBadRequest, response.Err("Notifications are disabled"))
			return
		}

		notificationType := st.Type
		if notificationType == "" {
			notificationType = config.DefaultReminderType
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Test notification sent to browser",
			"type":    notificationType,
		})
	}
}
