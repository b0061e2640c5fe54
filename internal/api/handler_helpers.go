package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/response"
)

// HandleError logs the failure with its correlation id and writes the wire
// body. details may be empty for client-facing validation errors.
func HandleError(c *gin.Context, logger internal.Logger, status int, body response.ErrorBody) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %d %s: %s", requestID, status, body.Error, body.Details)
	c.JSON(status, body)
}

func principal(c *gin.Context) *internal.User {
	return c.MustGet("user").(*internal.User)
}
