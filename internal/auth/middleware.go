package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/response"
	"github.com/yourname/studytracker/internal/service"
)

// Middleware extracts the bearer token, resolves it to a principal and
// stores the principal under "user". Header-shape failures return a bare
// 401 with the detail only logged; resolver failures surface the resolver
// message in details.
func Middleware(provider Provider, logger internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, verr := service.ExtractTokenFromHeader(header)
		if verr != nil {
			logger.Warnf("auth: %s", verr.Message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized())
			return
		}

		user, err := provider.Resolve(c.Request.Context(), token)
		if err != nil || user == nil {
			msg := "no principal"
			if err != nil {
				msg = err.Error()
			}
			logger.Warnf("auth: token rejected: %s", msg)
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrWithDetails("Unauthorized", msg))
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
