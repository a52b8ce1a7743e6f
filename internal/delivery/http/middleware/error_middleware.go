package middleware

import (
	"errors"
	"net/http"

	"mock-interview-backend/internal/delivery/http/response"
	"mock-interview-backend/pkg/apperror"
	"mock-interview-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if len(appErr.Fields) > 0 {
				response.ValidationError(c, appErr.Code, appErr.Message, appErr.Fields)
				return
			}
			if appErr.Code >= http.StatusInternalServerError && appErr.Err != nil {
				logger.Log.Error("Request failed", "path", c.FullPath(), "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Message)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
		msg := "An unexpected error occurred. Please try again later."
		response.Error(c, http.StatusInternalServerError, msg, msg)
	}
}
