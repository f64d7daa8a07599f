package middleware

import (
	"errors"
	"net/http"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			var details interface{}
			if len(appErr.Fields) > 0 {
				details = appErr.Fields
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details to clients.
		cause := err
		if appErr != nil && appErr.Err != nil {
			cause = appErr.Err
		}
		logger.Error("Internal server error",
			zap.String("request_id", c.GetString(string(domain.KeyRequestID))),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(cause),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
