package response

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/dskvich/impulsyia-backend/pkg/logger"
)

// ErrorResponse keeps the {"detail": ...} shape the web client already parses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteSuccessResponse(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func WriteErrorResponse(c *gin.Context, status int, detail string) {
	if status >= 500 {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "status", status, "detail", detail)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Detail: detail})
}

// WriteError logs err with its status before writing detail.
func WriteError(c *gin.Context, status int, detail string, err error) {
	slog.WarnContext(c.Request.Context(), "request rejected", "status", status, logger.Err(err))
	WriteErrorResponse(c, status, detail)
}
