package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/tracing"
)

// respondFailure is the single error boundary for submission handlers: the
// full error is traced and logged server-side, the caller only sees an opaque
// failure envelope.
func respondFailure(c *gin.Context, span opentracing.Span, log logger.Logger, operation string, err error) {
	tracing.TraceErr(span, err)
	log.Errorf("%s failed: %v", operation, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false})
}

func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
