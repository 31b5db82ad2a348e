package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/tracing"
	"github.com/loksar/notifications/services/notifications"
)

// Contact handles a contact-form inquiry
func Contact(svc *notifications.NotificationService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "Contact", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		var submission notifications.ContactSubmission
		if err := c.ShouldBindJSON(&submission); err != nil {
			respondFailure(c, span, log, "contact submission", err)
			return
		}

		if err := svc.Contact(ctx, &submission); err != nil {
			respondFailure(c, span, log, "contact submission", err)
			return
		}

		respondSuccess(c)
	}
}
