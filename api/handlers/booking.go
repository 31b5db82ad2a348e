package handlers

import (
	"context"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/loksar/notifications/config"
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/models"
	"github.com/loksar/notifications/internal/tracing"
	"github.com/loksar/notifications/services/notifications"
)

// BookCleaning handles a cleaning booking submission
func BookCleaning(svc *notifications.NotificationService, log logger.Logger) gin.HandlerFunc {
	return bookingHandler("cleaning booking", svc.CleaningBooking, log)
}

// BookGardening handles a gardening booking submission
func BookGardening(svc *notifications.NotificationService, log logger.Logger) gin.HandlerFunc {
	return bookingHandler("gardening booking", svc.GardeningBooking, log)
}

func bookingHandler(operation string, dispatch func(context.Context, *notifications.BookingSubmission) error, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(c.Request.Context(), "Book", c.Request.Header)
		defer span.Finish()
		tracing.TagComponentRest(span)

		submission, err := parseBookingSubmission(c)
		if err != nil {
			respondFailure(c, span, log, operation, err)
			return
		}

		if err := dispatch(ctx, submission); err != nil {
			respondFailure(c, span, log, operation, err)
			return
		}

		respondSuccess(c)
	}
}

// parseBookingSubmission reads the multipart booking form: two JSON-encoded
// sub-objects, a free-text description and zero or more uploaded files.
func parseBookingSubmission(c *gin.Context) (*notifications.BookingSubmission, error) {
	submission := &notifications.BookingSubmission{
		Description: c.PostForm("description"),
	}

	if err := json.Unmarshal([]byte(c.PostForm("userDetails")), &submission.User); err != nil {
		return nil, errors.Wrap(err, "invalid userDetails")
	}

	if err := json.Unmarshal([]byte(c.PostForm("bookingDetails")), &submission.Details); err != nil {
		return nil, errors.Wrap(err, "invalid bookingDetails")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.Wrap(err, "invalid multipart form")
	}

	for _, fileHeader := range form.File["files"] {
		if fileHeader.Size > config.MaxUploadSize {
			return nil, errors.Errorf("file %s exceeds the maximum size limit", fileHeader.Filename)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open upload %s", fileHeader.Filename)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read upload %s", fileHeader.Filename)
		}

		submission.Attachments = append(submission.Attachments, &models.EmailAttachment{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     data,
		})
	}

	return submission, nil
}
