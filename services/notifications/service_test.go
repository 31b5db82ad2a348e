package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/models"
)

type fakeSender struct {
	sent   []*models.EmailMessage
	calls  int
	failOn int // 1-based call index to fail on, 0 = never fail
}

func (f *fakeSender) Send(ctx context.Context, email *models.EmailMessage) error {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return errors.New("smtp: message rejected")
	}
	f.sent = append(f.sent, email)
	return nil
}

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func newService(sender *fakeSender) *NotificationService {
	return NewNotificationService(sender, "admin@loksar.com", getLogger())
}

func contactSubmission() *ContactSubmission {
	return &ContactSubmission{
		Name:    "Ann",
		Email:   "ann@x.com",
		Phone:   "123",
		Subject: "Leak",
		Message: "Help",
	}
}

func TestContact_SendsAdminAndCustomerCopies(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender)

	err := svc.Contact(context.Background(), contactSubmission())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	admin := sender.sent[0]
	assert.Equal(t, "admin@loksar.com", admin.ToAddress)
	assert.Equal(t, "New Contact: Leak", admin.Subject)
	assert.Contains(t, admin.BodyHTML, "Ann")
	assert.Contains(t, admin.BodyHTML, "Help")

	customer := sender.sent[1]
	assert.Equal(t, "ann@x.com", customer.ToAddress)
	assert.Equal(t, "We received your message - Loksar", customer.Subject)
	assert.Contains(t, customer.BodyHTML, "Leak")
}

func TestContact_AdminFailureAbortsCustomerSend(t *testing.T) {
	sender := &fakeSender{failOn: 1}
	svc := newService(sender)

	err := svc.Contact(context.Background(), contactSubmission())
	require.Error(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Empty(t, sender.sent)
}

func TestContact_CustomerFailurePropagates(t *testing.T) {
	sender := &fakeSender{failOn: 2}
	svc := newService(sender)

	err := svc.Contact(context.Background(), contactSubmission())
	require.Error(t, err)
	assert.Len(t, sender.sent, 1)
}

func bookingSubmission() *BookingSubmission {
	return &BookingSubmission{
		User: UserDetails{Name: "Bob", Email: "bob@x.com", Phone: "456"},
		Details: map[string]any{
			"propertyType": "Flat",
			"bedrooms":     float64(2),
			"cleaningType": map[string]any{"label": "Deep clean"},
			"bestDays": map[string]any{
				"bestDays": []any{"Mon", "Wed"},
				"other":    "evenings",
			},
		},
		Description: "Back door code 4411",
		Attachments: []*models.EmailAttachment{
			{Filename: "photo.jpg", ContentType: "image/jpeg", Content: []byte{0xff, 0xd8}},
		},
	}
}

func TestCleaningBooking_SummaryRows(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender)

	err := svc.CleaningBooking(context.Background(), bookingSubmission())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	admin := sender.sent[0]
	assert.Equal(t, "New Cleaning Booking Request", admin.Subject)
	assert.Contains(t, admin.BodyHTML, "Mon, Wed (Other: evenings)")
	assert.Contains(t, admin.BodyHTML, "Deep clean")
	assert.Contains(t, admin.BodyHTML, "Back door code 4411")
	// absent fields render as the placeholder
	assert.Contains(t, admin.BodyHTML, "N/A")

	customer := sender.sent[1]
	assert.Equal(t, "We received your booking request - Loksar", customer.Subject)
	assert.Contains(t, customer.BodyHTML, "Mon, Wed (Other: evenings)")
}

func TestBooking_AttachmentsOnlyOnAdminCopy(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender)

	err := svc.CleaningBooking(context.Background(), bookingSubmission())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	assert.True(t, sender.sent[0].HasAttachments())
	assert.False(t, sender.sent[1].HasAttachments())
}

func TestGardeningBooking_UsesGardeningLabels(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender)

	sub := &BookingSubmission{
		User: UserDetails{Name: "Cara", Email: "cara@x.com"},
		Details: map[string]any{
			"gardenSize": "Large",
			"services":   []any{"Mowing", "Hedges"},
		},
	}
	err := svc.GardeningBooking(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	admin := sender.sent[0]
	assert.Equal(t, "New Gardening Booking Request", admin.Subject)
	assert.Contains(t, admin.BodyHTML, "Garden size")
	assert.Contains(t, admin.BodyHTML, "Mowing, Hedges")
}

func TestBooking_EscapesUserInput(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender)

	sub := bookingSubmission()
	sub.Description = `<script>alert(1)</script>`
	err := svc.CleaningBooking(context.Background(), sub)
	require.NoError(t, err)

	assert.NotContains(t, sender.sent[0].BodyHTML, "<script>alert(1)</script>")
	assert.Contains(t, sender.sent[0].BodyHTML, "&lt;script&gt;")
}
