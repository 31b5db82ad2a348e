// Package notifications turns form submissions into the pair of emails each
// one produces: an admin copy to the configured administrator address and a
// customer copy back to the submitter.
package notifications

import (
	"context"
	"fmt"
	"html/template"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/loksar/notifications/interfaces"
	"github.com/loksar/notifications/internal/display"
	"github.com/loksar/notifications/internal/htmlmail"
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/models"
	"github.com/loksar/notifications/internal/tracing"
)

const (
	customerContactSubject = "We received your message - Loksar"
	customerBookingSubject = "We received your booking request - Loksar"
)

// ContactSubmission is one contact-form inquiry.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// UserDetails is the contact block submitted with every booking.
type UserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingSubmission is one service-booking request. Details carries the
// booking-specific fields as decoded JSON of no fixed schema.
type BookingSubmission struct {
	User        UserDetails
	Details     map[string]any
	Description string
	Attachments []*models.EmailAttachment
}

type NotificationService struct {
	sender     interfaces.EmailSender
	adminEmail string
	log        logger.Logger
}

func NewNotificationService(sender interfaces.EmailSender, adminEmail string, log logger.Logger) *NotificationService {
	return &NotificationService{
		sender:     sender,
		adminEmail: adminEmail,
		log:        log,
	}
}

// bookingField maps one booking-details key to its summary-row label. Fields
// with an ad hoc shape carry their own formatter.
type bookingField struct {
	key    string
	label  string
	format func(details map[string]any) string
}

var cleaningFields = []bookingField{
	{key: "propertyType", label: "Property type"},
	{key: "bedrooms", label: "Bedrooms"},
	{key: "bathrooms", label: "Bathrooms"},
	{key: "cleaningType", label: "Cleaning type", format: func(d map[string]any) string {
		return display.CleaningType(d["cleaningType"], d["cleaningTypeOther"])
	}},
	{key: "frequency", label: "Frequency"},
	{key: "bestDays", label: "Best available days", format: func(d map[string]any) string {
		return display.BestDays(d["bestDays"])
	}},
	{key: "preferredTime", label: "Preferred time"},
	{key: "currentCleaner", label: "Current cleaner", format: func(d map[string]any) string {
		return display.CurrentCleaner(d["currentCleaner"])
	}},
	{key: "parking", label: "Parking availability"},
	{key: "startDate", label: "Preferred start date"},
}

var gardeningFields = []bookingField{
	{key: "propertyType", label: "Property type"},
	{key: "gardenSize", label: "Garden size"},
	{key: "services", label: "Services required"},
	{key: "frequency", label: "Frequency"},
	{key: "bestDays", label: "Best available days", format: func(d map[string]any) string {
		return display.BestDays(d["bestDays"])
	}},
	{key: "preferredTime", label: "Preferred time"},
	{key: "greenWaste", label: "Green waste removal"},
	{key: "equipment", label: "Equipment provided"},
	{key: "access", label: "Garden access"},
	{key: "startDate", label: "Preferred start date"},
}

// Contact dispatches the two emails for a contact inquiry.
func (s *NotificationService) Contact(ctx context.Context, sub *ContactSubmission) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NotificationService.Contact")
	defer span.Finish()
	tracing.TagComponentService(span)

	rows := []htmlmail.Row{
		{Label: "Name", Value: display.Value(sub.Name)},
		{Label: "Email", Value: display.Value(sub.Email)},
		{Label: "Phone", Value: display.Value(sub.Phone)},
	}

	adminFrag, err := htmlmail.Fragment(
		fmt.Sprintf("New contact inquiry: %s", sub.Subject),
		sub.Message,
		rows,
	)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	customerFrag, err := htmlmail.Fragment(
		fmt.Sprintf("Hi %s,", sub.Name),
		fmt.Sprintf("Thank you for getting in touch about %q. Our team has received your message and will get back to you shortly.", sub.Subject),
		nil,
	)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	return s.dispatchPair(ctx, pair{
		adminSubject:    "New Contact: " + sub.Subject,
		adminFragment:   adminFrag,
		customerAddress: sub.Email,
		customerSubject: customerContactSubject,
		customerFrag:    customerFrag,
	})
}

// CleaningBooking dispatches the two emails for a cleaning booking request.
func (s *NotificationService) CleaningBooking(ctx context.Context, sub *BookingSubmission) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NotificationService.CleaningBooking")
	defer span.Finish()
	tracing.TagComponentService(span)

	return s.booking(ctx, "Cleaning", cleaningFields, sub)
}

// GardeningBooking dispatches the two emails for a gardening booking request.
func (s *NotificationService) GardeningBooking(ctx context.Context, sub *BookingSubmission) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "NotificationService.GardeningBooking")
	defer span.Finish()
	tracing.TagComponentService(span)

	return s.booking(ctx, "Gardening", gardeningFields, sub)
}

func (s *NotificationService) booking(ctx context.Context, kind string, fields []bookingField, sub *BookingSubmission) error {
	rows := []htmlmail.Row{
		{Label: "Name", Value: display.Value(sub.User.Name)},
		{Label: "Email", Value: display.Value(sub.User.Email)},
		{Label: "Phone", Value: display.Value(sub.User.Phone)},
	}
	for _, f := range fields {
		value := ""
		if f.format != nil {
			value = f.format(sub.Details)
		} else {
			value = display.Value(sub.Details[f.key])
		}
		rows = append(rows, htmlmail.Row{Label: f.label, Value: value})
	}
	rows = append(rows, htmlmail.Row{Label: "Description", Value: display.Value(sub.Description)})

	adminFrag, err := htmlmail.Fragment(
		fmt.Sprintf("New %s booking request", kind),
		"",
		rows,
	)
	if err != nil {
		return err
	}

	customerFrag, err := htmlmail.Fragment(
		fmt.Sprintf("Hi %s,", sub.User.Name),
		fmt.Sprintf("Thank you for your %s booking request. Here is a summary of what you sent us. We will be in touch shortly to confirm availability.", kind),
		rows,
	)
	if err != nil {
		return err
	}

	return s.dispatchPair(ctx, pair{
		adminSubject:     fmt.Sprintf("New %s Booking Request", kind),
		adminFragment:    adminFrag,
		adminAttachments: sub.Attachments,
		customerAddress:  sub.User.Email,
		customerSubject:  customerBookingSubject,
		customerFrag:     customerFrag,
	})
}

type pair struct {
	adminSubject     string
	adminFragment    template.HTML
	adminAttachments []*models.EmailAttachment
	customerAddress  string
	customerSubject  string
	customerFrag     template.HTML
}

// dispatchPair sends the admin copy first, then the customer copy. Both must
// succeed; the first failure aborts and propagates, so the customer copy is
// never attempted after a failed admin send.
func (s *NotificationService) dispatchPair(ctx context.Context, p pair) error {
	adminBody, err := htmlmail.Render(p.adminFragment)
	if err != nil {
		return errors.Wrap(err, "failed to render admin email")
	}
	customerBody, err := htmlmail.Render(p.customerFrag)
	if err != nil {
		return errors.Wrap(err, "failed to render customer email")
	}

	err = s.sender.Send(ctx, &models.EmailMessage{
		ToAddress:   s.adminEmail,
		Subject:     p.adminSubject,
		BodyHTML:    adminBody,
		Attachments: p.adminAttachments,
	})
	if err != nil {
		return errors.Wrap(err, "admin notification failed")
	}

	err = s.sender.Send(ctx, &models.EmailMessage{
		ToAddress: p.customerAddress,
		Subject:   p.customerSubject,
		BodyHTML:  customerBody,
	})
	if err != nil {
		return errors.Wrap(err, "customer notification failed")
	}

	return nil
}
