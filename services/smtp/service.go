package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/jhillyerd/enmime"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/loksar/notifications/config"
	"github.com/loksar/notifications/interfaces"
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/models"
	"github.com/loksar/notifications/internal/tracing"
	"github.com/loksar/notifications/internal/utils"
)

const SecurityStartTLS = "starttls"

type SMTPClient struct {
	cfg *config.SMTPConfig
	log logger.Logger
}

func NewSMTPClient(cfg *config.SMTPConfig, log logger.Logger) interfaces.EmailSender {
	return &SMTPClient{
		cfg: cfg,
		log: log,
	}
}

func (s *SMTPClient) Send(ctx context.Context, email *models.EmailMessage) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SMTPClient.Send")
	defer span.Finish()
	tracing.TagComponentService(span)

	// Validate the email
	err := s.validateEmail(ctx, email)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	// Prepare the email message
	messageBuffer, err := s.prepareMessage(ctx, email)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	// Send the email
	err = s.sendToServer(ctx, email.FromAddress, []string{email.ToAddress}, messageBuffer)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	s.log.Infof("email sent to %s: %s", email.ToAddress, email.Subject)
	return nil
}

// validateEmail performs basic validation on the email and fills in the
// configured sender and a Message-ID when absent
func (s *SMTPClient) validateEmail(ctx context.Context, email *models.EmailMessage) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "SMTPClient.validateEmail")
	defer span.Finish()
	tracing.TagComponentService(span)

	if email == nil {
		err := fmt.Errorf("email cannot be nil")
		tracing.TraceErr(span, err)
		return err
	}

	if email.FromAddress == "" {
		email.FromAddress = s.cfg.FromAddress
	}
	if email.FromName == "" {
		email.FromName = s.cfg.FromName
	}

	if email.ToAddress == "" {
		err := fmt.Errorf("a recipient is required")
		tracing.TraceErr(span, err)
		return err
	}

	validation := mailvalidate.ValidateEmailSyntax(email.ToAddress)
	if !validation.IsValid {
		err := fmt.Errorf("recipient address is not valid")
		tracing.TraceErr(span, err)
		return err
	}

	if email.Subject == "" {
		err := fmt.Errorf("email must have a subject")
		tracing.TraceErr(span, err)
		return err
	}

	if email.BodyHTML == "" {
		err := fmt.Errorf("email must have HTML content")
		tracing.TraceErr(span, err)
		return err
	}

	if email.MessageID == "" {
		email.MessageID = utils.GenerateMessageID(utils.ExtractDomainFromEmail(email.FromAddress), "")
	}

	return nil
}

// prepareMessage builds the MIME message, attachments included
func (s *SMTPClient) prepareMessage(ctx context.Context, email *models.EmailMessage) (*bytes.Buffer, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "SMTPClient.prepareMessage")
	defer span.Finish()
	tracing.TagComponentService(span)

	builder := enmime.Builder().
		From(email.FromName, email.FromAddress).
		To("", email.ToAddress).
		Subject(email.Subject).
		HTML([]byte(email.BodyHTML)).
		Header("Message-Id", email.MessageID)

	for _, attachment := range email.Attachments {
		contentType := attachment.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		builder = builder.AddAttachment(attachment.Content, contentType, attachment.Filename)
	}

	part, err := builder.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build MIME message")
		tracing.TraceErr(span, err)
		return nil, err
	}

	buffer := bytes.NewBuffer(nil)
	if err := part.Encode(buffer); err != nil {
		err = errors.Wrap(err, "failed to encode MIME message")
		tracing.TraceErr(span, err)
		return nil, err
	}

	return buffer, nil
}

// sendToServer sends the prepared email to the SMTP server
func (s *SMTPClient) sendToServer(ctx context.Context, from string, recipients []string, buffer *bytes.Buffer) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SMTPClient.sendToServer")
	defer span.Finish()
	tracing.TagComponentService(span)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.FromAddress, s.cfg.AppPassword, s.cfg.Host)

	if s.cfg.Security == SecurityStartTLS {
		return s.sendWithSTARTTLS(ctx, addr, auth, from, recipients, buffer)
	}

	// Standard SMTP (may use STARTTLS if server supports it)
	err := smtp.SendMail(addr, auth, from, recipients, buffer.Bytes())
	if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	return nil
}

func (s *SMTPClient) sendWithSTARTTLS(ctx context.Context, addr string, auth smtp.Auth, from string, recipients []string, buffer *bytes.Buffer) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "SMTPClient.sendWithSTARTTLS")
	defer span.Finish()
	tracing.TagComponentService(span)
	span.LogKV("smtp_server", s.cfg.Host)
	span.LogKV("from_address", from)

	// Connect to the server without TLS first
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		err = fmt.Errorf("failed to connect to SMTP server: %w", err)
		tracing.TraceErr(span, err)
		return err
	}
	defer conn.Close()

	// Create SMTP client
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		err = fmt.Errorf("failed to create SMTP client: %w", err)
		tracing.TraceErr(span, err)
		return err
	}
	defer client.Close()

	// Start TLS
	tlsConfig := &tls.Config{
		ServerName: s.cfg.Host,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		err = fmt.Errorf("failed to start TLS: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	// Authenticate after TLS is established
	if err = client.Auth(auth); err != nil {
		err = fmt.Errorf("SMTP authentication failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	// Set sender
	if err = client.Mail(from); err != nil {
		err = fmt.Errorf("SMTP MAIL command failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	// Set recipients
	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			err = fmt.Errorf("SMTP RCPT command failed for %s: %w", recipient, err)
			tracing.TraceErr(span, err)
			return err
		}
	}

	// Send data
	dataWriter, err := client.Data()
	if err != nil {
		err = fmt.Errorf("SMTP DATA command failed: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	_, err = dataWriter.Write(buffer.Bytes())
	if err != nil {
		err = fmt.Errorf("failed to write email data: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	err = dataWriter.Close()
	if err != nil {
		err = fmt.Errorf("failed to close data writer: %w", err)
		tracing.TraceErr(span, err)
		return err
	}

	return client.Quit()
}
