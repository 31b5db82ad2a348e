package services

import (
	"github.com/loksar/notifications/config"
	"github.com/loksar/notifications/interfaces"
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/services/notifications"
	"github.com/loksar/notifications/services/smtp"
)

type Services struct {
	EmailSender         interfaces.EmailSender
	NotificationService *notifications.NotificationService
}

func InitServices(cfg *config.Config, log logger.Logger) *Services {
	sender := smtp.NewSMTPClient(cfg.SMTPConfig, log)

	return &Services{
		EmailSender:         sender,
		NotificationService: notifications.NewNotificationService(sender, cfg.AppConfig.AdminEmail, log),
	}
}
