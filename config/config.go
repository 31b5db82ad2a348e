package config

import (
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/tracing"
)

type AppConfig struct {
	APIPort    string `env:"PORT" envDefault:"5000"`
	AdminEmail string `env:"ADMIN_EMAIL,required"`
	Logger     *logger.Config
	Tracing    *tracing.JaegerConfig
}

type SMTPConfig struct {
	FromAddress string `env:"SMTP_FROM_ADDRESS,required"`
	FromName    string `env:"SMTP_FROM_NAME" envDefault:"Loksar"`
	AppPassword string `env:"SMTP_APP_PASSWORD,required"`
	Host        string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port        int    `env:"SMTP_PORT" envDefault:"587"`
	Security    string `env:"SMTP_SECURITY" envDefault:"starttls"`
}

// MaxUploadSize is the per-file ceiling for booking attachments.
const MaxUploadSize = 5 << 20 // 5 MiB
