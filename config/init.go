package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/tracing"
)

type Config struct {
	AppConfig  *AppConfig
	SMTPConfig *SMTPConfig
	Logger     *logger.Config
	Tracing    *tracing.JaegerConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:  &AppConfig{},
		SMTPConfig: &SMTPConfig{},
		Logger:     &logger.Config{},
		Tracing:    &tracing.JaegerConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, err
	}

	config.AppConfig.Logger = config.Logger
	config.AppConfig.Tracing = config.Tracing

	return config, nil
}
