package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	APIPort string `envconfig:"API_PORT" default:"8080"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RabbitMQURL string `envconfig:"RABBITMQ_URL" default:""`

	SMTPHost     string `envconfig:"SMTP_HOST" default:""`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER" default:""`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" default:""`
	MailFrom     string `envconfig:"MAIL_FROM" default:"hello@oakline.studio"`

	MaxEmailsPerHour int `envconfig:"MAX_EMAILS_PER_HOUR" default:"100"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return &cfg, err
}
