package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	Log      *zap.Logger
}

func NewEmailSender(host string, port int, user, password string, log *zap.Logger) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Log:      log,
	}
}

// Send delivers one already-rendered message over SMTP. Transient dial/send
// failures are retried with exponential backoff for a few seconds; whatever
// error survives the retries is returned so the dispatcher can leave the unit
// retriable.
func (s *EmailSender) Send(ctx context.Context, from, to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	operation := func() error {
		return d.DialAndSend(m)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		s.Log.Warn("smtp send failed",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("smtp send error: %w", err)
	}

	return nil
}
