package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"

	"gopkg.in/mail.v2"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Email struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers a rendered email.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// Configured reports whether credentials are present. Without them no
// report can be delivered.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

type SMTPMailer struct {
	dialer   *mail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPMailer{
		dialer:   d,
		from:     cfg.Username,
		fromName: cfg.FromName,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewMessage()
	message.SetAddressHeader("From", m.from, m.fromName)
	message.SetHeader("To", msg.To)
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		data := a.Data
		settings := []mail.FileSetting{
			mail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, mail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		message.Attach(a.Filename, settings...)
	}

	// DialAndSend has no context; run it aside so cancellation returns early.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
