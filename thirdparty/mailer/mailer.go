package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/muhammadheryan/identity-service/cmd/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends plain-text mail over implicit TLS (port 465 style).
type SMTP struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTP{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     from,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	conn, err := tls.Dial("tcp", s.host+":"+s.port, &tls.Config{ServerName: s.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Quit()

	if err := client.Auth(smtp.PlainAuth("", s.username, s.password, s.host)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(BuildMessage(s.from, to, subject, body)); err != nil {
		return err
	}
	return w.Close()
}

// BuildMessage renders RFC 5322 headers followed by a plain-text body.
func BuildMessage(from, to, subject, body string) []byte {
	return []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)
}
