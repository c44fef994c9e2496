// Package notifier turns OTP deliveries into emails and text messages.
package notifier

import (
	"context"
	"fmt"
	"math"

	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/thirdparty/mailer"
	"github.com/muhammadheryan/identity-service/thirdparty/twilio"
	"github.com/muhammadheryan/identity-service/utils/logger"
	"go.uber.org/zap"
)

// Dispatcher delivers a code over the delivery's channel. Callers treat errors as non-fatal.
type Dispatcher interface {
	Dispatch(ctx context.Context, d *model.OtpDelivery) error
}

// Direct sends synchronously. A channel without a configured sender is logged instead.
type Direct struct {
	mailer     mailer.Mailer
	sms        twilio.Client
	log        *zap.Logger
	revealCode bool
}

func NewDirect(m mailer.Mailer, sms twilio.Client) *Direct {
	return &Direct{mailer: m, sms: sms, log: logger.Named("notifier")}
}

// WithRevealCode puts the code itself into fallback log lines. Development only.
func (d *Direct) WithRevealCode(reveal bool) *Direct {
	d.revealCode = reveal
	return d
}

func (d *Direct) Dispatch(ctx context.Context, delivery *model.OtpDelivery) error {
	switch delivery.Channel {
	case constant.ChannelEmail:
		if d.mailer == nil {
			return logDelivery(d.log, delivery, d.revealCode)
		}
		return d.mailer.Send(delivery.To, Subject(delivery), Body(delivery))
	case constant.ChannelSMS:
		if d.sms == nil {
			return logDelivery(d.log, delivery, d.revealCode)
		}
		return d.sms.SendSMS(ctx, delivery.To, Body(delivery))
	}
	return fmt.Errorf("unknown channel %q", delivery.Channel)
}

// New wires whichever providers are configured. Codes appear in logs only in development.
func New(cfg *config.Config) Dispatcher {
	var m mailer.Mailer
	if cfg.SMTP.Configured() {
		m = mailer.NewSMTP(cfg.SMTP)
	}
	var sms twilio.Client
	if cfg.Twilio.Configured() {
		sms = twilio.NewClient(cfg.Twilio)
	}
	if m == nil && sms == nil {
		return NewLog(cfg.IsDevelopment())
	}
	return NewDirect(m, sms).WithRevealCode(cfg.IsDevelopment())
}

// Log only writes deliveries to the log. Used when no provider is configured at all.
type Log struct {
	log        *zap.Logger
	revealCode bool
}

func NewLog(revealCode bool) *Log {
	return &Log{log: logger.Named("notifier"), revealCode: revealCode}
}

func (l *Log) WithLogger(log *zap.Logger) *Log {
	l.log = log
	return l
}

func (l *Log) Dispatch(_ context.Context, delivery *model.OtpDelivery) error {
	return logDelivery(l.log, delivery, l.revealCode)
}

func logDelivery(log *zap.Logger, d *model.OtpDelivery, revealCode bool) error {
	fields := []zap.Field{
		zap.String("account_id", d.AccountID),
		zap.String("role", string(d.Role)),
		zap.String("purpose", d.Purpose),
		zap.String("channel", string(d.Channel)),
		zap.String("to", d.To),
	}
	if revealCode {
		fields = append(fields, zap.String("code", d.Code))
	}
	log.Info("otp delivery (no provider configured)", fields...)
	return nil
}

func Subject(d *model.OtpDelivery) string {
	prefix := ""
	if d.Role == constant.RoleAdmin {
		prefix = "Admin "
	}
	if d.Purpose == constant.OtpPurposeLogin {
		return prefix + "Login OTP"
	}
	if d.Channel == constant.ChannelEmail {
		return prefix + "Email Verification OTP"
	}
	return prefix + "Verification OTP"
}

// Body renders e.g. "Your OTP for email verification is: 123456. Valid for 10 minutes."
func Body(d *model.OtpDelivery) string {
	subject := "verification"
	switch {
	case d.Purpose == constant.OtpPurposeLogin:
		subject = "login"
	case d.Channel == constant.ChannelEmail:
		subject = "email verification"
	case d.Channel == constant.ChannelSMS:
		subject = "phone verification"
	}
	if d.Role == constant.RoleAdmin {
		subject = "admin " + subject
	}
	return fmt.Sprintf("Your OTP for %s is: %s. Valid for %d minutes.", subject, d.Code, minutes(d))
}

func minutes(d *model.OtpDelivery) int {
	return int(math.Ceil(d.TTL.Minutes()))
}
