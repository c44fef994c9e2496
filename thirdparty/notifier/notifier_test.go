package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/thirdparty/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSMS struct {
	to, message string
}

func (f *fakeSMS) SendSMS(_ context.Context, to, message string) error {
	f.to, f.message = to, message
	return nil
}

func TestBody(t *testing.T) {
	tests := []struct {
		name     string
		delivery model.OtpDelivery
		want     string
	}{
		{
			name:     "user email verification",
			delivery: model.OtpDelivery{Role: constant.RoleUser, Purpose: constant.OtpPurposeVerification, Channel: constant.ChannelEmail, Code: "123456", TTL: 10 * time.Minute},
			want:     "Your OTP for email verification is: 123456. Valid for 10 minutes.",
		},
		{
			name:     "admin sms verification short profile",
			delivery: model.OtpDelivery{Role: constant.RoleAdmin, Purpose: constant.OtpPurposeVerification, Channel: constant.ChannelSMS, Code: "654321", TTL: 5 * time.Minute},
			want:     "Your OTP for admin phone verification is: 654321. Valid for 5 minutes.",
		},
		{
			name:     "admin login",
			delivery: model.OtpDelivery{Role: constant.RoleAdmin, Purpose: constant.OtpPurposeLogin, Channel: constant.ChannelEmail, Code: "111111", TTL: 10 * time.Minute},
			want:     "Your OTP for admin login is: 111111. Valid for 10 minutes.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notifier.Body(&tt.delivery))
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Email Verification OTP", notifier.Subject(&model.OtpDelivery{Role: constant.RoleUser, Channel: constant.ChannelEmail}))
	assert.Equal(t, "Admin Email Verification OTP", notifier.Subject(&model.OtpDelivery{Role: constant.RoleAdmin, Channel: constant.ChannelEmail}))
	assert.Equal(t, "Admin Login OTP", notifier.Subject(&model.OtpDelivery{Role: constant.RoleAdmin, Purpose: constant.OtpPurposeLogin}))
}

func TestDirect_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("email goes through the mailer", func(t *testing.T) {
		m := &fakeMailer{}
		d := notifier.NewDirect(m, nil)
		err := d.Dispatch(ctx, &model.OtpDelivery{Channel: constant.ChannelEmail, To: "a@x.com", Code: "123456", TTL: 10 * time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", m.to)
		assert.Contains(t, m.body, "123456")
	})

	t.Run("sms goes through twilio", func(t *testing.T) {
		s := &fakeSMS{}
		d := notifier.NewDirect(nil, s)
		err := d.Dispatch(ctx, &model.OtpDelivery{Channel: constant.ChannelSMS, To: "+15550001111", Code: "123456", TTL: 10 * time.Minute})
		require.NoError(t, err)
		assert.Equal(t, "+15550001111", s.to)
		assert.Contains(t, s.message, "123456")
	})

	t.Run("missing provider falls back to the log", func(t *testing.T) {
		d := notifier.NewDirect(nil, nil)
		assert.NoError(t, d.Dispatch(ctx, &model.OtpDelivery{Channel: constant.ChannelSMS, To: "+1"}))
		assert.NoError(t, d.Dispatch(ctx, &model.OtpDelivery{Channel: constant.ChannelEmail, To: "a@x.com"}))
	})

	t.Run("provider error is returned", func(t *testing.T) {
		d := notifier.NewDirect(&fakeMailer{err: errors.New("smtp down")}, nil)
		assert.Error(t, d.Dispatch(ctx, &model.OtpDelivery{Channel: constant.ChannelEmail, To: "a@x.com"}))
	})

	t.Run("unknown channel", func(t *testing.T) {
		d := notifier.NewDirect(nil, nil)
		assert.Error(t, d.Dispatch(ctx, &model.OtpDelivery{Channel: "pigeon"}))
	})
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want interface{}
	}{
		{
			name: "nothing configured logs only",
			cfg:  &config.Config{},
			want: &notifier.Log{},
		},
		{
			name: "smtp configured",
			cfg: &config.Config{SMTP: config.SMTPConfig{
				Host: "smtp.example.com", Port: "465", Username: "u", Password: "p",
			}},
			want: &notifier.Direct{},
		},
		{
			name: "twilio configured",
			cfg: &config.Config{Twilio: config.TwilioConfig{
				AccountSID: "AC1", AuthToken: "t", From: "+15550000000",
			}},
			want: &notifier.Direct{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.IsType(t, tt.want, notifier.New(tt.cfg))
		})
	}
}

func TestLog_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		revealCode bool
	}{
		{name: "development shows the code", revealCode: true},
		{name: "code hidden otherwise", revealCode: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			l := notifier.NewLog(tt.revealCode).WithLogger(zap.New(core))

			err := l.Dispatch(context.Background(), &model.OtpDelivery{
				AccountID: "acc-1", Channel: constant.ChannelEmail, To: "a@x.com", Code: "123456",
			})
			require.NoError(t, err)

			entries := logs.All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "a@x.com", fields["to"])
			code, ok := fields["code"]
			assert.Equal(t, tt.revealCode, ok)
			if tt.revealCode {
				assert.Equal(t, "123456", code)
			}
		})
	}
}
