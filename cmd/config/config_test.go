package config_test

import (
	"testing"
	"time"

	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OTP_PROFILE", "")
	t.Setenv("OTP_TTL_MINUTES", "")
	t.Setenv("JWT_EXPIRATION", "")
	t.Setenv("USER_REQUIRE_PHONE", "")
	t.Setenv("ADMIN_REQUIRE_PHONE", "")

	cfg := config.Load()

	assert.Equal(t, 10*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 6, cfg.OTP.Length)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.JWTExpiration)
	assert.False(t, cfg.Account.UserRequirePhone)
	assert.True(t, cfg.Account.AdminRequirePhone)
}

func TestLoad_EnvironmentDefaultsToProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")

	cfg := config.Load()

	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())

	t.Setenv("ENVIRONMENT", "development")
	assert.True(t, config.Load().IsDevelopment())
}

func TestLoad_OTPProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		minutes string
		want    time.Duration
	}{
		{name: "standard profile", profile: "standard", want: 10 * time.Minute},
		{name: "short profile", profile: "short", want: 5 * time.Minute},
		{name: "explicit minutes win over profile", profile: "short", minutes: "15", want: 15 * time.Minute},
		{name: "invalid minutes fall back to profile", profile: "standard", minutes: "abc", want: 10 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTP_PROFILE", tt.profile)
			t.Setenv("OTP_TTL_MINUTES", tt.minutes)

			cfg := config.Load()
			assert.Equal(t, tt.want, cfg.OTP.TTL)
		})
	}
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:     "db",
			Port:     3306,
			User:     "app",
			Password: "pw",
			Name:     "identity",
		},
	}
	assert.Equal(t, "app:pw@tcp(db:3306)/identity?parseTime=true&charset=utf8mb4&loc=UTC", cfg.GetDSN())
}

func TestChannelConfigured(t *testing.T) {
	assert.False(t, config.SMTPConfig{Host: "smtp.gmail.com"}.Configured())
	assert.True(t, config.SMTPConfig{Host: "smtp.gmail.com", Username: "u", Password: "p"}.Configured())
	assert.False(t, config.TwilioConfig{AccountSID: "AC1"}.Configured())
	assert.True(t, config.TwilioConfig{AccountSID: "AC1", AuthToken: "t", From: "+1555"}.Configured())
}
