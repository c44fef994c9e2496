// Package otp holds the one-time code policy and the verification state machine.
//
// Everything here is pure: an account record goes in, the same record comes out mutated (or an
// error explains why it was left alone). Persistence, delivery and token signing belong to the
// caller.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/utils/errors"
)

const (
	DefaultLength = 6
	DefaultTTL    = 10 * time.Minute
)

type Engine struct {
	ttl    time.Duration
	length int
	random io.Reader
}

func NewEngine(cfg config.OTPConfig) *Engine {
	e := &Engine{ttl: cfg.TTL, length: cfg.Length, random: rand.Reader}
	if e.ttl <= 0 {
		e.ttl = DefaultTTL
	}
	if e.length <= 0 {
		e.length = DefaultLength
	}
	return e
}

// WithRandom swaps the randomness source; tests use it to get deterministic codes.
func (e *Engine) WithRandom(r io.Reader) *Engine {
	e.random = r
	return e
}

func (e *Engine) TTL() time.Duration {
	return e.ttl
}

// GenerateCode returns a numeric code of the configured length with no leading zero,
// i.e. in [10^(n-1), 10^n - 1].
func (e *Engine) GenerateCode() (string, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e.length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(e.random, span)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return n.Add(n, low).String(), nil
}

func (e *Engine) ComputeExpiry(now time.Time) time.Time {
	return now.Add(e.ttl)
}

// IsExpired is strict: a code is still valid at exactly its expiry instant.
func IsExpired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}

// Issue creates a fresh code valid from now.
func (e *Engine) Issue(now time.Time) (*model.OTP, error) {
	code, err := e.GenerateCode()
	if err != nil {
		return nil, err
	}
	return &model.OTP{Code: code, ExpiresAt: e.ComputeExpiry(now)}, nil
}

// IssueVerification overwrites the account's verification slot.
func (e *Engine) IssueVerification(acc *model.AccountEntity, now time.Time) (*model.OTP, error) {
	otp, err := e.Issue(now)
	if err != nil {
		return nil, err
	}
	acc.PendingOtp = otp
	return otp, nil
}

// IssueLogin overwrites the account's login confirmation slot.
func (e *Engine) IssueLogin(acc *model.AccountEntity, now time.Time) (*model.OTP, error) {
	otp, err := e.Issue(now)
	if err != nil {
		return nil, err
	}
	acc.PendingLoginOtp = otp
	return otp, nil
}

// VerifyEmail consumes the verification code and marks the email channel as verified.
func (e *Engine) VerifyEmail(acc *model.AccountEntity, code string, now time.Time) error {
	if err := consume(&acc.PendingOtp, code, now); err != nil {
		return err
	}
	acc.EmailVerified = true
	Recompute(acc)
	return nil
}

// VerifyPhone consumes the verification code and marks the phone channel as verified.
func (e *Engine) VerifyPhone(acc *model.AccountEntity, code string, now time.Time) error {
	if !acc.HasPhone() {
		return errors.SetCustomError(constant.ErrChannelUnavailable)
	}
	if err := consume(&acc.PendingOtp, code, now); err != nil {
		return err
	}
	acc.PhoneVerified = true
	Recompute(acc)
	return nil
}

// VerifyLoginOtp consumes the login code. It does not look at the verification flags.
func (e *Engine) VerifyLoginOtp(acc *model.AccountEntity, code string, now time.Time) error {
	return consume(&acc.PendingLoginOtp, code, now)
}

// Recompute applies the combine rule. Verified is terminal.
func Recompute(acc *model.AccountEntity) {
	if acc.IsVerified {
		return
	}
	acc.IsVerified = acc.EmailVerified && (!acc.HasPhone() || acc.PhoneVerified)
}

// UnverifiedChannels lists the channels that still need a code.
func UnverifiedChannels(acc *model.AccountEntity) []constant.Channel {
	var channels []constant.Channel
	if !acc.EmailVerified {
		channels = append(channels, constant.ChannelEmail)
	}
	if acc.HasPhone() && !acc.PhoneVerified {
		channels = append(channels, constant.ChannelSMS)
	}
	return channels
}

func consume(slot **model.OTP, code string, now time.Time) error {
	pending := *slot
	if pending == nil || pending.Code == "" {
		return errors.SetCustomError(constant.ErrOtpNotFound)
	}
	if IsExpired(pending.ExpiresAt, now) {
		return errors.SetCustomError(constant.ErrOtpExpired)
	}
	if pending.Code != code {
		return errors.SetCustomError(constant.ErrOtpMismatch)
	}
	*slot = nil
	return nil
}
