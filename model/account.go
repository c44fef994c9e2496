package model

import (
	"time"

	"github.com/muhammadheryan/identity-service/constant"
)

// OTP is a single outstanding one-time code. A nil *OTP means the slot is empty.
type OTP struct {
	Code      string    `bson:"code" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// AccountEntity represents a user or admin identity record
type AccountEntity struct {
	ID              string        `bson:"_id" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Email           string        `bson:"email" json:"email"`
	Phone           string        `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash    string        `bson:"password_hash" json:"-"`
	Role            constant.Role `bson:"role" json:"role"`
	EmailVerified   bool          `bson:"email_verified" json:"email_verified"`
	PhoneVerified   bool          `bson:"phone_verified" json:"phone_verified"`
	IsVerified      bool          `bson:"is_verified" json:"is_verified"`
	PendingOtp      *OTP          `bson:"otp,omitempty" json:"-"`
	PendingLoginOtp *OTP          `bson:"login_otp,omitempty" json:"-"`
	Version         int64         `bson:"version" json:"-"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       *time.Time    `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasPhone reports whether a phone channel is registered on the account.
func (a *AccountEntity) HasPhone() bool {
	return a.Phone != ""
}

// Clone returns a copy that shares no OTP slots with the receiver.
func (a *AccountEntity) Clone() *AccountEntity {
	c := *a
	if a.PendingOtp != nil {
		otp := *a.PendingOtp
		c.PendingOtp = &otp
	}
	if a.PendingLoginOtp != nil {
		otp := *a.PendingLoginOtp
		c.PendingLoginOtp = &otp
	}
	if a.UpdatedAt != nil {
		t := *a.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// AccountFilter for querying accounts; exactly one field is expected to be set
type AccountFilter struct {
	ID    string
	Email string
	Phone string
}

// RegisterRequest for account registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	DevOtp    string `json:"dev_otp,omitempty"`
}

// LoginRequest for password login (accepts email or phone)
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email or phone
	Password   string `json:"password" validate:"required"`
}

// LoginStatus describes how far a login got.
type LoginStatus string

const (
	LoginStatusAuthenticated        LoginStatus = "authenticated"
	LoginStatusVerificationRequired LoginStatus = "verification_required"
	LoginStatusOtpRequired          LoginStatus = "otp_required"
)

type LoginResponse struct {
	Status    LoginStatus      `json:"status"`
	AccountID string           `json:"account_id"`
	Token     string           `json:"token,omitempty"`
	Account   *ProfileResponse `json:"account,omitempty"`
	Message   string           `json:"message,omitempty"`
	DevOtp    string           `json:"dev_otp,omitempty"`
}

// VerifyOtpRequest is used for email, phone and login OTP confirmation
type VerifyOtpRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	Otp       string `json:"otp" validate:"required,numeric"`
}

type VerifyResponse struct {
	Message    string `json:"message"`
	IsVerified bool   `json:"is_verified"`
	Token      string `json:"token,omitempty"`
}

// RequestOtpRequest asks for a fresh verification code on email and/or phone
type RequestOtpRequest struct {
	Email string `json:"email" validate:"required_without=Phone,omitempty,email"`
	Phone string `json:"phone" validate:"required_without=Email,omitempty,e164"`
}

type ResendLoginOtpRequest struct {
	AccountID string `json:"account_id" validate:"required"`
}

type OtpSentResponse struct {
	AccountID string    `json:"account_id"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
	DevOtp    string    `json:"dev_otp,omitempty"`
}

type ProfileResponse struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Role          constant.Role `json:"role"`
	EmailVerified bool          `json:"email_verified"`
	PhoneVerified bool          `json:"phone_verified"`
	IsVerified    bool          `json:"is_verified"`
	CreatedAt     time.Time     `json:"created_at"`
}

func NewProfileResponse(a *AccountEntity) *ProfileResponse {
	return &ProfileResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Role:          a.Role,
		EmailVerified: a.EmailVerified,
		PhoneVerified: a.PhoneVerified,
		IsVerified:    a.IsVerified,
		CreatedAt:     a.CreatedAt,
	}
}
