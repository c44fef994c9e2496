package account

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/identity-service/application/otp"
	"github.com/muhammadheryan/identity-service/application/token"
	"github.com/muhammadheryan/identity-service/cmd/config"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	accountrepo "github.com/muhammadheryan/identity-service/repository/account"
	"github.com/muhammadheryan/identity-service/thirdparty/notifier"
	"github.com/muhammadheryan/identity-service/utils/errors"
	"github.com/muhammadheryan/identity-service/utils/logger"
	"github.com/muhammadheryan/identity-service/utils/metrics"
	"github.com/muhammadheryan/identity-service/utils/password"
	validatorx "github.com/muhammadheryan/identity-service/utils/validator"
	"go.uber.org/zap"
)

// maxUpdateAttempts bounds how often a transition is re-applied after losing a version race.
const maxUpdateAttempts = 3

type AccountApp interface {
	Role() constant.Role
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	VerifyEmail(ctx context.Context, req *model.VerifyOtpRequest) (*model.VerifyResponse, error)
	VerifyPhone(ctx context.Context, req *model.VerifyOtpRequest) (*model.VerifyResponse, error)
	VerifyLoginOtp(ctx context.Context, req *model.VerifyOtpRequest) (*model.LoginResponse, error)
	RequestOtp(ctx context.Context, req *model.RequestOtpRequest) (*model.OtpSentResponse, error)
	ResendLoginOtp(ctx context.Context, req *model.ResendLoginOtpRequest) (*model.OtpSentResponse, error)
	GetProfile(ctx context.Context, accountID string) (*model.ProfileResponse, error)
}

// Policy is what differs between the user and the admin service.
type Policy struct {
	Role         constant.Role
	RequirePhone bool
	Login        constant.LoginPolicy
}

// UserPolicy and AdminPolicy build the two variants from configuration.
func UserPolicy(cfg *config.Config) Policy {
	return Policy{Role: constant.RoleUser, RequirePhone: cfg.Account.UserRequirePhone, Login: constant.LoginDirect}
}

func AdminPolicy(cfg *config.Config) Policy {
	return Policy{Role: constant.RoleAdmin, RequirePhone: cfg.Account.AdminRequirePhone, Login: constant.LoginSecondFactor}
}

type AccountAppImpl struct {
	config     *config.Config
	policy     Policy
	repo       accountrepo.AccountRepository
	engine     *otp.Engine
	hasher     password.Hasher
	dispatcher notifier.Dispatcher
	issuer     token.Issuer
	now        func() time.Time
}

func NewAccountApp(
	config *config.Config,
	policy Policy,
	repo accountrepo.AccountRepository,
	engine *otp.Engine,
	hasher password.Hasher,
	dispatcher notifier.Dispatcher,
	issuer token.Issuer,
) *AccountAppImpl {
	return &AccountAppImpl{
		config:     config,
		policy:     policy,
		repo:       repo,
		engine:     engine,
		hasher:     hasher,
		dispatcher: dispatcher,
		issuer:     issuer,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source.
func (s *AccountAppImpl) WithClock(now func() time.Time) *AccountAppImpl {
	s.now = now
	return s
}

func (s *AccountAppImpl) Role() constant.Role {
	return s.policy.Role
}

func (s *AccountAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	if s.policy.RequirePhone && req.Phone == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	email := normalizeEmail(req.Email)

	// Check if account exists by email or phone
	existing, err := s.repo.Get(ctx, &model.AccountFilter{Email: email})
	if err != nil {
		logger.Error("[Register] err repo.Get email", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomError(constant.ErrEmailExists)
	}

	if req.Phone != "" {
		existing, err = s.repo.Get(ctx, &model.AccountFilter{Phone: req.Phone})
		if err != nil {
			logger.Error("[Register] err repo.Get phone", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if existing != nil {
			return nil, errors.SetCustomError(constant.ErrPhoneExists)
		}
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.Error("[Register] err hasher.Hash", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	now := s.now()
	entity := &model.AccountEntity{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashed,
		Role:         s.policy.Role,
		CreatedAt:    now,
	}
	code, err := s.engine.IssueVerification(entity, now)
	if err != nil {
		logger.Error("[Register] err engine.IssueVerification", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	entity, err = s.repo.Create(ctx, entity)
	if err != nil {
		if mapped, ok := duplicateError(err); ok {
			return nil, mapped
		}
		logger.Error("[Register] err repo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.dispatch(ctx, entity, constant.OtpPurposeVerification, otp.UnverifiedChannels(entity), code)

	return &model.RegisterResponse{
		AccountID: entity.ID,
		Name:      entity.Name,
		Email:     entity.Email,
		Message:   "Registration successful. Please verify your account with the OTP sent.",
		DevOtp:    s.devOtp(code),
	}, nil
}

func (s *AccountAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	// Find account by email or phone
	filter := &model.AccountFilter{}
	if validatorx.IsEmail(req.Identifier) {
		filter.Email = normalizeEmail(req.Identifier)
	} else {
		filter.Phone = strings.TrimSpace(req.Identifier)
	}

	acc, err := s.repo.Get(ctx, filter)
	if err != nil {
		logger.Error("[Login] err repo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if acc == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if !s.hasher.Verify(req.Password, acc.PasswordHash) {
		return nil, errors.SetCustomError(constant.ErrInvalidPassword)
	}

	if s.policy.Login == constant.LoginSecondFactor {
		return s.startLoginConfirmation(ctx, acc)
	}

	if acc.IsVerified {
		tokenString, err := s.issueToken(ctx, "[Login]", acc)
		if err != nil {
			return nil, err
		}
		return &model.LoginResponse{
			Status:    model.LoginStatusAuthenticated,
			AccountID: acc.ID,
			Token:     tokenString,
			Account:   model.NewProfileResponse(acc),
		}, nil
	}

	var code *model.OTP
	acc, err = s.mutate(ctx, "[Login]", acc, func(a *model.AccountEntity) (err error) {
		code, err = s.engine.IssueVerification(a, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, acc, constant.OtpPurposeVerification, otp.UnverifiedChannels(acc), code)

	return &model.LoginResponse{
		Status:    model.LoginStatusVerificationRequired,
		AccountID: acc.ID,
		Message:   "Account not verified. A new OTP has been sent.",
		DevOtp:    s.devOtp(code),
	}, nil
}

// startLoginConfirmation issues the login OTP after a correct password.
func (s *AccountAppImpl) startLoginConfirmation(ctx context.Context, acc *model.AccountEntity) (*model.LoginResponse, error) {
	code, acc, err := s.issueLoginOtp(ctx, "[Login]", acc)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		Status:    model.LoginStatusOtpRequired,
		AccountID: acc.ID,
		Message:   "OTP sent. Please verify to complete login.",
		DevOtp:    s.devOtp(code),
	}, nil
}

func (s *AccountAppImpl) VerifyEmail(ctx context.Context, req *model.VerifyOtpRequest) (*model.VerifyResponse, error) {
	return s.verifyChannel(ctx, "[VerifyEmail]", req, s.engine.VerifyEmail)
}

func (s *AccountAppImpl) VerifyPhone(ctx context.Context, req *model.VerifyOtpRequest) (*model.VerifyResponse, error) {
	return s.verifyChannel(ctx, "[VerifyPhone]", req, s.engine.VerifyPhone)
}

type transition func(acc *model.AccountEntity, code string, now time.Time) error

func (s *AccountAppImpl) verifyChannel(ctx context.Context, op string, req *model.VerifyOtpRequest, verify transition) (*model.VerifyResponse, error) {
	acc, err := s.load(ctx, op, req.AccountID)
	if err != nil {
		return nil, err
	}

	// sign before the save: a signing failure must leave the code unconsumed
	var tokenString string
	acc, err = s.mutate(ctx, op, acc, func(a *model.AccountEntity) (err error) {
		tokenString = ""
		if err = verify(a, req.Otp, s.now()); err != nil || !a.IsVerified {
			return err
		}
		tokenString, err = s.issueToken(ctx, op, a)
		return err
	})
	metrics.OtpVerified(string(s.policy.Role), constant.OtpPurposeVerification, verificationResult(err))
	if err != nil {
		return nil, err
	}

	if !acc.IsVerified {
		return &model.VerifyResponse{
			Message:    "Verified. Please verify the remaining channel to complete your account.",
			IsVerified: false,
		}, nil
	}
	return &model.VerifyResponse{
		Message:    "Account verified successfully.",
		IsVerified: true,
		Token:      tokenString,
	}, nil
}

func (s *AccountAppImpl) VerifyLoginOtp(ctx context.Context, req *model.VerifyOtpRequest) (*model.LoginResponse, error) {
	acc, err := s.load(ctx, "[VerifyLoginOtp]", req.AccountID)
	if err != nil {
		return nil, err
	}

	var tokenString string
	acc, err = s.mutate(ctx, "[VerifyLoginOtp]", acc, func(a *model.AccountEntity) (err error) {
		if err = s.engine.VerifyLoginOtp(a, req.Otp, s.now()); err != nil {
			return err
		}
		tokenString, err = s.issueToken(ctx, "[VerifyLoginOtp]", a)
		return err
	})
	metrics.OtpVerified(string(s.policy.Role), constant.OtpPurposeLogin, verificationResult(err))
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{
		Status:    model.LoginStatusAuthenticated,
		AccountID: acc.ID,
		Token:     tokenString,
		Account:   model.NewProfileResponse(acc),
	}, nil
}

func (s *AccountAppImpl) RequestOtp(ctx context.Context, req *model.RequestOtpRequest) (*model.OtpSentResponse, error) {
	email := normalizeEmail(req.Email)
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	filter := &model.AccountFilter{Email: email}
	if email == "" {
		filter = &model.AccountFilter{Phone: phone}
	}
	acc, err := s.repo.Get(ctx, filter)
	if err != nil {
		logger.Error("[RequestOtp] err repo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	// both identifiers given must point at the same account
	if acc == nil || (phone != "" && acc.Phone != phone) {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	var channels []constant.Channel
	if email != "" {
		channels = append(channels, constant.ChannelEmail)
	}
	if phone != "" {
		channels = append(channels, constant.ChannelSMS)
	}

	var code *model.OTP
	acc, err = s.mutate(ctx, "[RequestOtp]", acc, func(a *model.AccountEntity) (err error) {
		code, err = s.engine.IssueVerification(a, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.dispatch(ctx, acc, constant.OtpPurposeVerification, channels, code)

	return &model.OtpSentResponse{
		AccountID: acc.ID,
		Message:   "OTP sent successfully.",
		ExpiresAt: code.ExpiresAt,
		DevOtp:    s.devOtp(code),
	}, nil
}

// ResendLoginOtp replaces an outstanding login OTP. It needs a login to have been started.
func (s *AccountAppImpl) ResendLoginOtp(ctx context.Context, req *model.ResendLoginOtpRequest) (*model.OtpSentResponse, error) {
	if s.policy.Login != constant.LoginSecondFactor {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	acc, err := s.load(ctx, "[ResendLoginOtp]", req.AccountID)
	if err != nil {
		return nil, err
	}
	if acc.PendingLoginOtp == nil {
		return nil, errors.SetCustomError(constant.ErrOtpNotFound)
	}

	code, acc, err := s.issueLoginOtp(ctx, "[ResendLoginOtp]", acc)
	if err != nil {
		return nil, err
	}
	return &model.OtpSentResponse{
		AccountID: acc.ID,
		Message:   "Login OTP resent successfully.",
		ExpiresAt: code.ExpiresAt,
		DevOtp:    s.devOtp(code),
	}, nil
}

func (s *AccountAppImpl) GetProfile(ctx context.Context, accountID string) (*model.ProfileResponse, error) {
	acc, err := s.load(ctx, "[GetProfile]", accountID)
	if err != nil {
		return nil, err
	}
	return model.NewProfileResponse(acc), nil
}

func (s *AccountAppImpl) issueLoginOtp(ctx context.Context, op string, acc *model.AccountEntity) (*model.OTP, *model.AccountEntity, error) {
	var code *model.OTP
	acc, err := s.mutate(ctx, op, acc, func(a *model.AccountEntity) (err error) {
		code, err = s.engine.IssueLogin(a, s.now())
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	channels := []constant.Channel{constant.ChannelEmail}
	if acc.HasPhone() {
		channels = append(channels, constant.ChannelSMS)
	}
	s.dispatch(ctx, acc, constant.OtpPurposeLogin, channels, code)
	return code, acc, nil
}

func (s *AccountAppImpl) load(ctx context.Context, op, accountID string) (*model.AccountEntity, error) {
	acc, err := s.repo.Get(ctx, &model.AccountFilter{ID: accountID})
	if err != nil {
		logger.Error(op+" err repo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if acc == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return acc, nil
}

// mutate applies a pure transition and persists it with a version check. When another writer got
// there first the record is reloaded and the transition re-applied to the fresh state.
func (s *AccountAppImpl) mutate(ctx context.Context, op string, acc *model.AccountEntity, apply func(*model.AccountEntity) error) (*model.AccountEntity, error) {
	for attempt := 1; ; attempt++ {
		if err := apply(acc); err != nil {
			var ce errors.CustomError
			if stderrors.As(err, &ce) {
				return nil, err
			}
			logger.Error(op+" err apply transition", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		err := s.repo.Update(ctx, acc)
		if err == nil {
			return acc, nil
		}
		if mapped, ok := duplicateError(err); ok {
			return nil, mapped
		}
		if !stderrors.Is(err, accountrepo.ErrStaleRecord) || attempt == maxUpdateAttempts {
			logger.Error(op+" err repo.Update", zap.String("error", err.Error()), zap.Int("attempt", attempt))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}

		logger.Debug(op+" stale record, retrying", zap.String("account_id", acc.ID), zap.Int("attempt", attempt))
		if acc, err = s.load(ctx, op, acc.ID); err != nil {
			return nil, err
		}
	}
}

func (s *AccountAppImpl) issueToken(ctx context.Context, op string, acc *model.AccountEntity) (string, error) {
	tokenString, err := s.issuer.Issue(ctx, acc.ID, acc.Role)
	if err != nil {
		logger.Error(op+" err issuer.Issue", zap.String("error", err.Error()))
		return "", errors.SetCustomError(constant.ErrInternal)
	}
	metrics.TokenIssued(string(acc.Role))
	return tokenString, nil
}

// dispatch sends the code on every channel. Delivery failures are logged and counted only.
func (s *AccountAppImpl) dispatch(ctx context.Context, acc *model.AccountEntity, purpose string, channels []constant.Channel, code *model.OTP) {
	metrics.OtpIssued(string(acc.Role), purpose)

	for _, channel := range channels {
		to := acc.Email
		if channel == constant.ChannelSMS {
			to = acc.Phone
		}
		if to == "" {
			continue
		}

		err := s.dispatcher.Dispatch(ctx, &model.OtpDelivery{
			AccountID: acc.ID,
			Role:      acc.Role,
			Purpose:   purpose,
			Channel:   channel,
			To:        to,
			Code:      code.Code,
			ExpiresAt: code.ExpiresAt,
			TTL:       s.engine.TTL(),
		})
		if err != nil {
			metrics.DeliveryFailed(string(channel))
			logger.Warn("[Dispatch] err deliver otp",
				zap.String("account_id", acc.ID),
				zap.String("channel", string(channel)),
				zap.String("error", err.Error()))
		}
	}
}

func (s *AccountAppImpl) devOtp(code *model.OTP) string {
	if code == nil || !s.config.IsDevelopment() {
		return ""
	}
	return code.Code
}

func duplicateError(err error) (error, bool) {
	var dup *accountrepo.DuplicateFieldError
	if !stderrors.As(err, &dup) {
		return nil, false
	}
	if dup.Field == accountrepo.FieldPhone {
		return errors.SetCustomError(constant.ErrPhoneExists), true
	}
	return errors.SetCustomError(constant.ErrEmailExists), true
}

func verificationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, constant.ErrOtpNotFound):
		return "not_found"
	case errors.Is(err, constant.ErrOtpExpired):
		return "expired"
	case errors.Is(err, constant.ErrOtpMismatch):
		return "mismatch"
	case errors.Is(err, constant.ErrChannelUnavailable):
		return "channel_unavailable"
	}
	return "error"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
