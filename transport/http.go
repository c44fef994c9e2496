package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	accountapp "github.com/muhammadheryan/identity-service/application/account"
	"github.com/muhammadheryan/identity-service/application/token"
	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/model"
	utilsContext "github.com/muhammadheryan/identity-service/utils/context"
	"github.com/muhammadheryan/identity-service/utils/errors"
	"github.com/muhammadheryan/identity-service/utils/metrics"
	validatorx "github.com/muhammadheryan/identity-service/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp  accountapp.AccountApp
	AdminApp accountapp.AccountApp
}

func NewTransport(userApp, adminApp accountapp.AccountApp, issuer token.Issuer, internalAPIKey string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:  userApp,
		AdminApp: adminApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.HandleFunc("/health", rh.Health).Methods(http.MethodGet)
	router.Handle("/metrics", InternalMiddleware(internalAPIKey)(metrics.Handler())).Methods(http.MethodGet)

	// user routes
	user := router.PathPrefix("/api/auth").Subrouter()
	user.HandleFunc("/register", rh.Register(userApp)).Methods(http.MethodPost)
	user.HandleFunc("/login", rh.Login(userApp)).Methods(http.MethodPost)
	user.HandleFunc("/verify-email", rh.VerifyEmail(userApp)).Methods(http.MethodPost)
	user.HandleFunc("/verify-phone", rh.VerifyPhone(userApp)).Methods(http.MethodPost)
	user.HandleFunc("/request-otp", rh.RequestOtp(userApp)).Methods(http.MethodPost)
	user.Handle("/profile", RequireRole(constant.RoleUser)(rh.Profile(userApp))).Methods(http.MethodGet)

	// admin routes
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.HandleFunc("/register", rh.Register(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/login", rh.Login(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/verify-login-otp", rh.VerifyLoginOtp(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/resend-login-otp", rh.ResendLoginOtp(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/verify-email", rh.VerifyEmail(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/verify-phone", rh.VerifyPhone(adminApp)).Methods(http.MethodPost)
	admin.HandleFunc("/request-otp", rh.RequestOtp(adminApp)).Methods(http.MethodPost)
	admin.Handle("/profile", RequireRole(constant.RoleAdmin)(rh.Profile(adminApp))).Methods(http.MethodGet)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(issuer))

	return router
}

// decodeRequest reads the JSON body and runs struct validation.
func decodeRequest(r *http.Request, req interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

// Health handler
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}

// Register handler
// @Summary Register account
// @Description Register a new user or admin. A verification OTP is sent to every channel on the account.
// @Tags Auth,Admin
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Router /api/auth/register [post]
// @Router /api/admin/register [post]
func (s *RestHandler) Register(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.RegisterRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if app == nil {
			writeError(w, errors.SetCustomError(constant.ErrInternal))
			return
		}

		res, err := app.Register(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// Login handler
// @Summary Login
// @Description Login with email or phone. Users get a token when verified; admins always get an OTP first.
// @Tags Auth,Admin
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} errors.CustomError
// @Failure 404 {object} errors.CustomError
// @Router /api/auth/login [post]
// @Router /api/admin/login [post]
func (s *RestHandler) Login(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		if app == nil {
			writeError(w, errors.SetCustomError(constant.ErrInternal))
			return
		}

		res, err := app.Login(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// VerifyEmail handler
// @Summary Verify email
// @Tags Auth,Admin
// @Accept json
// @Produce json
// @Param request body model.VerifyOtpRequest true "Verify Request"
// @Success 200 {object} model.VerifyResponse
// @Failure 400 {object} errors.CustomError
// @Router /api/auth/verify-email [post]
// @Router /api/admin/verify-email [post]
func (s *RestHandler) VerifyEmail(app accountapp.AccountApp) http.HandlerFunc {
	return s.verify(app.VerifyEmail)
}

// VerifyPhone handler
// @Summary Verify phone
// @Tags Auth,Admin
// @Accept json
// @Produce json
// @Param request body model.VerifyOtpRequest true "Verify Request"
// @Success 200 {object} model.VerifyResponse
// @Failure 400 {object} errors.CustomError
// @Router /api/auth/verify-phone [post]
// @Router /api/admin/verify-phone [post]
func (s *RestHandler) VerifyPhone(app accountapp.AccountApp) http.HandlerFunc {
	return s.verify(app.VerifyPhone)
}

func (s *RestHandler) verify(fn func(ctx context.Context, req *model.VerifyOtpRequest) (*model.VerifyResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.VerifyOtpRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		res, err := fn(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// VerifyLoginOtp handler
// @Summary Confirm admin login
// @Description Exchange the login OTP for a token.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body model.VerifyOtpRequest true "Verify Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /api/admin/verify-login-otp [post]
func (s *RestHandler) VerifyLoginOtp(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.VerifyOtpRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		res, err := app.VerifyLoginOtp(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// ResendLoginOtp handler
// @Summary Resend admin login OTP
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body model.ResendLoginOtpRequest true "Resend Request"
// @Success 200 {object} model.OtpSentResponse
// @Failure 400 {object} errors.CustomError
// @Router /api/admin/resend-login-otp [post]
func (s *RestHandler) ResendLoginOtp(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.ResendLoginOtpRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		res, err := app.ResendLoginOtp(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// RequestOtp handler
// @Summary Request a new verification OTP
// @Description Sends to the email and/or phone given. Any earlier code stops working.
// @Tags Auth,Admin
// @Accept json
// @Produce json
// @Param request body model.RequestOtpRequest true "Request OTP"
// @Success 200 {object} model.OtpSentResponse
// @Failure 404 {object} errors.CustomError
// @Router /api/auth/request-otp [post]
// @Router /api/admin/request-otp [post]
func (s *RestHandler) RequestOtp(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.RequestOtpRequest
		if err := decodeRequest(r, &req); err != nil {
			writeError(w, err)
			return
		}

		res, err := app.RequestOtp(r.Context(), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}

// Profile handler
// @Summary Current account profile
// @Tags Auth,Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProfileResponse
// @Failure 401 {object} errors.CustomError
// @Failure 403 {object} errors.CustomError
// @Router /api/auth/profile [get]
// @Router /api/admin/profile [get]
func (s *RestHandler) Profile(app accountapp.AccountApp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := utilsContext.GetAccountID(r.Context())
		if !ok {
			writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}

		res, err := app.GetProfile(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeSuccess(w, res)
	}
}
