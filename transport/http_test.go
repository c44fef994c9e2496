package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/muhammadheryan/identity-service/application/token"
	"github.com/muhammadheryan/identity-service/constant"
	accountMock "github.com/muhammadheryan/identity-service/mocks/application/account"
	tokenMock "github.com/muhammadheryan/identity-service/mocks/application/token"
	"github.com/muhammadheryan/identity-service/model"
	"github.com/muhammadheryan/identity-service/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testInternalKey = "internal-key"

type errorBody struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func claimsFor(id string, role constant.Role) *token.Claims {
	return &token.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: id, ID: "jti"},
	}
}

func newRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestTransport(t *testing.T) {
	type fields struct {
		userApp  *accountMock.AccountApp
		adminApp *accountMock.AccountApp
		issuer   *tokenMock.Issuer
	}

	tests := []struct {
		name       string
		request    func() *http.Request
		mockCall   func(f fields)
		wantStatus int
		wantCode   string
		wantBody   func(t *testing.T, body []byte)
	}{
		{
			name: "health is public",
			request: func() *http.Request {
				return newRequest(http.MethodGet, "/health", nil)
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusOK,
		},
		{
			name: "user register routed to user app",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/register", model.RegisterRequest{
					Name: "Alice", Email: "alice@example.com", Password: "secret123",
				})
			},
			mockCall: func(f fields) {
				f.userApp.On("Register", mock.Anything, mock.MatchedBy(func(r *model.RegisterRequest) bool {
					return r.Email == "alice@example.com"
				})).Return(&model.RegisterResponse{AccountID: "u-1", Email: "alice@example.com"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var res model.RegisterResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, "u-1", res.AccountID)
			},
		},
		{
			name: "admin register routed to admin app",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/admin/register", model.RegisterRequest{
					Name: "Root", Email: "root@example.com", Phone: "+6281234567890", Password: "secret123",
				})
			},
			mockCall: func(f fields) {
				f.adminApp.On("Register", mock.Anything, mock.Anything).
					Return(&model.RegisterResponse{AccountID: "a-1"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "register with invalid email",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/register", model.RegisterRequest{
					Name: "Alice", Email: "not-an-email", Password: "secret123",
				})
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name: "malformed json",
			request: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
				return req
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name: "application error mapped to its status",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/login", model.LoginRequest{
					Identifier: "alice@example.com", Password: "wrong",
				})
			},
			mockCall: func(f fields) {
				f.userApp.On("Login", mock.Anything, mock.Anything).
					Return(nil, errors.SetCustomError(constant.ErrInvalidPassword)).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "0006",
		},
		{
			name: "verify otp requires numeric code",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/verify-email", model.VerifyOtpRequest{
					AccountID: "u-1", Otp: "abc",
				})
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name: "verify phone routed",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/verify-phone", model.VerifyOtpRequest{
					AccountID: "u-1", Otp: "123456",
				})
			},
			mockCall: func(f fields) {
				f.userApp.On("VerifyPhone", mock.Anything, mock.Anything).
					Return(nil, errors.SetCustomError(constant.ErrChannelUnavailable)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0013",
		},
		{
			name: "verify login otp only on admin routes",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/verify-login-otp", model.VerifyOtpRequest{
					AccountID: "u-1", Otp: "123456",
				})
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "admin verify login otp",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/admin/verify-login-otp", model.VerifyOtpRequest{
					AccountID: "a-1", Otp: "123456",
				})
			},
			mockCall: func(f fields) {
				f.adminApp.On("VerifyLoginOtp", mock.Anything, mock.Anything).
					Return(&model.LoginResponse{Status: model.LoginStatusAuthenticated, Token: "tok"}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "request otp needs an identifier",
			request: func() *http.Request {
				return newRequest(http.MethodPost, "/api/auth/request-otp", model.RequestOtpRequest{})
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "0003",
		},
		{
			name: "profile without token",
			request: func() *http.Request {
				return newRequest(http.MethodGet, "/api/auth/profile", nil)
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "0004",
		},
		{
			name: "profile with invalid token",
			request: func() *http.Request {
				req := newRequest(http.MethodGet, "/api/auth/profile", nil)
				req.Header.Set("Authorization", "Bearer bad")
				return req
			},
			mockCall: func(f fields) {
				f.issuer.On("Validate", mock.Anything, "bad").Return(nil, token.ErrInvalidToken).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "0004",
		},
		{
			name: "user profile",
			request: func() *http.Request {
				req := newRequest(http.MethodGet, "/api/auth/profile", nil)
				req.Header.Set("Authorization", "Bearer good")
				return req
			},
			mockCall: func(f fields) {
				f.issuer.On("Validate", mock.Anything, "good").Return(claimsFor("u-1", constant.RoleUser), nil).Once()
				f.userApp.On("GetProfile", mock.Anything, "u-1").
					Return(&model.ProfileResponse{ID: "u-1", Role: constant.RoleUser}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var res model.ProfileResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, "u-1", res.ID)
			},
		},
		{
			name: "user token on admin profile",
			request: func() *http.Request {
				req := newRequest(http.MethodGet, "/api/admin/profile", nil)
				req.Header.Set("Authorization", "Bearer good")
				return req
			},
			mockCall: func(f fields) {
				f.issuer.On("Validate", mock.Anything, "good").Return(claimsFor("u-1", constant.RoleUser), nil).Once()
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "0009",
		},
		{
			name: "metrics without key",
			request: func() *http.Request {
				return newRequest(http.MethodGet, "/metrics", nil)
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusForbidden,
			wantCode:   "0009",
		},
		{
			name: "metrics with key",
			request: func() *http.Request {
				req := newRequest(http.MethodGet, "/metrics", nil)
				req.Header.Set("Authorization", "Bearer "+testInternalKey)
				return req
			},
			mockCall:   func(f fields) {},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				userApp:  accountMock.NewAccountApp(t),
				adminApp: accountMock.NewAccountApp(t),
				issuer:   tokenMock.NewIssuer(t),
			}
			tt.mockCall(f)

			handler := NewTransport(f.userApp, f.adminApp, f.issuer, testInternalKey)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, tt.request())

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				var body errorBody
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantCode, body.Code)
			}
			if tt.wantBody != nil {
				tt.wantBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "/swagger/index.html", want: true},
		{path: "/health", want: true},
		{path: "/metrics", want: true},
		{path: "/api/auth/login", want: true},
		{path: "/api/admin/verify-login-otp", want: true},
		{path: "/api/auth/profile", want: false},
		{path: "/api/admin/profile", want: false},
		{path: "/other", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isPublicPath(tt.path))
		})
	}
}

func TestWriteError_UnknownErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "0001", body.Code)
}
