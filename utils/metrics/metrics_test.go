package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(otpVerificationsTotal.WithLabelValues("user", "verification", "success"))
	OtpVerified("user", "verification", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(otpVerificationsTotal.WithLabelValues("user", "verification", "success")))

	before = testutil.ToFloat64(deliveryFailuresTotal.WithLabelValues("sms"))
	DeliveryFailed("sms")
	assert.Equal(t, before+1, testutil.ToFloat64(deliveryFailuresTotal.WithLabelValues("sms")))
}

func TestHandler(t *testing.T) {
	ObserveHTTP(http.MethodPost, "/api/auth/login", http.StatusOK, 10*time.Millisecond)
	OtpIssued("admin", "login")
	TokenIssued("admin")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "identity_http_requests_total"))
	assert.True(t, strings.Contains(body, `identity_otp_issued_total{purpose="login",role="admin"}`))
	assert.True(t, strings.Contains(body, "identity_tokens_issued_total"))
}
