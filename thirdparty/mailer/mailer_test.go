package mailer_test

import (
	"strings"
	"testing"

	"github.com/muhammadheryan/identity-service/thirdparty/mailer"
	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(mailer.BuildMessage("noreply@x.com", "a@x.com", "Email Verification OTP", "Your OTP is: 123456"))

	assert.True(t, strings.HasPrefix(msg, "From: noreply@x.com\r\nTo: a@x.com\r\nSubject: Email Verification OTP\r\n"))
	assert.Contains(t, msg, "Content-Type: text/plain")
	assert.True(t, strings.HasSuffix(msg, "\r\n\r\nYour OTP is: 123456"))
}
