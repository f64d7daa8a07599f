package email_test

import (
	"testing"

	"jobkit-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTP(t *testing.T) {
	html, plain, err := email.RenderOTP(email.OTPEmailData{
		Username:     "alice",
		Email:        "e@x.com",
		Code:         "123456",
		ValidMinutes: 10,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "10 minutes")
	assert.Contains(t, plain, "Your verification code is 123456.")
	assert.NotContains(t, plain, "<html>")
}

func TestRenderOTPEscapesHTML(t *testing.T) {
	html, plain, err := email.RenderOTP(email.OTPEmailData{Username: "<b>x</b>", Code: "000001", ValidMinutes: 10})
	require.NoError(t, err)

	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, plain, "<b>x</b>")
}
