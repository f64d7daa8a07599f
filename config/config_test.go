package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, MailTransportSMTP, cfg.MailTransport)
	assert.Len(t, cfg.JWTSecret, 64, "a random secret is generated outside production")
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("OTP_RETENTION", "0s")
	t.Setenv("MAIL_TRANSPORT", "RabbitMQ")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Zero(t, cfg.OTPRetention)
	assert.Equal(t, MailTransportRabbitMQ, cfg.MailTransport)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 587, cfg.SMTPPort, "invalid integers fall back")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfigRequiresSecretOutsideDevelopment(t *testing.T) {
	for _, env := range []string{"production", "staging"} {
		t.Run(env, func(t *testing.T) {
			t.Setenv("APP_ENV", env)
			t.Setenv("JWT_SECRET", "")

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
