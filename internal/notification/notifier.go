// Package notification delivers one-time codes to account holders.
package notification

import (
	"context"
	"errors"
	"time"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/email"
	"jobkit-backend/pkg/metrics"
	"jobkit-backend/pkg/security"

	"go.uber.org/zap"
)

// Transport labels, also used as metric label values.
const (
	TransportSMTP     = "smtp"
	TransportRabbitMQ = "rabbitmq"
	TransportLog      = "log"
)

var ErrMailNotConfigured = errors.New("smtp host or sender address is not configured")

// Mailer sends a rendered OTP email.
type Mailer interface {
	SendOTPEmail(data email.OTPEmailData) error
	IsConfigured() bool
}

// Publisher enqueues a JSON message.
type Publisher interface {
	Publish(ctx context.Context, v any) error
}

func observe(transport string, err error) error {
	result := metrics.ResultSuccess
	if err != nil {
		result = metrics.ResultFailure
	}
	metrics.OTPDispatchTotal.WithLabelValues(transport, result).Inc()
	return err
}

func emailData(n domain.OTPNotification, now time.Time) email.OTPEmailData {
	minutes := int(n.ExpiresAt.Sub(now).Round(time.Minute).Minutes())
	if minutes <= 0 {
		minutes = int(domain.OTPValidity.Minutes())
	}
	return email.OTPEmailData{
		Username:     n.Username,
		Email:        n.Email,
		Code:         n.Code,
		ValidMinutes: minutes,
	}
}

type smtpNotifier struct {
	mailer Mailer
}

// NewSMTPNotifier sends the code inline, during the request.
func NewSMTPNotifier(mailer Mailer) domain.OTPNotifier {
	return &smtpNotifier{mailer: mailer}
}

func (n *smtpNotifier) NotifyOTP(ctx context.Context, msg domain.OTPNotification) error {
	if !n.mailer.IsConfigured() {
		return observe(TransportSMTP, ErrMailNotConfigured)
	}
	return observe(TransportSMTP, n.mailer.SendOTPEmail(emailData(msg, time.Now())))
}

type queueNotifier struct {
	publisher Publisher
}

// NewQueueNotifier hands the code to the mailer worker through RabbitMQ.
func NewQueueNotifier(publisher Publisher) domain.OTPNotifier {
	return &queueNotifier{publisher: publisher}
}

func (n *queueNotifier) NotifyOTP(ctx context.Context, msg domain.OTPNotification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return observe(TransportRabbitMQ, n.publisher.Publish(ctx, msg))
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier writes the code to the log. Development only.
func NewLogNotifier(logger *zap.Logger) domain.OTPNotifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) NotifyOTP(ctx context.Context, msg domain.OTPNotification) error {
	n.logger.Info("OTP issued",
		zap.Int64("account_id", msg.AccountID),
		zap.String("email", security.MaskEmail(msg.Email)),
		zap.String("code", msg.Code),
		zap.Time("expires_at", msg.ExpiresAt),
	)
	return observe(TransportLog, nil)
}
