package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/queue"
	"jobkit-backend/pkg/security"

	"go.uber.org/zap"
)

// OTPMailHandler turns queued notifications into emails. Every failure is
// permanent: a code is short-lived, so redelivery would only send stale mail.
type OTPMailHandler struct {
	mailer Mailer
	logger *zap.Logger
	now    func() time.Time
}

func NewOTPMailHandler(mailer Mailer, logger *zap.Logger) *OTPMailHandler {
	return &OTPMailHandler{mailer: mailer, logger: logger, now: time.Now}
}

func (h *OTPMailHandler) Handle(ctx context.Context, body []byte) error {
	var msg domain.OTPNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("Discarding malformed OTP message", zap.Error(err))
		return fmt.Errorf("%w: decode: %v", queue.ErrPermanent, err)
	}

	now := h.now()
	if !msg.ExpiresAt.IsZero() && !now.Before(msg.ExpiresAt) {
		h.logger.Warn("Skipping expired OTP message",
			zap.Int64("account_id", msg.AccountID),
			zap.Time("expires_at", msg.ExpiresAt),
		)
		return nil
	}

	err := h.mailer.SendOTPEmail(emailData(msg, now))
	if observe(TransportSMTP, err) != nil {
		h.logger.Error("Failed to send OTP email",
			zap.Int64("account_id", msg.AccountID),
			zap.String("email", security.MaskEmail(msg.Email)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: send: %v", queue.ErrPermanent, err)
	}

	h.logger.Info("OTP email sent",
		zap.Int64("account_id", msg.AccountID),
		zap.String("email", security.MaskEmail(msg.Email)),
	)
	return nil
}
