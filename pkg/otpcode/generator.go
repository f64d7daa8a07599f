// Package otpcode produces the numeric one-time codes mailed to new accounts.
//
// Each code is derived from a freshly generated TOTP secret (crypto/rand), so
// codes are unpredictable and independent of each other. The TOTP period only
// shapes the derivation; validity is enforced by the stored expiry.
package otpcode

import (
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	// Digits is the fixed code length.
	Digits = 6
	// Period matches the ten minute code lifetime.
	Period = 600
)

type Generator struct {
	issuer string
}

func NewGenerator(issuer string) *Generator {
	if issuer == "" {
		issuer = "jobkit"
	}
	return &Generator{issuer: issuer}
}

// Generate returns a zero-padded numeric code of length Digits.
func (g *Generator) Generate(accountName string, now time.Time) (string, error) {
	if accountName == "" {
		accountName = "account"
	}
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      g.issuer,
		AccountName: accountName,
		Period:      Period,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("otpcode: generate secret: %w", err)
	}

	code, err := totp.GenerateCodeCustom(key.Secret(), now, totp.ValidateOpts{
		Period:    Period,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("otpcode: derive code: %w", err)
	}
	return code, nil
}
