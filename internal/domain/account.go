package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Role is the account variant chosen at registration.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleCompany  Role = "company"
	RoleAdmin    Role = "admin"
)

var ErrUnknownRole = errors.New("unknown user type")

// RoleDefaults are the account flags a role starts with.
type RoleDefaults struct {
	IsStaff bool
}

var roleDefaults = map[Role]RoleDefaults{
	RoleEmployee: {IsStaff: false},
	RoleCompany:  {IsStaff: false},
	RoleAdmin:    {IsStaff: true},
}

// ParseRole maps a route/role selector onto a Role, rejecting unknown tags.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleDefaults[r]; !ok {
		return "", ErrUnknownRole
	}
	return r, nil
}

func (r Role) Defaults() RoleDefaults {
	return roleDefaults[r]
}

func (r Role) String() string {
	return string(r)
}

type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"user_type"`
	IsActive     bool      `json:"is_active"`
	IsStaff      bool      `json:"is_staff"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OTPValidity is the lifetime of a one-time code.
const OTPValidity = 10 * time.Minute

// OneTimeCode is a numeric verification code bound to one account.
type OneTimeCode struct {
	ID         int64
	AccountID  int64
	Code       string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}

func NewOneTimeCode(accountID int64, code string, now time.Time) *OneTimeCode {
	return &OneTimeCode{
		AccountID: accountID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(OTPValidity),
	}
}

// Expired reports whether now is at or past the expiry instant.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Username string `json:"username" validate:"required,max=150,valid_username"`
	Password string `json:"password" validate:"required,max=128"`
}

type VerifyOTPInput struct {
	OTPCode string `json:"otp_code" validate:"required,len=6,numeric"`
	// Email, when present, restricts the lookup to that account's codes.
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Session is a freshly minted token pair for one account.
type Session struct {
	AccountID        int64     `json:"user_id"`
	Role             Role      `json:"user_type"`
	TokenType        string    `json:"token_type"`
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// SessionClaims are what a verified token says about its bearer.
type SessionClaims struct {
	AccountID int64
	Role      Role
}

// OTPNotification is handed to the notifier after a code is stored.
type OTPNotification struct {
	AccountID int64     `json:"account_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// MarkVerified flips is_verified only if it was false and reports whether it did.
	MarkVerified(ctx context.Context, id int64) (bool, error)
}

type OneTimeCodeRepository interface {
	Create(ctx context.Context, code *OneTimeCode) error
	// FindLatestByCode returns the newest code with this value across all accounts.
	FindLatestByCode(ctx context.Context, code string) (*OneTimeCode, error)
	FindLatestForAccount(ctx context.Context, accountID int64, code string) (*OneTimeCode, error)
	// ExistsLive reports whether an unconsumed, unexpired code with this value exists.
	ExistsLive(ctx context.Context, code string, now time.Time) (bool, error)
	MarkConsumed(ctx context.Context, id int64, at time.Time) error
	// DeleteStale removes codes that expired or were consumed before the cutoff.
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// Transactor runs fn in a database transaction carried by the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator produces numeric one-time codes.
type CodeGenerator interface {
	Generate(accountName string, now time.Time) (string, error)
}

// SessionIssuer mints and verifies signed session tokens.
type SessionIssuer interface {
	Issue(account *Account) (*Session, error)
	ParseAccess(token string) (*SessionClaims, error)
	ParseRefresh(token string) (*SessionClaims, error)
}

// OTPNotifier delivers a code to the account holder.
type OTPNotifier interface {
	NotifyOTP(ctx context.Context, n OTPNotification) error
}

type AuthUsecase interface {
	Register(ctx context.Context, role Role, in RegisterInput) (*Account, error)
	VerifyOTP(ctx context.Context, in VerifyOTPInput) (*Session, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Authenticate(ctx context.Context, accessToken string) (*SessionClaims, error)
	CurrentAccount(ctx context.Context) (*Account, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	PurgeStaleCodes(ctx context.Context, before time.Time) (int64, error)
}
