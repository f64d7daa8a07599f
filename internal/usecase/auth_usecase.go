package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"
	"jobkit-backend/pkg/logger"
	"jobkit-backend/pkg/metrics"
	"jobkit-backend/pkg/password"
	"jobkit-backend/pkg/security"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds reject-and-retry when a generated code collides with a live one.
const maxCodeAttempts = 5

var (
	errCodeSpaceExhausted = errors.New("could not generate a unique one-time code")
	errAlreadyVerified    = errors.New("account already verified")
)

// Verification outcomes used as metric labels.
const (
	outcomeVerified        = "verified"
	outcomeInvalid         = "invalid"
	outcomeExpired         = "expired"
	outcomeAlreadyVerified = "already_verified"
)

type authUsecase struct {
	accounts  domain.AccountRepository
	codes     domain.OneTimeCodeRepository
	tx        domain.Transactor
	generator domain.CodeGenerator
	sessions  domain.SessionIssuer
	notifier  domain.OTPNotifier
	validate  *validator.Validate
	audit     *security.SecurityLogger
	now       func() time.Time
}

func NewAuthUsecase(
	accounts domain.AccountRepository,
	codes domain.OneTimeCodeRepository,
	tx domain.Transactor,
	generator domain.CodeGenerator,
	sessions domain.SessionIssuer,
	notifier domain.OTPNotifier,
	validate *validator.Validate,
	audit *security.SecurityLogger,
) domain.AuthUsecase {
	return &authUsecase{
		accounts:  accounts,
		codes:     codes,
		tx:        tx,
		generator: generator,
		sessions:  sessions,
		notifier:  notifier,
		validate:  validate,
		audit:     audit,
		now:       time.Now,
	}
}

// normalizeEmail lower-cases the domain part only.
func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

func (u *authUsecase) Register(ctx context.Context, role domain.Role, in domain.RegisterInput) (*domain.Account, error) {
	role, err := domain.ParseRole(string(role))
	if err != nil {
		return nil, apperror.BadRequest("Invalid user type")
	}

	in.Email = normalizeEmail(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := u.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	fields := map[string]string{}
	emailTaken, err := u.accounts.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if emailTaken {
		fields["email"] = "A user with that email already exists."
	}
	usernameTaken, err := u.accounts.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if usernameTaken {
		fields["username"] = "A user with that username already exists."
	}
	if len(fields) > 0 {
		metrics.RegistrationsTotal.WithLabelValues(role.String(), metrics.ResultFailure).Inc()
		return nil, apperror.Validation(fields)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	account := &domain.Account{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		IsStaff:      role.Defaults().IsStaff,
		IsVerified:   false,
	}

	var code *domain.OneTimeCode
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.accounts.Create(ctx, account); err != nil {
			return err
		}
		issued, err := u.issueCode(ctx, account)
		code = issued
		return err
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(role.String(), metrics.ResultFailure).Inc()
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			field := dup.Field
			return nil, apperror.FieldError(field, "A user with that "+field+" already exists.")
		}
		return nil, apperror.Internal(err)
	}

	metrics.RegistrationsTotal.WithLabelValues(role.String(), metrics.ResultSuccess).Inc()
	u.dispatch(ctx, account, code)
	return account, nil
}

// issueCode generates a code that no live code shares and stores it.
func (u *authUsecase) issueCode(ctx context.Context, account *domain.Account) (*domain.OneTimeCode, error) {
	now := u.now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		value, err := u.generator.Generate(account.Email, now)
		if err != nil {
			return nil, err
		}
		live, err := u.codes.ExistsLive(ctx, value, now)
		if err != nil {
			return nil, err
		}
		if live {
			continue
		}
		code := domain.NewOneTimeCode(account.ID, value, now)
		if err := u.codes.Create(ctx, code); err != nil {
			return nil, err
		}
		return code, nil
	}
	return nil, errCodeSpaceExhausted
}

// dispatch hands the code to the notifier. Failure is logged, never returned.
func (u *authUsecase) dispatch(ctx context.Context, account *domain.Account, code *domain.OneTimeCode) {
	if u.notifier == nil || code == nil {
		return
	}
	n := domain.OTPNotification{
		AccountID: account.ID,
		Email:     account.Email,
		Username:  account.Username,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
	}
	if err := u.notifier.NotifyOTP(context.WithoutCancel(ctx), n); err != nil {
		logger.Log.Warn("Failed to deliver OTP",
			zap.Int64("account_id", account.ID),
			zap.String("email", security.MaskEmail(account.Email)),
			zap.Error(err),
		)
	}
}

func (u *authUsecase) VerifyOTP(ctx context.Context, in domain.VerifyOTPInput) (*domain.Session, error) {
	in.OTPCode = strings.TrimSpace(in.OTPCode)
	if err := u.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	code, err := u.lookupCode(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.rejectOTP(ctx, 0, outcomeInvalid, "Invalid OTP code")
		}
		return nil, apperror.Internal(err)
	}

	account, err := u.accounts.GetByID(ctx, code.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.rejectOTP(ctx, 0, outcomeInvalid, "Invalid OTP code")
		}
		return nil, apperror.Internal(err)
	}

	if account.IsVerified {
		return nil, u.rejectOTP(ctx, account.ID, outcomeAlreadyVerified, "User is already verified")
	}

	now := u.now()
	if code.Expired(now) {
		return nil, u.rejectOTP(ctx, account.ID, outcomeExpired, "OTP has expired")
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		flipped, err := u.accounts.MarkVerified(ctx, account.ID)
		if err != nil {
			return err
		}
		if !flipped {
			return errAlreadyVerified
		}
		return u.codes.MarkConsumed(ctx, code.ID, now)
	})
	if errors.Is(err, errAlreadyVerified) {
		return nil, u.rejectOTP(ctx, account.ID, outcomeAlreadyVerified, "User is already verified")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	account.IsVerified = true

	metrics.OTPVerificationsTotal.WithLabelValues(outcomeVerified).Inc()
	u.audit.LogOTPVerified(ctx, account.ID)

	session, err := u.sessions.Issue(account)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

// lookupCode finds the newest matching code, scoped to an account when an email is given.
func (u *authUsecase) lookupCode(ctx context.Context, in domain.VerifyOTPInput) (*domain.OneTimeCode, error) {
	if in.Email == "" {
		return u.codes.FindLatestByCode(ctx, in.OTPCode)
	}
	account, err := u.accounts.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	return u.codes.FindLatestForAccount(ctx, account.ID, in.OTPCode)
}

func (u *authUsecase) rejectOTP(ctx context.Context, accountID int64, outcome, message string) error {
	metrics.OTPVerificationsTotal.WithLabelValues(outcome).Inc()
	u.audit.LogOTPRejected(ctx, accountID, outcome)
	return apperror.BadRequest(message)
}

func (u *authUsecase) ResendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if err := u.validate.Var(email, "required,email"); err != nil {
		return apperror.FieldError("email", "Enter a valid email address.")
	}

	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		return repoError(err, "User not found")
	}
	if account.IsVerified {
		return apperror.BadRequest("User is already verified")
	}

	var code *domain.OneTimeCode
	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		issued, err := u.issueCode(ctx, account)
		code = issued
		return err
	})
	if err != nil {
		return apperror.Internal(err)
	}

	u.dispatch(ctx, account, code)
	return nil
}

func (u *authUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.Session, error) {
	in.Identifier = strings.TrimSpace(in.Identifier)
	if err := u.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	var (
		account *domain.Account
		err     error
		unknown string
	)
	if strings.Contains(in.Identifier, "@") {
		account, err = u.accounts.GetByEmail(ctx, normalizeEmail(in.Identifier))
		unknown = "Invalid email"
	} else {
		account, err = u.accounts.GetByUsername(ctx, in.Identifier)
		unknown = "Invalid username"
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, loginFailure(unknown)
		}
		return nil, apperror.Internal(err)
	}

	ok, err := password.Compare(account.PasswordHash, in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !ok {
		return nil, loginFailure("Invalid password")
	}
	if !account.IsVerified {
		return nil, loginFailure("User is not verified")
	}
	if !account.IsActive {
		return nil, loginFailure("Account is disabled")
	}

	session, err := u.sessions.Issue(account)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return session, nil
}

func loginFailure(message string) error {
	metrics.LoginAttemptsTotal.WithLabelValues(metrics.ResultFailure).Inc()
	return apperror.Unauthorized(message)
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	claims, err := u.sessions.ParseRefresh(strings.TrimSpace(refreshToken))
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperror.Unauthorized("Invalid or expired refresh token")
	}

	account, err := u.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid or expired refresh token")
		}
		return nil, apperror.Internal(err)
	}
	if !account.IsActive || !account.IsVerified {
		metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, apperror.Unauthorized("Account is not allowed to sign in")
	}

	session, err := u.sessions.Issue(account)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	metrics.TokenRefreshTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return session, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, accessToken string) (*domain.SessionClaims, error) {
	claims, err := u.sessions.ParseAccess(accessToken)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return claims, nil
}

func (u *authUsecase) CurrentAccount(ctx context.Context) (*domain.Account, error) {
	id, _, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	account, err := u.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return account, nil
}

func (u *authUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	username = strings.TrimSpace(username)
	if err := u.validate.Var(username, "required,max=150,valid_username"); err != nil {
		return false, apperror.FieldError("username", "Enter a valid username.")
	}
	taken, err := u.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return taken, nil
}

func (u *authUsecase) PurgeStaleCodes(ctx context.Context, before time.Time) (int64, error) {
	n, err := u.codes.DeleteStale(ctx, before)
	if err != nil {
		return 0, err
	}
	metrics.OTPCodesPurgedTotal.Add(float64(n))
	return n, nil
}
