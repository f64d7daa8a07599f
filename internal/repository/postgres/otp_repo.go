package postgres

import (
	"context"
	"time"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type otpRepo struct {
	db *pgxpool.Pool
}

func NewOneTimeCodeRepository(db *pgxpool.Pool) domain.OneTimeCodeRepository {
	return &otpRepo{db: db}
}

const otpColumns = `id, account_id, code, created_at, expires_at, consumed_at`

func scanOTP(row interface{ Scan(dest ...any) error }) (*domain.OneTimeCode, error) {
	var c domain.OneTimeCode
	if err := row.Scan(&c.ID, &c.AccountID, &c.Code, &c.CreatedAt, &c.ExpiresAt, &c.ConsumedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *otpRepo) Create(ctx context.Context, c *domain.OneTimeCode) error {
	query := `INSERT INTO one_time_codes (account_id, code, created_at, expires_at)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := conn(ctx, r.db).QueryRow(ctx, query, c.AccountID, c.Code, c.CreatedAt, c.ExpiresAt).Scan(&c.ID)
	return mapError(err)
}

func (r *otpRepo) FindLatestByCode(ctx context.Context, code string) (*domain.OneTimeCode, error) {
	query := `SELECT ` + otpColumns + ` FROM one_time_codes
              WHERE code = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	return scanOTP(conn(ctx, r.db).QueryRow(ctx, query, code))
}

func (r *otpRepo) FindLatestForAccount(ctx context.Context, accountID int64, code string) (*domain.OneTimeCode, error) {
	query := `SELECT ` + otpColumns + ` FROM one_time_codes
              WHERE account_id = $1 AND code = $2 ORDER BY created_at DESC, id DESC LIMIT 1`
	return scanOTP(conn(ctx, r.db).QueryRow(ctx, query, accountID, code))
}

func (r *otpRepo) ExistsLive(ctx context.Context, code string, now time.Time) (bool, error) {
	query := `SELECT EXISTS (
                SELECT 1 FROM one_time_codes
                WHERE code = $1 AND consumed_at IS NULL AND expires_at > $2)`
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, query, code, now).Scan(&exists)
	return exists, err
}

func (r *otpRepo) MarkConsumed(ctx context.Context, id int64, at time.Time) error {
	return execAffected(ctx, conn(ctx, r.db),
		`UPDATE one_time_codes SET consumed_at = $2 WHERE id = $1`, id, at)
}

func (r *otpRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM one_time_codes
              WHERE expires_at < $1 OR (consumed_at IS NOT NULL AND consumed_at < $1)`
	tag, err := conn(ctx, r.db).Exec(ctx, query, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
