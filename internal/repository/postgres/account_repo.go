package postgres

import (
	"context"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

const accountColumns = `id, email, username, password_hash, user_type, is_active, is_staff, is_verified, created_at, updated_at`

func scanAccount(row interface{ Scan(dest ...any) error }) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.Role,
		&a.IsActive, &a.IsStaff, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *accountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (email, username, password_hash, user_type, is_active, is_staff, is_verified)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING id, created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		a.Email, a.Username, a.PasswordHash, string(a.Role), a.IsActive, a.IsStaff, a.IsVerified,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(conn(ctx, r.db).QueryRow(ctx, query, id))
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(conn(ctx, r.db).QueryRow(ctx, query, email))
}

func (r *accountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return scanAccount(conn(ctx, r.db).QueryRow(ctx, query, username))
}

func (r *accountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *accountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (r *accountRepo) MarkVerified(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE accounts SET is_verified = TRUE, updated_at = NOW() WHERE id = $1 AND is_verified = FALSE`
	tag, err := conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
