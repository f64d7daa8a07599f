package postgres

import (
	"context"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

// Upsert is a single statement so concurrent callers converge on one row.
// The no-op DO UPDATE makes RETURNING yield the existing row.
func (r *skillRepo) Upsert(ctx context.Context, name string) (*domain.Skill, error) {
	query := `INSERT INTO skills (name) VALUES ($1)
              ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
              RETURNING id, name`
	var s domain.Skill
	if err := conn(ctx, r.db).QueryRow(ctx, query, name).Scan(&s.ID, &s.Name); err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *skillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT id, name FROM skills ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []domain.Skill{}
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

type organizationRepo struct {
	db *pgxpool.Pool
}

func NewOrganizationRepository(db *pgxpool.Pool) domain.OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Upsert(ctx context.Context, name string) (*domain.Organization, error) {
	query := `INSERT INTO organizations (organization_name) VALUES ($1)
              ON CONFLICT (organization_name) DO UPDATE SET organization_name = EXCLUDED.organization_name
              RETURNING id, organization_name, is_verified`
	var o domain.Organization
	if err := conn(ctx, r.db).QueryRow(ctx, query, name).Scan(&o.ID, &o.Name, &o.IsVerified); err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

func (r *organizationRepo) ListVerified(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, organization_name, is_verified FROM organizations
              WHERE is_verified = TRUE ORDER BY organization_name`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.IsVerified); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

type jobCategoryRepo struct {
	db *pgxpool.Pool
}

func NewJobCategoryRepository(db *pgxpool.Pool) domain.JobCategoryRepository {
	return &jobCategoryRepo{db: db}
}

func (r *jobCategoryRepo) Create(ctx context.Context, c *domain.JobCategory) error {
	query := `INSERT INTO job_categories (category_name, is_verified) VALUES ($1, $2) RETURNING id`
	return mapError(conn(ctx, r.db).QueryRow(ctx, query, c.Name, c.IsVerified).Scan(&c.ID))
}

func (r *jobCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.JobCategory, error) {
	query := `SELECT id, category_name, is_verified FROM job_categories WHERE id = $1`
	var c domain.JobCategory
	if err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.IsVerified); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *jobCategoryRepo) List(ctx context.Context, verifiedOnly bool) ([]domain.JobCategory, error) {
	query := `SELECT id, category_name, is_verified FROM job_categories
              WHERE ($1::boolean = FALSE OR is_verified = TRUE) ORDER BY category_name`
	rows, err := conn(ctx, r.db).Query(ctx, query, verifiedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.JobCategory{}
	for rows.Next() {
		var c domain.JobCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.IsVerified); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
