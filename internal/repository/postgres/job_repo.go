package postgres

import (
	"context"
	"fmt"
	"strings"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
	SELECT
		j.id, j.company_user_id, COALESCE(c.company_name, ''), j.job_title, j.job_description,
		j.qualifications_requirements, j.location, j.mode_of_work,
		j.salary_range_from, j.salary_range_to, j.application_deadline,
		j.contact_details, j.category_id, j.created_at, j.updated_at,
		ARRAY(
			SELECT s.name FROM job_posting_tags t
			JOIN skills s ON s.id = t.skill_id
			WHERE t.job_id = j.id ORDER BY s.name
		) AS tags
	FROM job_postings j
	LEFT JOIN companies c ON c.company_user_id = j.company_user_id`

func scanJob(row interface{ Scan(dest ...any) error }) (*domain.JobPosting, error) {
	var j domain.JobPosting
	var tags []string
	err := row.Scan(
		&j.ID, &j.OwnerID, &j.CompanyName, &j.Title, &j.Description,
		&j.Qualifications, &j.Location, &j.ModeOfWork,
		&j.SalaryFrom, &j.SalaryTo, &j.ApplicationDeadline.Time,
		&j.ContactDetails, &j.CategoryID, &j.CreatedAt, &j.UpdatedAt,
		pq.Array(&tags),
	)
	if err != nil {
		return nil, mapError(err)
	}
	j.Tags = tags
	if j.Tags == nil {
		j.Tags = []string{}
	}
	return &j, nil
}

func (r *jobRepo) Upsert(ctx context.Context, j *domain.JobPosting) (bool, error) {
	query := `
		INSERT INTO job_postings (
			company_user_id, job_title, job_description, qualifications_requirements, location,
			mode_of_work, salary_range_from, salary_range_to, application_deadline,
			contact_details, category_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (company_user_id, job_title) DO UPDATE SET
			job_description = EXCLUDED.job_description,
			qualifications_requirements = EXCLUDED.qualifications_requirements,
			location = EXCLUDED.location,
			mode_of_work = EXCLUDED.mode_of_work,
			salary_range_from = EXCLUDED.salary_range_from,
			salary_range_to = EXCLUDED.salary_range_to,
			application_deadline = EXCLUDED.application_deadline,
			contact_details = EXCLUDED.contact_details,
			category_id = EXCLUDED.category_id,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err := conn(ctx, r.db).QueryRow(ctx, query,
		j.OwnerID, j.Title, j.Description, j.Qualifications, j.Location,
		string(j.ModeOfWork), j.SalaryFrom, j.SalaryTo, j.ApplicationDeadline.Time,
		j.ContactDetails, j.CategoryID,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt, &inserted)
	if err != nil {
		return false, mapError(err)
	}
	return inserted, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	return scanJob(conn(ctx, r.db).QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id))
}

func (r *jobRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JobPosting, error) {
	return r.list(ctx, jobSelect+` WHERE j.company_user_id = $1 ORDER BY j.created_at DESC, j.id DESC`, ownerID)
}

// Search builds the WHERE clause from the filter; tag matching is any-of.
func (r *jobRepo) Search(ctx context.Context, f domain.JobFilter) ([]domain.JobPosting, int64, error) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if len(f.Tags) > 0 {
		add(`EXISTS (
			SELECT 1 FROM job_posting_tags t JOIN skills s ON s.id = t.skill_id
			WHERE t.job_id = j.id AND lower(s.name) = ANY($%d::text[]))`, pq.Array(lowerAll(f.Tags)))
	}
	if f.CategoryID != nil {
		add(`j.category_id = $%d`, *f.CategoryID)
	}
	if f.ModeOfWork != "" {
		add(`j.mode_of_work = $%d`, string(f.ModeOfWork))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		add(`(j.job_title ILIKE $%[1]d OR j.job_description ILIKE $%[1]d)`, "%"+escapeLike(q)+"%")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM job_postings j`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	args = append(args, f.PageSize, f.Offset())
	query := jobSelect + where + fmt.Sprintf(` ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)

	jobs, err := r.list(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, j *domain.JobPosting) error {
	query := `
		UPDATE job_postings SET
			job_title = $2, job_description = $3, qualifications_requirements = $4, location = $5,
			mode_of_work = $6, salary_range_from = $7, salary_range_to = $8,
			application_deadline = $9, contact_details = $10, category_id = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING company_user_id, created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		j.ID, j.Title, j.Description, j.Qualifications, j.Location,
		string(j.ModeOfWork), j.SalaryFrom, j.SalaryTo, j.ApplicationDeadline.Time,
		j.ContactDetails, j.CategoryID,
	).Scan(&j.OwnerID, &j.CreatedAt, &j.UpdatedAt)
	return mapError(err)
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	return execAffected(ctx, conn(ctx, r.db), `DELETE FROM job_postings WHERE id = $1`, id)
}

func (r *jobRepo) SetTags(ctx context.Context, jobID int64, skillIDs []int64) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM job_posting_tags WHERE job_id = $1`, jobID); err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO job_posting_tags (job_id, skill_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, jobID, pq.Array(skillIDs))
	return mapError(err)
}

func (r *jobRepo) list(ctx context.Context, query string, args ...any) ([]domain.JobPosting, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []domain.JobPosting{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
