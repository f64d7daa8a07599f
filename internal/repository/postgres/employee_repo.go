package postgres

import (
	"context"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type employeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) domain.EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployeeProfile, error) {
	query := `
		SELECT
			p.id, p.user_id, p.full_name, p.dob, p.mobile,
			p.address_line1, p.address_line2, p.city, p.state, p.pin_code,
			p.profile_image, p.job_category_id, p.created_at, p.updated_at,
			ARRAY(
				SELECT s.name FROM employee_skills es
				JOIN skills s ON s.id = es.skill_id
				WHERE es.user_id = p.user_id ORDER BY s.name
			) AS skills
		FROM employee_profiles p
		WHERE p.user_id = $1`

	var p domain.EmployeeProfile
	var skills []string
	err := conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.FullName, &p.DOB.Time, &p.Mobile,
		&p.AddressLine1, &p.AddressLine2, &p.City, &p.State, &p.PinCode,
		&p.ProfileImage, &p.JobCategoryID, &p.CreatedAt, &p.UpdatedAt,
		pq.Array(&skills),
	)
	if err != nil {
		return nil, mapError(err)
	}
	p.Skills = skills
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

func (r *employeeRepo) Upsert(ctx context.Context, p *domain.EmployeeProfile) error {
	query := `
		INSERT INTO employee_profiles (
			user_id, full_name, dob, mobile, address_line1, address_line2,
			city, state, pin_code, profile_image, job_category_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			dob = EXCLUDED.dob,
			mobile = EXCLUDED.mobile,
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			pin_code = EXCLUDED.pin_code,
			profile_image = EXCLUDED.profile_image,
			job_category_id = COALESCE(EXCLUDED.job_category_id, employee_profiles.job_category_id),
			updated_at = NOW()
		RETURNING id, created_at, updated_at, job_category_id`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		p.UserID, p.FullName, p.DOB.Time, p.Mobile, p.AddressLine1, p.AddressLine2,
		p.City, p.State, p.PinCode, p.ProfileImage, p.JobCategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.JobCategoryID)
	return mapError(err)
}

func (r *employeeRepo) Update(ctx context.Context, p *domain.EmployeeProfile) error {
	query := `
		UPDATE employee_profiles SET
			full_name = $2, dob = $3, mobile = $4, address_line1 = $5, address_line2 = $6,
			city = $7, state = $8, pin_code = $9, profile_image = $10,
			job_category_id = COALESCE($11, job_category_id),
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING id, created_at, updated_at, job_category_id`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		p.UserID, p.FullName, p.DOB.Time, p.Mobile, p.AddressLine1, p.AddressLine2,
		p.City, p.State, p.PinCode, p.ProfileImage, p.JobCategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.JobCategoryID)
	return mapError(err)
}

func (r *employeeRepo) SetJobCategory(ctx context.Context, userID, categoryID int64) error {
	return execAffected(ctx, conn(ctx, r.db),
		`UPDATE employee_profiles SET job_category_id = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, categoryID)
}

func (r *employeeRepo) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	query := `SELECT s.id, s.name FROM employee_skills es
              JOIN skills s ON s.id = es.skill_id
              WHERE es.user_id = $1 ORDER BY s.name`
	rows, err := conn(ctx, r.db).Query(ctx, query, userID)
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

// LinkSkills is idempotent; already linked skills are left alone.
func (r *employeeRepo) LinkSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return nil
	}
	query := `INSERT INTO employee_skills (user_id, skill_id)
              SELECT $1, unnest($2::bigint[])
              ON CONFLICT DO NOTHING`
	_, err := conn(ctx, r.db).Exec(ctx, query, userID, pq.Array(skillIDs))
	return mapError(err)
}

func (r *employeeRepo) UnlinkSkill(ctx context.Context, userID int64, name string) (bool, error) {
	query := `DELETE FROM employee_skills es USING skills s
              WHERE es.skill_id = s.id AND es.user_id = $1 AND s.name = $2`
	tag, err := conn(ctx, r.db).Exec(ctx, query, userID, name)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type educationRepo struct {
	db *pgxpool.Pool
}

func NewEducationRepository(db *pgxpool.Pool) domain.EducationRepository {
	return &educationRepo{db: db}
}

const educationSelect = `
	SELECT
		e.id, e.user_id, e.course_name, e.course_description,
		e.organization_id, o.organization_name, e.from_date, e.to_date,
		e.education_document, e.created_at, e.updated_at
	FROM employee_education e
	JOIN organizations o ON o.id = e.organization_id`

func scanEducation(row interface{ Scan(dest ...any) error }) (*domain.Education, error) {
	var e domain.Education
	err := row.Scan(
		&e.ID, &e.UserID, &e.CourseName, &e.CourseDescription,
		&e.OrganizationID, &e.OrganizationName, &e.FromDate.Time, &e.ToDate.Time,
		&e.DocumentPath, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

// Upsert relies on xmax = 0 to tell an insert from a conflict update.
func (r *educationRepo) Upsert(ctx context.Context, e *domain.Education) (bool, error) {
	query := `
		INSERT INTO employee_education (
			user_id, course_name, course_description, organization_id,
			from_date, to_date, education_document
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET
			course_name = EXCLUDED.course_name,
			course_description = EXCLUDED.course_description,
			from_date = EXCLUDED.from_date,
			to_date = EXCLUDED.to_date,
			education_document = EXCLUDED.education_document,
			updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err := conn(ctx, r.db).QueryRow(ctx, query,
		e.UserID, e.CourseName, e.CourseDescription, e.OrganizationID,
		e.FromDate.Time, e.ToDate.Time, e.DocumentPath,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt, &inserted)
	if err != nil {
		return false, mapError(err)
	}
	return inserted, nil
}

func (r *educationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Education, error) {
	rows, err := conn(ctx, r.db).Query(ctx, educationSelect+` WHERE e.user_id = $1 ORDER BY e.from_date DESC, e.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

func (r *educationRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Education, error) {
	return scanEducation(conn(ctx, r.db).QueryRow(ctx, educationSelect+` WHERE e.user_id = $1 AND e.id = $2`, userID, id))
}

func (r *educationRepo) Update(ctx context.Context, e *domain.Education) error {
	query := `
		UPDATE employee_education SET
			course_name = $3, course_description = $4, organization_id = $5,
			from_date = $6, to_date = $7, education_document = $8, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		e.UserID, e.ID, e.CourseName, e.CourseDescription, e.OrganizationID,
		e.FromDate.Time, e.ToDate.Time, e.DocumentPath,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	return mapError(err)
}

func (r *educationRepo) Delete(ctx context.Context, userID, id int64) error {
	return execAffected(ctx, conn(ctx, r.db), `DELETE FROM employee_education WHERE user_id = $1 AND id = $2`, userID, id)
}

type experienceRepo struct {
	db *pgxpool.Pool
}

func NewExperienceRepository(db *pgxpool.Pool) domain.ExperienceRepository {
	return &experienceRepo{db: db}
}

const experienceSelect = `
	SELECT
		x.id, x.user_id, x.job_title, x.job_description,
		x.company_id, c.company_name, x.from_date, x.to_date,
		x.experience_document, x.created_at, x.updated_at
	FROM employee_experience x
	JOIN companies c ON c.id = x.company_id`

func scanExperience(row interface{ Scan(dest ...any) error }) (*domain.Experience, error) {
	var x domain.Experience
	err := row.Scan(
		&x.ID, &x.UserID, &x.JobTitle, &x.JobDescription,
		&x.CompanyID, &x.CompanyName, &x.FromDate.Time, &x.ToDate.Time,
		&x.DocumentPath, &x.CreatedAt, &x.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &x, nil
}

func (r *experienceRepo) Create(ctx context.Context, x *domain.Experience) error {
	query := `
		INSERT INTO employee_experience (
			user_id, job_title, job_description, company_id, from_date, to_date, experience_document
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		x.UserID, x.JobTitle, x.JobDescription, x.CompanyID, x.FromDate.Time, x.ToDate.Time, x.DocumentPath,
	).Scan(&x.ID, &x.CreatedAt, &x.UpdatedAt)
	return mapError(err)
}

func (r *experienceRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Experience, error) {
	rows, err := conn(ctx, r.db).Query(ctx, experienceSelect+` WHERE x.user_id = $1 ORDER BY x.from_date DESC, x.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.Experience{}
	for rows.Next() {
		x, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *x)
	}
	return items, rows.Err()
}

func (r *experienceRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Experience, error) {
	return scanExperience(conn(ctx, r.db).QueryRow(ctx, experienceSelect+` WHERE x.user_id = $1 AND x.id = $2`, userID, id))
}

func (r *experienceRepo) Update(ctx context.Context, x *domain.Experience) error {
	query := `
		UPDATE employee_experience SET
			job_title = $3, job_description = $4, company_id = $5,
			from_date = $6, to_date = $7, experience_document = $8, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING created_at, updated_at`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		x.UserID, x.ID, x.JobTitle, x.JobDescription, x.CompanyID,
		x.FromDate.Time, x.ToDate.Time, x.DocumentPath,
	).Scan(&x.CreatedAt, &x.UpdatedAt)
	return mapError(err)
}

func (r *experienceRepo) Delete(ctx context.Context, userID, id int64) error {
	return execAffected(ctx, conn(ctx, r.db), `DELETE FROM employee_experience WHERE user_id = $1 AND id = $2`, userID, id)
}
