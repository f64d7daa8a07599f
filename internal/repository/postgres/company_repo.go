package postgres

import (
	"context"

	"jobkit-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type companyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, company_user_id, company_name, address_line1, address_line2, mobile,
	city, state, pin_code, company_website, profile_image, is_verified, created_at, updated_at`

func scanCompany(row interface{ Scan(dest ...any) error }) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.AddressLine1, &c.AddressLine2, &c.Mobile,
		&c.City, &c.State, &c.PinCode, &c.Website, &c.ProfileImage, &c.IsVerified,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *companyRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.Company, error) {
	return scanCompany(conn(ctx, r.db).QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE company_user_id = $1`, ownerID))
}

func (r *companyRepo) Upsert(ctx context.Context, c *domain.Company) (bool, error) {
	query := `
		INSERT INTO companies (
			company_user_id, company_name, address_line1, address_line2, mobile,
			city, state, pin_code, company_website, profile_image
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (company_user_id) WHERE company_user_id IS NOT NULL DO UPDATE SET
			company_name = EXCLUDED.company_name,
			address_line1 = EXCLUDED.address_line1,
			address_line2 = EXCLUDED.address_line2,
			mobile = EXCLUDED.mobile,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			pin_code = EXCLUDED.pin_code,
			company_website = EXCLUDED.company_website,
			profile_image = EXCLUDED.profile_image,
			updated_at = NOW()
		RETURNING id, is_verified, created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err := conn(ctx, r.db).QueryRow(ctx, query,
		c.OwnerID, c.Name, c.AddressLine1, c.AddressLine2, c.Mobile,
		c.City, c.State, c.PinCode, c.Website, c.ProfileImage,
	).Scan(&c.ID, &c.IsVerified, &c.CreatedAt, &c.UpdatedAt, &inserted)
	if err != nil {
		return false, mapError(err)
	}
	return inserted, nil
}

func (r *companyRepo) EnsureByName(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO companies (company_name) VALUES ($1)
              ON CONFLICT (company_name) DO UPDATE SET company_name = EXCLUDED.company_name
              RETURNING id`
	var id int64
	err := conn(ctx, r.db).QueryRow(ctx, query, name).Scan(&id)
	return id, mapError(err)
}

func (r *companyRepo) ListVerified(ctx context.Context) ([]domain.Company, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE is_verified = TRUE ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func (r *companyRepo) GetVerifiedByID(ctx context.Context, id int64) (*domain.Company, error) {
	return scanCompany(conn(ctx, r.db).QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 AND is_verified = TRUE`, id))
}

type sectorRepo struct {
	db *pgxpool.Pool
}

func NewSectorRepository(db *pgxpool.Pool) domain.SectorRepository {
	return &sectorRepo{db: db}
}

func (r *sectorRepo) Upsert(ctx context.Context, ownerID int64, name string) (*domain.Sector, error) {
	query := `INSERT INTO company_sectors (company_user_id, sector_name) VALUES ($1, $2)
              ON CONFLICT (company_user_id, sector_name) DO UPDATE SET sector_name = EXCLUDED.sector_name
              RETURNING id, company_user_id, sector_name, is_verified`
	s := domain.Sector{Departments: []domain.Department{}}
	err := conn(ctx, r.db).QueryRow(ctx, query, ownerID, name).Scan(&s.ID, &s.OwnerID, &s.Name, &s.IsVerified)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *sectorRepo) LinkDepartments(ctx context.Context, sectorID int64, departmentIDs []int64) error {
	if len(departmentIDs) == 0 {
		return nil
	}
	query := `INSERT INTO company_sector_departments (sector_id, department_id)
              SELECT $1, unnest($2::bigint[])
              ON CONFLICT DO NOTHING`
	_, err := conn(ctx, r.db).Exec(ctx, query, sectorID, pq.Array(departmentIDs))
	return mapError(err)
}

// ListByOwner returns sectors in name order, each with its linked departments.
func (r *sectorRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Sector, error) {
	query := `
		SELECT s.id, s.company_user_id, s.sector_name, s.is_verified, d.id, d.name, d.is_verified
		FROM company_sectors s
		LEFT JOIN company_sector_departments sd ON sd.sector_id = s.id
		LEFT JOIN departments d ON d.id = sd.department_id
		WHERE s.company_user_id = $1
		ORDER BY s.sector_name, s.id, d.name`

	rows, err := conn(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sectors := []domain.Sector{}
	for rows.Next() {
		var s domain.Sector
		var deptID *int64
		var deptName *string
		var deptVerified *bool
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.Name, &s.IsVerified, &deptID, &deptName, &deptVerified); err != nil {
			return nil, err
		}
		if n := len(sectors); n == 0 || sectors[n-1].ID != s.ID {
			s.Departments = []domain.Department{}
			sectors = append(sectors, s)
		}
		if deptID != nil {
			last := &sectors[len(sectors)-1]
			last.Departments = append(last.Departments, domain.Department{
				ID: *deptID, Name: *deptName, IsVerified: *deptVerified,
			})
		}
	}
	return sectors, rows.Err()
}

func (r *sectorRepo) ListDistinctNames(ctx context.Context) ([]string, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT DISTINCT sector_name FROM company_sectors ORDER BY sector_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

type departmentRepo struct {
	db *pgxpool.Pool
}

func NewDepartmentRepository(db *pgxpool.Pool) domain.DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Upsert(ctx context.Context, name string) (*domain.Department, error) {
	query := `INSERT INTO departments (name) VALUES ($1)
              ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
              RETURNING id, name, is_verified`
	var d domain.Department
	if err := conn(ctx, r.db).QueryRow(ctx, query, name).Scan(&d.ID, &d.Name, &d.IsVerified); err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *departmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	return r.list(ctx, `SELECT id, name, is_verified FROM departments ORDER BY name`)
}

func (r *departmentRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Department, error) {
	query := `
		SELECT DISTINCT d.id, d.name, d.is_verified
		FROM company_sectors s
		JOIN company_sector_departments sd ON sd.sector_id = s.id
		JOIN departments d ON d.id = sd.department_id
		WHERE s.company_user_id = $1
		ORDER BY d.name`
	return r.list(ctx, query, ownerID)
}

func (r *departmentRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM departments WHERE id = ANY($1::bigint[])`, pq.Array(ids)).Scan(&n)
	return n, err
}

func (r *departmentRepo) list(ctx context.Context, query string, args ...any) ([]domain.Department, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	depts := []domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.IsVerified); err != nil {
			return nil, err
		}
		depts = append(depts, d)
	}
	return depts, rows.Err()
}

type companyEmployeeRepo struct {
	db *pgxpool.Pool
}

func NewCompanyEmployeeRepository(db *pgxpool.Pool) domain.CompanyEmployeeRepository {
	return &companyEmployeeRepo{db: db}
}

// Create inserts the employee and its department links. Callers wrap it in a transaction.
func (r *companyEmployeeRepo) Create(ctx context.Context, e *domain.CompanyEmployee) error {
	q := conn(ctx, r.db)
	query := `
		INSERT INTO company_employees (
			company_user_id, employee_name, employee_position, employee_phone_number, employee_email
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := q.QueryRow(ctx, query, e.OwnerID, e.Name, e.Position, e.Phone, e.Email).Scan(&e.ID); err != nil {
		return mapError(err)
	}
	if len(e.DepartmentIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO company_employee_departments (employee_id, department_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, e.ID, pq.Array(e.DepartmentIDs))
	return mapError(err)
}

func (r *companyEmployeeRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CompanyEmployee, error) {
	query := `
		SELECT
			e.id, e.company_user_id, e.employee_name, e.employee_position,
			e.employee_phone_number, e.employee_email,
			ARRAY(
				SELECT ed.department_id FROM company_employee_departments ed
				WHERE ed.employee_id = e.id ORDER BY ed.department_id
			) AS departments
		FROM company_employees e
		WHERE e.company_user_id = $1
		ORDER BY e.id`

	rows, err := conn(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []domain.CompanyEmployee{}
	for rows.Next() {
		var e domain.CompanyEmployee
		var depts []int64
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Position, &e.Phone, &e.Email, pq.Array(&depts)); err != nil {
			return nil, err
		}
		e.DepartmentIDs = depts
		if e.DepartmentIDs == nil {
			e.DepartmentIDs = []int64{}
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *companyEmployeeRepo) Delete(ctx context.Context, ownerID, id int64) error {
	return execAffected(ctx, conn(ctx, r.db), `DELETE FROM company_employees WHERE company_user_id = $1 AND id = $2`, ownerID, id)
}
