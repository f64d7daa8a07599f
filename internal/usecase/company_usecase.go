package usecase

import (
	"context"
	"errors"
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type companyUsecase struct {
	companies   domain.CompanyRepository
	sectors     domain.SectorRepository
	departments domain.DepartmentRepository
	employees   domain.CompanyEmployeeRepository
	orgs        domain.OrganizationRepository
	tx          domain.Transactor
	validate    *validator.Validate
}

func NewCompanyUsecase(
	companies domain.CompanyRepository,
	sectors domain.SectorRepository,
	departments domain.DepartmentRepository,
	employees domain.CompanyEmployeeRepository,
	orgs domain.OrganizationRepository,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.CompanyUsecase {
	return &companyUsecase{
		companies:   companies,
		sectors:     sectors,
		departments: departments,
		employees:   employees,
		orgs:        orgs,
		tx:          tx,
		validate:    validate,
	}
}

func (u *companyUsecase) authorize(ctx context.Context, ownerID int64) error {
	return authorizeOwner(ctx, ownerID, domain.RoleCompany)
}

func (u *companyUsecase) GetProfile(ctx context.Context, ownerID int64) (*domain.Company, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}
	c, err := u.companies.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, repoError(err, "Company profile not found")
	}
	return c, nil
}

func (u *companyUsecase) SaveProfile(ctx context.Context, ownerID int64, c *domain.Company) (*domain.Company, bool, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, false, err
	}

	c.OwnerID = &ownerID
	c.Name = strings.TrimSpace(c.Name)
	if err := u.validate.Struct(c); err != nil {
		return nil, false, validationError(err)
	}

	created, err := u.companies.Upsert(ctx, c)
	if err != nil {
		var dup *domain.DuplicateError
		if errors.As(err, &dup) {
			return nil, false, apperror.FieldError("company_name", "A company with this name already exists.")
		}
		return nil, false, apperror.Internal(err)
	}
	return c, created, nil
}

func (u *companyUsecase) ListVerified(ctx context.Context) ([]domain.Company, error) {
	companies, err := u.companies.ListVerified(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return companies, nil
}

func (u *companyUsecase) GetVerified(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := u.companies.GetVerifiedByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Company not found")
	}
	return c, nil
}

func (u *companyUsecase) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := u.orgs.ListVerified(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return orgs, nil
}

func (u *companyUsecase) SaveSector(ctx context.Context, ownerID int64, in domain.SectorInput) (*domain.Sector, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := u.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	names := cleanNames(in.Departments, nil)

	var sectorID int64
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		sector, err := u.sectors.Upsert(ctx, ownerID, in.Name)
		if err != nil {
			return err
		}
		sectorID = sector.ID

		ids := make([]int64, 0, len(names))
		for _, name := range names {
			d, err := u.departments.Upsert(ctx, name)
			if err != nil {
				return err
			}
			ids = append(ids, d.ID)
		}
		return u.sectors.LinkDepartments(ctx, sector.ID, ids)
	})
	if err != nil {
		return nil, repoError(err, "Sector not found")
	}

	sectors, err := u.sectors.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range sectors {
		if sectors[i].ID == sectorID {
			return &sectors[i], nil
		}
	}
	return nil, apperror.NotFound("Sector not found")
}

func (u *companyUsecase) ListSectors(ctx context.Context, ownerID int64) ([]domain.Sector, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}
	sectors, err := u.sectors.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return sectors, nil
}

func (u *companyUsecase) ListSectorNames(ctx context.Context) ([]string, error) {
	names, err := u.sectors.ListDistinctNames(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return names, nil
}

func (u *companyUsecase) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := u.departments.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return depts, nil
}

func (u *companyUsecase) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	_, role, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if role != domain.RoleCompany && role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Only companies can create departments")
	}

	name = strings.TrimSpace(name)
	if err := u.validate.Var(name, "required,max=100"); err != nil {
		return nil, apperror.FieldError("name", "Department name is required and must be at most 100 characters.")
	}

	d, err := u.departments.Upsert(ctx, name)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return d, nil
}

func (u *companyUsecase) ListCompanyDepartments(ctx context.Context, ownerID int64) ([]domain.Department, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}
	depts, err := u.departments.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return depts, nil
}

func (u *companyUsecase) CreateEmployee(ctx context.Context, ownerID int64, e *domain.CompanyEmployee) (*domain.CompanyEmployee, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}

	e.OwnerID = ownerID
	e.Name = strings.TrimSpace(e.Name)
	if err := u.validate.Struct(e); err != nil {
		return nil, validationError(err)
	}
	e.DepartmentIDs = uniqueIDs(e.DepartmentIDs)

	if len(e.DepartmentIDs) > 0 {
		n, err := u.departments.CountExisting(ctx, e.DepartmentIDs)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if n != len(e.DepartmentIDs) {
			return nil, apperror.FieldError("employee_department", "One or more departments do not exist.")
		}
	}

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.employees.Create(ctx, e)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return e, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (u *companyUsecase) ListEmployees(ctx context.Context, ownerID int64) ([]domain.CompanyEmployee, error) {
	if err := u.authorize(ctx, ownerID); err != nil {
		return nil, err
	}
	employees, err := u.employees.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return employees, nil
}

func (u *companyUsecase) DeleteEmployee(ctx context.Context, ownerID, id int64) error {
	if err := u.authorize(ctx, ownerID); err != nil {
		return err
	}
	return repoError(u.employees.Delete(ctx, ownerID, id), "Employee not found")
}
