package domain

import (
	"context"
	"time"
)

type Company struct {
	ID           int64     `json:"id"`
	OwnerID      *int64    `json:"company_user_id"`
	Name         string    `json:"company_name" validate:"required,max=255,no_emoji"`
	AddressLine1 string    `json:"address_line1" validate:"max=255"`
	AddressLine2 string    `json:"address_line2" validate:"max=255"`
	Mobile       string    `json:"mobile" validate:"omitempty,max=20,valid_phone"`
	City         string    `json:"city" validate:"max=255"`
	State        string    `json:"state" validate:"max=255"`
	PinCode      string    `json:"pin_code" validate:"omitempty,max=10,numeric"`
	Website      string    `json:"company_website" validate:"omitempty,max=100"`
	ProfileImage *string   `json:"profile_image" validate:"omitempty,max=255"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Department struct {
	ID         int64  `json:"id"`
	Name       string `json:"name" validate:"required,max=100"`
	IsVerified bool   `json:"is_verified"`
}

type Sector struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"company_user_id"`
	Name        string       `json:"sector_name"`
	IsVerified  bool         `json:"is_verified"`
	Departments []Department `json:"departments"`
}

type SectorInput struct {
	Name        string   `json:"sector_name" validate:"required,max=100"`
	Departments []string `json:"departments" validate:"omitempty,dive,required,max=100"`
}

type CompanyEmployee struct {
	ID            int64   `json:"id"`
	OwnerID       int64   `json:"company_user_id"`
	Name          string  `json:"employee_name" validate:"required,max=100"`
	Position      string  `json:"employee_position" validate:"max=100"`
	Phone         string  `json:"employee_phone_number" validate:"omitempty,max=20,valid_phone"`
	Email         string  `json:"employee_email" validate:"omitempty,max=50,email"`
	DepartmentIDs []int64 `json:"employee_department" validate:"omitempty,dive,gt=0"`
}

type CompanyRepository interface {
	GetByOwner(ctx context.Context, ownerID int64) (*Company, error)
	// Upsert keys on the owner and reports whether a row was inserted.
	Upsert(ctx context.Context, c *Company) (bool, error)
	// EnsureByName returns the id of the company with this name, creating an unowned one if needed.
	EnsureByName(ctx context.Context, name string) (int64, error)
	ListVerified(ctx context.Context) ([]Company, error)
	GetVerifiedByID(ctx context.Context, id int64) (*Company, error)
}

type SectorRepository interface {
	Upsert(ctx context.Context, ownerID int64, name string) (*Sector, error)
	LinkDepartments(ctx context.Context, sectorID int64, departmentIDs []int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Sector, error)
	ListDistinctNames(ctx context.Context) ([]string, error)
}

type DepartmentRepository interface {
	Upsert(ctx context.Context, name string) (*Department, error)
	List(ctx context.Context) ([]Department, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Department, error)
	CountExisting(ctx context.Context, ids []int64) (int, error)
}

type CompanyEmployeeRepository interface {
	Create(ctx context.Context, e *CompanyEmployee) error
	ListByOwner(ctx context.Context, ownerID int64) ([]CompanyEmployee, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type CompanyUsecase interface {
	GetProfile(ctx context.Context, ownerID int64) (*Company, error)
	SaveProfile(ctx context.Context, ownerID int64, c *Company) (*Company, bool, error)

	ListVerified(ctx context.Context) ([]Company, error)
	GetVerified(ctx context.Context, id int64) (*Company, error)
	ListOrganizations(ctx context.Context) ([]Organization, error)

	SaveSector(ctx context.Context, ownerID int64, in SectorInput) (*Sector, error)
	ListSectors(ctx context.Context, ownerID int64) ([]Sector, error)
	ListSectorNames(ctx context.Context) ([]string, error)

	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, name string) (*Department, error)
	ListCompanyDepartments(ctx context.Context, ownerID int64) ([]Department, error)

	CreateEmployee(ctx context.Context, ownerID int64, e *CompanyEmployee) (*CompanyEmployee, error)
	ListEmployees(ctx context.Context, ownerID int64) ([]CompanyEmployee, error)
	DeleteEmployee(ctx context.Context, ownerID, id int64) error
}
