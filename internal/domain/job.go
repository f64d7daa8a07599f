package domain

import (
	"context"
	"time"

	"jobkit-backend/pkg/civil"
)

type WorkMode string

const (
	WorkModeFullTime WorkMode = "Full-Time"
	WorkModePartTime WorkMode = "Part-Time"
	WorkModeContract WorkMode = "Contract"
	WorkModeRemote   WorkMode = "Remote"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeFullTime, WorkModePartTime, WorkModeContract, WorkModeRemote:
		return true
	}
	return false
}

type JobPosting struct {
	ID                  int64      `json:"id"`
	OwnerID             int64      `json:"company_user_id"`
	CompanyName         string     `json:"company_name,omitempty"`
	Title               string     `json:"job_title" validate:"required,max=100"`
	Description         string     `json:"job_description" validate:"required"`
	Qualifications      string     `json:"qualifications_requirements" validate:"required"`
	Location            string     `json:"location" validate:"required,max=100"`
	ModeOfWork          WorkMode   `json:"mode_of_work" validate:"required,oneof=Full-Time Part-Time Contract Remote"`
	SalaryFrom          float64    `json:"salary_range_from" validate:"gte=0,lt=100000000"`
	SalaryTo            float64    `json:"salary_range_to" validate:"gtefield=SalaryFrom,lt=100000000"`
	ApplicationDeadline civil.Date `json:"application_deadline" validate:"required"`
	ContactDetails      *string    `json:"contact_details" validate:"omitempty,max=50"`
	CategoryID          *int64     `json:"category_id" validate:"omitempty,gt=0"`
	Tags                []string   `json:"tags" validate:"required,min=1,dive,required,max=255"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// JobFilter narrows the public job list. Tags match when a posting carries any of them.
type JobFilter struct {
	Tags       []string
	CategoryID *int64
	ModeOfWork WorkMode
	Query      string
	Page       int
	PageSize   int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize applies the default page and clamps the page size.
func (f *JobFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func (f JobFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type JobRepository interface {
	// Upsert keys on (owner, title) and reports whether a row was inserted.
	Upsert(ctx context.Context, job *JobPosting) (bool, error)
	GetByID(ctx context.Context, id int64) (*JobPosting, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]JobPosting, error)
	Search(ctx context.Context, filter JobFilter) ([]JobPosting, int64, error)
	Update(ctx context.Context, job *JobPosting) error
	Delete(ctx context.Context, id int64) error
	// SetTags replaces the posting's tag links.
	SetTags(ctx context.Context, jobID int64, skillIDs []int64) error
}

type JobUsecase interface {
	SaveJob(ctx context.Context, ownerID int64, job *JobPosting) (*JobPosting, bool, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]JobPosting, error)
	Search(ctx context.Context, filter JobFilter) ([]JobPosting, int64, error)
	GetJob(ctx context.Context, id int64) (*JobPosting, error)
	UpdateJob(ctx context.Context, id int64, job *JobPosting) (*JobPosting, error)
	DeleteJob(ctx context.Context, id int64) error
}
