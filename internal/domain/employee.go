package domain

import (
	"context"
	"time"

	"jobkit-backend/pkg/civil"
)

type EmployeeProfile struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	FullName      string     `json:"full_name" validate:"required,max=255,valid_name,no_emoji"`
	DOB           civil.Date `json:"dob" validate:"required,not_future"`
	Mobile        string     `json:"mobile" validate:"required,max=20,valid_phone"`
	AddressLine1  string     `json:"address_line1" validate:"required,max=255"`
	AddressLine2  string     `json:"address_line2" validate:"max=255"`
	City          string     `json:"city" validate:"required,max=255"`
	State         string     `json:"state" validate:"required,max=255"`
	PinCode       string     `json:"pin_code" validate:"required,max=10,numeric"`
	ProfileImage  *string    `json:"profile_image" validate:"omitempty,max=255"`
	JobCategoryID *int64     `json:"job_category"`
	Skills        []string   `json:"skills" validate:"omitempty,dive,required,max=255"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Education struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	CourseName        string     `json:"course_name" validate:"required,max=255"`
	CourseDescription string     `json:"course_description" validate:"max=500"`
	OrganizationID    int64      `json:"organization_id"`
	OrganizationName  string     `json:"organization_name" validate:"required,max=255"`
	FromDate          civil.Date `json:"from_date" validate:"required"`
	ToDate            civil.Date `json:"to_date" validate:"required"`
	DocumentPath      *string    `json:"education_document" validate:"omitempty,max=255"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type Experience struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	JobTitle       string     `json:"job_title" validate:"required,max=255"`
	JobDescription string     `json:"job_description" validate:"max=500"`
	CompanyID      int64      `json:"company_id"`
	CompanyName    string     `json:"company_name" validate:"required,max=255"`
	FromDate       civil.Date `json:"from_date" validate:"required"`
	ToDate         civil.Date `json:"to_date" validate:"required"`
	DocumentPath   *string    `json:"experience_document" validate:"omitempty,max=255"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type AddSkillsInput struct {
	Names []string `json:"skills" validate:"required,min=1,dive,required,max=255"`
}

type SetJobCategoryInput struct {
	JobCategoryID int64 `json:"job_category" validate:"required,gt=0"`
}

type EmployeeRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*EmployeeProfile, error)
	// Upsert creates the profile or overwrites the existing one for the same user.
	Upsert(ctx context.Context, profile *EmployeeProfile) error
	Update(ctx context.Context, profile *EmployeeProfile) error
	SetJobCategory(ctx context.Context, userID, categoryID int64) error
	ListSkills(ctx context.Context, userID int64) ([]Skill, error)
	LinkSkills(ctx context.Context, userID int64, skillIDs []int64) error
	UnlinkSkill(ctx context.Context, userID int64, name string) (bool, error)
}

type EducationRepository interface {
	// Upsert keys on (user, organization) and reports whether a row was inserted.
	Upsert(ctx context.Context, e *Education) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Education, error)
	GetByID(ctx context.Context, userID, id int64) (*Education, error)
	Update(ctx context.Context, e *Education) error
	Delete(ctx context.Context, userID, id int64) error
}

type ExperienceRepository interface {
	Create(ctx context.Context, e *Experience) error
	ListByUser(ctx context.Context, userID int64) ([]Experience, error)
	GetByID(ctx context.Context, userID, id int64) (*Experience, error)
	Update(ctx context.Context, e *Experience) error
	Delete(ctx context.Context, userID, id int64) error
}

type EmployeeUsecase interface {
	GetProfile(ctx context.Context, userID int64) (*EmployeeProfile, error)
	SaveProfile(ctx context.Context, userID int64, profile *EmployeeProfile) (*EmployeeProfile, error)
	UpdateProfile(ctx context.Context, userID int64, profile *EmployeeProfile) (*EmployeeProfile, error)
	SetJobCategory(ctx context.Context, userID, categoryID int64) error

	ListSkills(ctx context.Context, userID int64) ([]Skill, error)
	AddSkills(ctx context.Context, userID int64, names []string) ([]Skill, error)
	RemoveSkill(ctx context.Context, userID int64, name string) error

	SaveEducation(ctx context.Context, userID int64, e *Education) (*Education, bool, error)
	ListEducation(ctx context.Context, userID int64) ([]Education, error)
	GetEducation(ctx context.Context, userID, id int64) (*Education, error)
	UpdateEducation(ctx context.Context, userID, id int64, e *Education) (*Education, error)
	DeleteEducation(ctx context.Context, userID, id int64) error

	CreateExperience(ctx context.Context, userID int64, e *Experience) (*Experience, error)
	ListExperience(ctx context.Context, userID int64) ([]Experience, error)
	GetExperience(ctx context.Context, userID, id int64) (*Experience, error)
	UpdateExperience(ctx context.Context, userID, id int64, e *Experience) (*Experience, error)
	DeleteExperience(ctx context.Context, userID, id int64) error
}
