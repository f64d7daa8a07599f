package domain

import "context"

type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Organization struct {
	ID         int64  `json:"id"`
	Name       string `json:"organization_name"`
	IsVerified bool   `json:"is_verified"`
}

type JobCategory struct {
	ID         int64  `json:"id"`
	Name       string `json:"category_name" validate:"required,max=100"`
	IsVerified bool   `json:"is_verified"`
}

type SkillRepository interface {
	// Upsert stores the name as given and returns the existing row on conflict.
	Upsert(ctx context.Context, name string) (*Skill, error)
	List(ctx context.Context) ([]Skill, error)
}

type OrganizationRepository interface {
	Upsert(ctx context.Context, name string) (*Organization, error)
	ListVerified(ctx context.Context) ([]Organization, error)
}

type JobCategoryRepository interface {
	Create(ctx context.Context, c *JobCategory) error
	GetByID(ctx context.Context, id int64) (*JobCategory, error)
	List(ctx context.Context, verifiedOnly bool) ([]JobCategory, error)
}

type CatalogUsecase interface {
	ListSkills(ctx context.Context) ([]Skill, error)
	ListJobCategories(ctx context.Context) ([]JobCategory, error)
	CreateJobCategory(ctx context.Context, c *JobCategory) error
	GetJobCategory(ctx context.Context, id int64) (*JobCategory, error)
}
