package usecase

import (
	"context"
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type catalogUsecase struct {
	skills     domain.SkillRepository
	categories domain.JobCategoryRepository
	validate   *validator.Validate
}

func NewCatalogUsecase(skills domain.SkillRepository, categories domain.JobCategoryRepository, validate *validator.Validate) domain.CatalogUsecase {
	return &catalogUsecase{skills: skills, categories: categories, validate: validate}
}

func (u *catalogUsecase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	skills, err := u.skills.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return skills, nil
}

// ListJobCategories hides unverified categories from everyone but admins.
func (u *catalogUsecase) ListJobCategories(ctx context.Context) ([]domain.JobCategory, error) {
	_, role, ok := domain.PrincipalFromContext(ctx)
	verifiedOnly := !ok || role != domain.RoleAdmin

	categories, err := u.categories.List(ctx, verifiedOnly)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (u *catalogUsecase) CreateJobCategory(ctx context.Context, c *domain.JobCategory) error {
	_, role, err := principal(ctx)
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin {
		return apperror.Forbidden("Only admins can create job categories")
	}

	c.Name = strings.TrimSpace(c.Name)
	if err := u.validate.Struct(c); err != nil {
		return validationError(err)
	}
	c.IsVerified = true

	return repoError(u.categories.Create(ctx, c), "Job category not found")
}

func (u *catalogUsecase) GetJobCategory(ctx context.Context, id int64) (*domain.JobCategory, error) {
	c, err := u.categories.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job category not found")
	}
	return c, nil
}
