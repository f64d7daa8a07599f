package usecase

import (
	"context"
	"errors"
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobs       domain.JobRepository
	skills     domain.SkillRepository
	categories domain.JobCategoryRepository
	tx         domain.Transactor
	validate   *validator.Validate
}

func NewJobUsecase(
	jobs domain.JobRepository,
	skills domain.SkillRepository,
	categories domain.JobCategoryRepository,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobs:       jobs,
		skills:     skills,
		categories: categories,
		tx:         tx,
		validate:   validate,
	}
}

// prepare normalizes and validates a posting before it is written.
func (u *jobUsecase) prepare(ctx context.Context, j *domain.JobPosting) error {
	j.Title = strings.TrimSpace(j.Title)
	j.Tags = cleanNames(j.Tags, capitalize)
	if err := u.validate.Struct(j); err != nil {
		return validationError(err)
	}
	if j.CategoryID != nil {
		if _, err := u.categories.GetByID(ctx, *j.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apperror.FieldError("category_id", "Job category does not exist.")
			}
			return apperror.Internal(err)
		}
	}
	return nil
}

func (u *jobUsecase) SaveJob(ctx context.Context, ownerID int64, j *domain.JobPosting) (*domain.JobPosting, bool, error) {
	if err := authorizeOwner(ctx, ownerID, domain.RoleCompany); err != nil {
		return nil, false, err
	}
	j.OwnerID = ownerID
	if err := u.prepare(ctx, j); err != nil {
		return nil, false, err
	}

	var created bool
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = u.jobs.Upsert(ctx, j)
		if err != nil {
			return err
		}
		return u.setTags(ctx, j)
	})
	if err != nil {
		return nil, false, repoError(err, "Job not found")
	}

	saved, err := u.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return nil, false, repoError(err, "Job not found")
	}
	return saved, created, nil
}

func (u *jobUsecase) setTags(ctx context.Context, j *domain.JobPosting) error {
	ids, err := upsertSkills(ctx, u.skills, j.Tags)
	if err != nil {
		return err
	}
	return u.jobs.SetTags(ctx, j.ID, ids)
}

func (u *jobUsecase) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JobPosting, error) {
	if err := authorizeOwner(ctx, ownerID, domain.RoleCompany); err != nil {
		return nil, err
	}
	jobs, err := u.jobs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) Search(ctx context.Context, f domain.JobFilter) ([]domain.JobPosting, int64, error) {
	f.Normalize()
	if f.ModeOfWork != "" && !f.ModeOfWork.Valid() {
		return nil, 0, apperror.FieldError("mode_of_work", "Select a valid choice.")
	}
	f.Tags = cleanNames(f.Tags, nil)

	jobs, total, err := u.jobs.Search(ctx, f)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobPosting, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return j, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, j *domain.JobPosting) (*domain.JobPosting, error) {
	existing, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ctx, existing.OwnerID, domain.RoleCompany); err != nil {
		return nil, err
	}

	j.ID = id
	j.OwnerID = existing.OwnerID
	if err := u.prepare(ctx, j); err != nil {
		return nil, err
	}

	err = u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := u.jobs.Update(ctx, j); err != nil {
			return err
		}
		return u.setTags(ctx, j)
	})
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	return u.GetJob(ctx, id)
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	existing, err := u.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, existing.OwnerID, domain.RoleCompany); err != nil {
		return err
	}
	return repoError(u.jobs.Delete(ctx, id), "Job not found")
}
