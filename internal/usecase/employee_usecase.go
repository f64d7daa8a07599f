package usecase

import (
	"context"
	"errors"
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"
	"jobkit-backend/pkg/civil"

	"github.com/go-playground/validator/v10"
)

type employeeUsecase struct {
	profiles   domain.EmployeeRepository
	education  domain.EducationRepository
	experience domain.ExperienceRepository
	skills     domain.SkillRepository
	orgs       domain.OrganizationRepository
	companies  domain.CompanyRepository
	categories domain.JobCategoryRepository
	tx         domain.Transactor
	validate   *validator.Validate
}

func NewEmployeeUsecase(
	profiles domain.EmployeeRepository,
	education domain.EducationRepository,
	experience domain.ExperienceRepository,
	skills domain.SkillRepository,
	orgs domain.OrganizationRepository,
	companies domain.CompanyRepository,
	categories domain.JobCategoryRepository,
	tx domain.Transactor,
	validate *validator.Validate,
) domain.EmployeeUsecase {
	return &employeeUsecase{
		profiles:   profiles,
		education:  education,
		experience: experience,
		skills:     skills,
		orgs:       orgs,
		companies:  companies,
		categories: categories,
		tx:         tx,
		validate:   validate,
	}
}

func (u *employeeUsecase) authorize(ctx context.Context, userID int64) error {
	return authorizeOwner(ctx, userID, domain.RoleEmployee)
}

func (u *employeeUsecase) GetProfile(ctx context.Context, userID int64) (*domain.EmployeeProfile, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Employee profile not found")
	}
	return profile, nil
}

func (u *employeeUsecase) SaveProfile(ctx context.Context, userID int64, p *domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	return u.writeProfile(ctx, userID, p, u.profiles.Upsert)
}

func (u *employeeUsecase) UpdateProfile(ctx context.Context, userID int64, p *domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	return u.writeProfile(ctx, userID, p, u.profiles.Update)
}

func (u *employeeUsecase) writeProfile(
	ctx context.Context,
	userID int64,
	p *domain.EmployeeProfile,
	write func(context.Context, *domain.EmployeeProfile) error,
) (*domain.EmployeeProfile, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}

	p.UserID = userID
	p.FullName = strings.TrimSpace(p.FullName)
	if err := u.validate.Struct(p); err != nil {
		return nil, validationError(err)
	}
	if p.JobCategoryID != nil {
		if err := u.requireCategory(ctx, *p.JobCategoryID, "job_category"); err != nil {
			return nil, err
		}
	}
	names := cleanNames(p.Skills, capitalize)

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := write(ctx, p); err != nil {
			return err
		}
		return u.linkSkills(ctx, userID, names)
	})
	if err != nil {
		return nil, repoError(err, "Employee profile not found")
	}

	profile, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Employee profile not found")
	}
	return profile, nil
}

func (u *employeeUsecase) requireCategory(ctx context.Context, id int64, field string) error {
	if _, err := u.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.FieldError(field, "Job category does not exist.")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *employeeUsecase) SetJobCategory(ctx context.Context, userID, categoryID int64) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	if categoryID <= 0 {
		return apperror.FieldError("job_category", "This field is required.")
	}
	if err := u.requireCategory(ctx, categoryID, "job_category"); err != nil {
		return err
	}
	return repoError(u.profiles.SetJobCategory(ctx, userID, categoryID), "Employee profile not found")
}

func (u *employeeUsecase) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	skills, err := u.profiles.ListSkills(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return skills, nil
}

func (u *employeeUsecase) AddSkills(ctx context.Context, userID int64, names []string) ([]domain.Skill, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	cleaned := cleanNames(names, capitalize)
	if len(cleaned) == 0 {
		return nil, apperror.FieldError("skills", "Provide at least one skill.")
	}
	if err := u.validate.Var(cleaned, "dive,max=255"); err != nil {
		return nil, apperror.FieldError("skills", "Skill names must be at most 255 characters.")
	}

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		return u.linkSkills(ctx, userID, cleaned)
	})
	if err != nil {
		return nil, repoError(err, "Skill not found")
	}
	return u.ListSkills(ctx, userID)
}

// linkSkills get-or-creates each skill and links it to the user.
func (u *employeeUsecase) linkSkills(ctx context.Context, userID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	ids, err := upsertSkills(ctx, u.skills, names)
	if err != nil {
		return err
	}
	return u.profiles.LinkSkills(ctx, userID, ids)
}

func upsertSkills(ctx context.Context, repo domain.SkillRepository, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		skill, err := repo.Upsert(ctx, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, skill.ID)
	}
	return ids, nil
}

func (u *employeeUsecase) RemoveSkill(ctx context.Context, userID int64, name string) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	removed, err := u.profiles.UnlinkSkill(ctx, userID, capitalize(strings.TrimSpace(name)))
	if err != nil {
		return apperror.Internal(err)
	}
	if !removed {
		return apperror.NotFound("Skill not found for this employee")
	}
	return nil
}

// checkDates reports a to_date before from_date as a field error.
func checkDates(from, to civil.Date) error {
	if to.Before(from) {
		return apperror.FieldError("to_date", "End date must be on or after the start date.")
	}
	return nil
}

func (u *employeeUsecase) prepareEducation(ctx context.Context, userID int64, e *domain.Education) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	e.UserID = userID
	e.OrganizationName = strings.TrimSpace(e.OrganizationName)
	e.CourseName = strings.TrimSpace(e.CourseName)
	if err := u.validate.Struct(e); err != nil {
		return validationError(err)
	}
	return checkDates(e.FromDate, e.ToDate)
}

func (u *employeeUsecase) SaveEducation(ctx context.Context, userID int64, e *domain.Education) (*domain.Education, bool, error) {
	if err := u.prepareEducation(ctx, userID, e); err != nil {
		return nil, false, err
	}

	var created bool
	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		org, err := u.orgs.Upsert(ctx, e.OrganizationName)
		if err != nil {
			return err
		}
		e.OrganizationID = org.ID
		created, err = u.education.Upsert(ctx, e)
		return err
	})
	if err != nil {
		return nil, false, repoError(err, "Education not found")
	}
	return e, created, nil
}

func (u *employeeUsecase) ListEducation(ctx context.Context, userID int64) ([]domain.Education, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	items, err := u.education.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *employeeUsecase) GetEducation(ctx context.Context, userID, id int64) (*domain.Education, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	e, err := u.education.GetByID(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, "Education not found")
	}
	return e, nil
}

func (u *employeeUsecase) UpdateEducation(ctx context.Context, userID, id int64, e *domain.Education) (*domain.Education, error) {
	if err := u.prepareEducation(ctx, userID, e); err != nil {
		return nil, err
	}
	e.ID = id

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		org, err := u.orgs.Upsert(ctx, e.OrganizationName)
		if err != nil {
			return err
		}
		e.OrganizationID = org.ID
		return u.education.Update(ctx, e)
	})
	if err != nil {
		return nil, repoError(err, "Education not found")
	}
	return e, nil
}

func (u *employeeUsecase) DeleteEducation(ctx context.Context, userID, id int64) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	return repoError(u.education.Delete(ctx, userID, id), "Education not found")
}

func (u *employeeUsecase) prepareExperience(ctx context.Context, userID int64, x *domain.Experience) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	x.UserID = userID
	x.CompanyName = strings.TrimSpace(x.CompanyName)
	x.JobTitle = strings.TrimSpace(x.JobTitle)
	if err := u.validate.Struct(x); err != nil {
		return validationError(err)
	}
	return checkDates(x.FromDate, x.ToDate)
}

func (u *employeeUsecase) CreateExperience(ctx context.Context, userID int64, x *domain.Experience) (*domain.Experience, error) {
	if err := u.prepareExperience(ctx, userID, x); err != nil {
		return nil, err
	}

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		companyID, err := u.companies.EnsureByName(ctx, x.CompanyName)
		if err != nil {
			return err
		}
		x.CompanyID = companyID
		return u.experience.Create(ctx, x)
	})
	if err != nil {
		return nil, repoError(err, "Experience not found")
	}
	return x, nil
}

func (u *employeeUsecase) ListExperience(ctx context.Context, userID int64) ([]domain.Experience, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	items, err := u.experience.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *employeeUsecase) GetExperience(ctx context.Context, userID, id int64) (*domain.Experience, error) {
	if err := u.authorize(ctx, userID); err != nil {
		return nil, err
	}
	x, err := u.experience.GetByID(ctx, userID, id)
	if err != nil {
		return nil, repoError(err, "Experience not found")
	}
	return x, nil
}

func (u *employeeUsecase) UpdateExperience(ctx context.Context, userID, id int64, x *domain.Experience) (*domain.Experience, error) {
	if err := u.prepareExperience(ctx, userID, x); err != nil {
		return nil, err
	}
	x.ID = id

	err := u.tx.WithinTx(ctx, func(ctx context.Context) error {
		companyID, err := u.companies.EnsureByName(ctx, x.CompanyName)
		if err != nil {
			return err
		}
		x.CompanyID = companyID
		return u.experience.Update(ctx, x)
	})
	if err != nil {
		return nil, repoError(err, "Experience not found")
	}
	return x, nil
}

func (u *employeeUsecase) DeleteExperience(ctx context.Context, userID, id int64) error {
	if err := u.authorize(ctx, userID); err != nil {
		return err
	}
	return repoError(u.experience.Delete(ctx, userID, id), "Experience not found")
}
