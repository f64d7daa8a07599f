package v1

import (
	"context"
	"time"

	"jobkit-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct{ mock.Mock }

func (m *MockAuthUsecase) Register(ctx context.Context, role domain.Role, in domain.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, role, in)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *MockAuthUsecase) VerifyOTP(ctx context.Context, in domain.VerifyOTPInput) (*domain.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

func (m *MockAuthUsecase) ResendOTP(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthUsecase) Login(ctx context.Context, in domain.LoginInput) (*domain.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

func (m *MockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, refreshToken)
	s, _ := args.Get(0).(*domain.Session)
	return s, args.Error(1)
}

// Authenticate maps fixed test tokens to principals without touching the mock.
func (m *MockAuthUsecase) Authenticate(ctx context.Context, accessToken string) (*domain.SessionClaims, error) {
	switch accessToken {
	case "admin":
		return &domain.SessionClaims{AccountID: 1, Role: domain.RoleAdmin}, nil
	case "company":
		return &domain.SessionClaims{AccountID: 20, Role: domain.RoleCompany}, nil
	case "employee":
		return &domain.SessionClaims{AccountID: 30, Role: domain.RoleEmployee}, nil
	}
	args := m.Called(ctx, accessToken)
	c, _ := args.Get(0).(*domain.SessionClaims)
	return c, args.Error(1)
}

func (m *MockAuthUsecase) CurrentAccount(ctx context.Context) (*domain.Account, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}

func (m *MockAuthUsecase) CheckUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthUsecase) PurgeStaleCodes(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobUsecase struct{ mock.Mock }

func (m *MockJobUsecase) SaveJob(ctx context.Context, ownerID int64, job *domain.JobPosting) (*domain.JobPosting, bool, error) {
	args := m.Called(ctx, ownerID, job)
	j, _ := args.Get(0).(*domain.JobPosting)
	return j, args.Bool(1), args.Error(2)
}

func (m *MockJobUsecase) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JobPosting, error) {
	args := m.Called(ctx, ownerID)
	j, _ := args.Get(0).([]domain.JobPosting)
	return j, args.Error(1)
}

func (m *MockJobUsecase) Search(ctx context.Context, filter domain.JobFilter) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, filter)
	j, _ := args.Get(0).([]domain.JobPosting)
	return j, args.Get(1).(int64), args.Error(2)
}

func (m *MockJobUsecase) GetJob(ctx context.Context, id int64) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	j, _ := args.Get(0).(*domain.JobPosting)
	return j, args.Error(1)
}

func (m *MockJobUsecase) UpdateJob(ctx context.Context, id int64, job *domain.JobPosting) (*domain.JobPosting, error) {
	args := m.Called(ctx, id, job)
	j, _ := args.Get(0).(*domain.JobPosting)
	return j, args.Error(1)
}

func (m *MockJobUsecase) DeleteJob(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockEmployeeUsecase struct{ mock.Mock }

func (m *MockEmployeeUsecase) GetProfile(ctx context.Context, userID int64) (*domain.EmployeeProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domain.EmployeeProfile)
	return p, args.Error(1)
}

func (m *MockEmployeeUsecase) SaveProfile(ctx context.Context, userID int64, profile *domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	args := m.Called(ctx, userID, profile)
	p, _ := args.Get(0).(*domain.EmployeeProfile)
	return p, args.Error(1)
}

func (m *MockEmployeeUsecase) UpdateProfile(ctx context.Context, userID int64, profile *domain.EmployeeProfile) (*domain.EmployeeProfile, error) {
	args := m.Called(ctx, userID, profile)
	p, _ := args.Get(0).(*domain.EmployeeProfile)
	return p, args.Error(1)
}

func (m *MockEmployeeUsecase) SetJobCategory(ctx context.Context, userID, categoryID int64) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

func (m *MockEmployeeUsecase) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).([]domain.Skill)
	return s, args.Error(1)
}

func (m *MockEmployeeUsecase) AddSkills(ctx context.Context, userID int64, names []string) ([]domain.Skill, error) {
	args := m.Called(ctx, userID, names)
	s, _ := args.Get(0).([]domain.Skill)
	return s, args.Error(1)
}

func (m *MockEmployeeUsecase) RemoveSkill(ctx context.Context, userID int64, name string) error {
	return m.Called(ctx, userID, name).Error(0)
}

func (m *MockEmployeeUsecase) SaveEducation(ctx context.Context, userID int64, e *domain.Education) (*domain.Education, bool, error) {
	args := m.Called(ctx, userID, e)
	ed, _ := args.Get(0).(*domain.Education)
	return ed, args.Bool(1), args.Error(2)
}

func (m *MockEmployeeUsecase) ListEducation(ctx context.Context, userID int64) ([]domain.Education, error) {
	args := m.Called(ctx, userID)
	ed, _ := args.Get(0).([]domain.Education)
	return ed, args.Error(1)
}

func (m *MockEmployeeUsecase) GetEducation(ctx context.Context, userID, id int64) (*domain.Education, error) {
	args := m.Called(ctx, userID, id)
	ed, _ := args.Get(0).(*domain.Education)
	return ed, args.Error(1)
}

func (m *MockEmployeeUsecase) UpdateEducation(ctx context.Context, userID, id int64, e *domain.Education) (*domain.Education, error) {
	args := m.Called(ctx, userID, id, e)
	ed, _ := args.Get(0).(*domain.Education)
	return ed, args.Error(1)
}

func (m *MockEmployeeUsecase) DeleteEducation(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockEmployeeUsecase) CreateExperience(ctx context.Context, userID int64, e *domain.Experience) (*domain.Experience, error) {
	args := m.Called(ctx, userID, e)
	ex, _ := args.Get(0).(*domain.Experience)
	return ex, args.Error(1)
}

func (m *MockEmployeeUsecase) ListExperience(ctx context.Context, userID int64) ([]domain.Experience, error) {
	args := m.Called(ctx, userID)
	ex, _ := args.Get(0).([]domain.Experience)
	return ex, args.Error(1)
}

func (m *MockEmployeeUsecase) GetExperience(ctx context.Context, userID, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, userID, id)
	ex, _ := args.Get(0).(*domain.Experience)
	return ex, args.Error(1)
}

func (m *MockEmployeeUsecase) UpdateExperience(ctx context.Context, userID, id int64, e *domain.Experience) (*domain.Experience, error) {
	args := m.Called(ctx, userID, id, e)
	ex, _ := args.Get(0).(*domain.Experience)
	return ex, args.Error(1)
}

func (m *MockEmployeeUsecase) DeleteExperience(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockCompanyUsecase struct{ mock.Mock }

func (m *MockCompanyUsecase) GetProfile(ctx context.Context, ownerID int64) (*domain.Company, error) {
	args := m.Called(ctx, ownerID)
	c, _ := args.Get(0).(*domain.Company)
	return c, args.Error(1)
}

func (m *MockCompanyUsecase) SaveProfile(ctx context.Context, ownerID int64, c *domain.Company) (*domain.Company, bool, error) {
	args := m.Called(ctx, ownerID, c)
	co, _ := args.Get(0).(*domain.Company)
	return co, args.Bool(1), args.Error(2)
}

func (m *MockCompanyUsecase) ListVerified(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]domain.Company)
	return c, args.Error(1)
}

func (m *MockCompanyUsecase) GetVerified(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Company)
	return c, args.Error(1)
}

func (m *MockCompanyUsecase) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]domain.Organization)
	return o, args.Error(1)
}

func (m *MockCompanyUsecase) SaveSector(ctx context.Context, ownerID int64, in domain.SectorInput) (*domain.Sector, error) {
	args := m.Called(ctx, ownerID, in)
	s, _ := args.Get(0).(*domain.Sector)
	return s, args.Error(1)
}

func (m *MockCompanyUsecase) ListSectors(ctx context.Context, ownerID int64) ([]domain.Sector, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).([]domain.Sector)
	return s, args.Error(1)
}

func (m *MockCompanyUsecase) ListSectorNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]string)
	return s, args.Error(1)
}

func (m *MockCompanyUsecase) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	d, _ := args.Get(0).([]domain.Department)
	return d, args.Error(1)
}

func (m *MockCompanyUsecase) CreateDepartment(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	d, _ := args.Get(0).(*domain.Department)
	return d, args.Error(1)
}

func (m *MockCompanyUsecase) ListCompanyDepartments(ctx context.Context, ownerID int64) ([]domain.Department, error) {
	args := m.Called(ctx, ownerID)
	d, _ := args.Get(0).([]domain.Department)
	return d, args.Error(1)
}

func (m *MockCompanyUsecase) CreateEmployee(ctx context.Context, ownerID int64, e *domain.CompanyEmployee) (*domain.CompanyEmployee, error) {
	args := m.Called(ctx, ownerID, e)
	ce, _ := args.Get(0).(*domain.CompanyEmployee)
	return ce, args.Error(1)
}

func (m *MockCompanyUsecase) ListEmployees(ctx context.Context, ownerID int64) ([]domain.CompanyEmployee, error) {
	args := m.Called(ctx, ownerID)
	ce, _ := args.Get(0).([]domain.CompanyEmployee)
	return ce, args.Error(1)
}

func (m *MockCompanyUsecase) DeleteEmployee(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockCatalogUsecase struct{ mock.Mock }

func (m *MockCatalogUsecase) ListSkills(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]domain.Skill)
	return s, args.Error(1)
}

func (m *MockCatalogUsecase) ListJobCategories(ctx context.Context) ([]domain.JobCategory, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]domain.JobCategory)
	return c, args.Error(1)
}

func (m *MockCatalogUsecase) CreateJobCategory(ctx context.Context, c *domain.JobCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCatalogUsecase) GetJobCategory(ctx context.Context, id int64) (*domain.JobCategory, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.JobCategory)
	return c, args.Error(1)
}

type stubHealth struct {
	healthy bool
}

func (s stubHealth) Check(ctx context.Context) (map[string]string, bool) {
	if s.healthy {
		return map[string]string{"status": "ok", "database": "ok"}, true
	}
	return map[string]string{"status": "degraded", "database": "unavailable"}, false
}
