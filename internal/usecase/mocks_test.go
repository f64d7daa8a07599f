package usecase_test

import (
	"context"
	"time"

	"jobkit-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepo) MarkVerified(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockCodeRepo struct {
	mock.Mock
}

func (m *MockCodeRepo) Create(ctx context.Context, code *domain.OneTimeCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *MockCodeRepo) FindLatestByCode(ctx context.Context, code string) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OneTimeCode), args.Error(1)
}

func (m *MockCodeRepo) FindLatestForAccount(ctx context.Context, accountID int64, code string) (*domain.OneTimeCode, error) {
	args := m.Called(ctx, accountID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OneTimeCode), args.Error(1)
}

func (m *MockCodeRepo) ExistsLive(ctx context.Context, code string, now time.Time) (bool, error) {
	args := m.Called(ctx, code, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockCodeRepo) MarkConsumed(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockCodeRepo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(accountName string, now time.Time) (string, error) {
	args := m.Called(accountName, now)
	return args.String(0), args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Issue(account *domain.Account) (*domain.Session, error) {
	args := m.Called(account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessions) ParseAccess(token string) (*domain.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionClaims), args.Error(1)
}

func (m *MockSessions) ParseRefresh(token string) (*domain.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionClaims), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOTP(ctx context.Context, n domain.OTPNotification) error {
	return m.Called(ctx, n).Error(0)
}

// inlineTx runs the closure without a database.
type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Upsert(ctx context.Context, job *domain.JobPosting) (bool, error) {
	args := m.Called(ctx, job)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JobPosting, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.JobPosting), args.Error(1)
}

func (m *MockJobRepo) Search(ctx context.Context, filter domain.JobFilter) ([]domain.JobPosting, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.JobPosting) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) SetTags(ctx context.Context, jobID int64, skillIDs []int64) error {
	return m.Called(ctx, jobID, skillIDs).Error(0)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Upsert(ctx context.Context, name string) (*domain.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}

func (m *MockSkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Skill), args.Error(1)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.JobCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.JobCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCategory), args.Error(1)
}

func (m *MockCategoryRepo) List(ctx context.Context, verifiedOnly bool) ([]domain.JobCategory, error) {
	args := m.Called(ctx, verifiedOnly)
	return args.Get(0).([]domain.JobCategory), args.Error(1)
}

type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployeeProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeProfile), args.Error(1)
}

func (m *MockEmployeeRepo) Upsert(ctx context.Context, profile *domain.EmployeeProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockEmployeeRepo) Update(ctx context.Context, profile *domain.EmployeeProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockEmployeeRepo) SetJobCategory(ctx context.Context, userID, categoryID int64) error {
	return m.Called(ctx, userID, categoryID).Error(0)
}

func (m *MockEmployeeRepo) ListSkills(ctx context.Context, userID int64) ([]domain.Skill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Skill), args.Error(1)
}

func (m *MockEmployeeRepo) LinkSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	return m.Called(ctx, userID, skillIDs).Error(0)
}

func (m *MockEmployeeRepo) UnlinkSkill(ctx context.Context, userID int64, name string) (bool, error) {
	args := m.Called(ctx, userID, name)
	return args.Bool(0), args.Error(1)
}

type MockEducationRepo struct {
	mock.Mock
}

func (m *MockEducationRepo) Upsert(ctx context.Context, e *domain.Education) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *MockEducationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Education, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Education), args.Error(1)
}

func (m *MockEducationRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Education, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Education), args.Error(1)
}

func (m *MockEducationRepo) Update(ctx context.Context, e *domain.Education) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEducationRepo) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Upsert(ctx context.Context, name string) (*domain.Organization, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepo) ListVerified(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}

type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) GetByOwner(ctx context.Context, ownerID int64) (*domain.Company, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Upsert(ctx context.Context, c *domain.Company) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepo) EnsureByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepo) ListVerified(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) GetVerifiedByID(ctx context.Context, id int64) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type MockDepartmentRepo struct {
	mock.Mock
}

func (m *MockDepartmentRepo) Upsert(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Department, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Department), args.Error(1)
}

func (m *MockDepartmentRepo) CountExisting(ctx context.Context, ids []int64) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

type MockSectorRepo struct {
	mock.Mock
}

func (m *MockSectorRepo) Upsert(ctx context.Context, ownerID int64, name string) (*domain.Sector, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sector), args.Error(1)
}

func (m *MockSectorRepo) LinkDepartments(ctx context.Context, sectorID int64, departmentIDs []int64) error {
	return m.Called(ctx, sectorID, departmentIDs).Error(0)
}

func (m *MockSectorRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Sector, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Sector), args.Error(1)
}

func (m *MockSectorRepo) ListDistinctNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockCompanyEmployeeRepo struct {
	mock.Mock
}

func (m *MockCompanyEmployeeRepo) Create(ctx context.Context, e *domain.CompanyEmployee) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockCompanyEmployeeRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.CompanyEmployee, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.CompanyEmployee), args.Error(1)
}

func (m *MockCompanyEmployeeRepo) Delete(ctx context.Context, ownerID, id int64) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func as(userID int64, role domain.Role) context.Context {
	return domain.WithPrincipal(context.Background(), userID, role)
}

type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) Create(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExperienceRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Experience, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Experience), args.Error(1)
}

func (m *MockExperienceRepo) GetByID(ctx context.Context, userID, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func (m *MockExperienceRepo) Update(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockExperienceRepo) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}
