package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobkit-backend/config"
	"jobkit-backend/internal/delivery/http/middleware"
	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"
	"jobkit-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router    *gin.Engine
	auth      *MockAuthUsecase
	employees *MockEmployeeUsecase
	companies *MockCompanyUsecase
	jobs      *MockJobUsecase
	catalog   *MockCatalogUsecase
	health    *stubHealth
}

func newTestServer() *testServer {
	s := &testServer{
		auth:      new(MockAuthUsecase),
		employees: new(MockEmployeeUsecase),
		companies: new(MockCompanyUsecase),
		jobs:      new(MockJobUsecase),
		catalog:   new(MockCatalogUsecase),
		health:    &stubHealth{healthy: true},
	}
	cfg := &config.Config{
		ServiceName:              "jobkit-test",
		Env:                      "test",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 1000,
		RateLimitAuthThreshold:   1000,
		CORSAllowedOrigins:       []string{"*"},
	}
	s.router = NewRouter(RouterDeps{
		AuthUC:       s.auth,
		EmployeeUC:   s.employees,
		CompanyUC:    s.companies,
		JobUC:        s.jobs,
		CatalogUC:    s.catalog,
		HealthUC:     s.health,
		LoginTracker: security.NewLoginTracker(nil, security.DefaultLoginTrackerConfig(), nil),
		RateLimiter:  middleware.NewRateLimiter(nil, nil),
		Config:       cfg,
	})
	return s
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func principal(id int64) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		got, _, ok := domain.PrincipalFromContext(ctx)
		return ok && got == id
	})
}

func anonymous() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		_, _, ok := domain.PrincipalFromContext(ctx)
		return !ok
	})
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		s := newTestServer()
		in := domain.RegisterInput{Email: "acme@example.com", Username: "acme", Password: "s3cret!"}
		s.auth.On("Register", mock.Anything, domain.RoleCompany, in).
			Return(&domain.Account{ID: 5, Email: in.Email, Username: in.Username, Role: domain.RoleCompany, IsActive: true}, nil)

		w := s.do(http.MethodPost, "/v1/auth/register/company", `{"email":"acme@example.com","username":"acme","password":"s3cret!"}`, "")
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		assert.True(t, body.Success)
		data := body.Data.(map[string]interface{})
		assert.Equal(t, "company", data["user_type"])
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		s.auth.AssertExpectations(t)
	})

	t.Run("field errors", func(t *testing.T) {
		s := newTestServer()
		s.auth.On("Register", mock.Anything, domain.RoleEmployee, mock.Anything).
			Return(nil, apperror.Validation(map[string]string{"email": "Email already exists."}))

		w := s.do(http.MethodPost, "/v1/auth/register/employee", `{"email":"a@b.co","username":"a","password":"x"}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, map[string]interface{}{"email": "Email already exists."}, body.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/v1/auth/register/employee", `{"email":`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Malformed JSON body", decodeBody(t, w).Message)
		s.auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong value type", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodPost, "/v1/auth/register/employee", `{"email":42}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]interface{}{"email": "Invalid value type."}, decodeBody(t, w).Error)
	})
}

func TestTruncatedJSONBody(t *testing.T) {
	for _, body := range []string{`{"identifier":`, `{"identifier":"a@b.com"`, `{`} {
		t.Run(body, func(t *testing.T) {
			s := newTestServer()
			w := s.do(http.MethodPost, "/v1/auth/login", body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Malformed JSON body", decodeBody(t, w).Message)
			s.auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
		})
	}
}

func TestVerifyOTP(t *testing.T) {
	s := newTestServer()
	s.auth.On("VerifyOTP", mock.Anything, domain.VerifyOTPInput{OTPCode: "123456"}).
		Return(&domain.Session{AccountID: 5, Role: domain.RoleEmployee, TokenType: "Bearer", AccessToken: "a", RefreshToken: "r"}, nil)

	w := s.do(http.MethodPost, "/v1/auth/verify-otp", `{"otp_code":"123456"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w).Data.(map[string]interface{})
	assert.Equal(t, "a", data["access_token"])
	assert.Equal(t, float64(5), data["user_id"])
}

func TestLogin(t *testing.T) {
	t.Run("bad password", func(t *testing.T) {
		s := newTestServer()
		s.auth.On("Login", mock.Anything, domain.LoginInput{Identifier: "alice", Password: "nope"}).
			Return(nil, apperror.Unauthorized("Invalid password"))

		w := s.do(http.MethodPost, "/v1/auth/login", `{"identifier":"alice","password":"nope"}`, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid password", decodeBody(t, w).Message)
	})

	t.Run("success", func(t *testing.T) {
		s := newTestServer()
		s.auth.On("Login", mock.Anything, domain.LoginInput{Identifier: "alice@example.com", Password: "pw"}).
			Return(&domain.Session{AccountID: 9, AccessToken: "tok"}, nil)

		w := s.do(http.MethodPost, "/v1/auth/login", `{"identifier":"alice@example.com","password":"pw"}`, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Login successful", decodeBody(t, w).Message)
	})
}

func TestCheckUsername(t *testing.T) {
	s := newTestServer()
	s.auth.On("CheckUsername", mock.Anything, "alice").Return(true, nil)

	w := s.do(http.MethodGet, "/v1/auth/check-username?username=alice", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"username_taken": true}, decodeBody(t, w).Data)
}

func TestMe(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	s.auth.On("CurrentAccount", principal(30)).Return(&domain.Account{ID: 30, Role: domain.RoleEmployee}, nil)
	w = s.do(http.MethodGet, "/v1/auth/me", "", "employee")
	require.Equal(t, http.StatusOK, w.Code)
	s.auth.AssertExpectations(t)
}

func TestJobSearch(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		s := newTestServer()
		category := int64(3)
		want := domain.JobFilter{
			Tags:       []string{"Go", "SQL"},
			CategoryID: &category,
			ModeOfWork: domain.WorkMode("Remote"),
			Query:      "backend",
			Page:       2,
			PageSize:   5,
		}
		s.jobs.On("Search", anonymous(), want).
			Return([]domain.JobPosting{{ID: 1, Title: "Backend Engineer"}}, int64(12), nil)

		w := s.do(http.MethodGet, "/v1/jobs?tag=Go&tag=SQL&category_id=3&mode_of_work=Remote&q=backend&page=2&page_size=5", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		page := decodeBody(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(2), page["page"])
		assert.Equal(t, float64(5), page["page_size"])
		assert.Equal(t, float64(12), page["total"])
		assert.Len(t, page["items"], 1)
	})

	t.Run("defaults page", func(t *testing.T) {
		s := newTestServer()
		s.jobs.On("Search", mock.Anything, mock.Anything).Return([]domain.JobPosting{}, int64(0), nil)

		w := s.do(http.MethodGet, "/v1/jobs", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		page := decodeBody(t, w).Data.(map[string]interface{})
		assert.Equal(t, float64(1), page["page"])
		assert.Equal(t, float64(domain.DefaultPageSize), page["page_size"])
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		s := newTestServer()
		w := s.do(http.MethodGet, "/v1/jobs?category_id=abc&page=-1", "", "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		fields := decodeBody(t, w).Error.(map[string]interface{})
		assert.Contains(t, fields, "category_id")
		assert.Contains(t, fields, "page")
		s.jobs.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})
}

func TestSaveJobStatus(t *testing.T) {
	body := `{"job_title":"Backend Engineer","tags":["go"]}`

	s := newTestServer()
	s.jobs.On("SaveJob", principal(20), int64(20), mock.AnythingOfType("*domain.JobPosting")).
		Return(&domain.JobPosting{ID: 8, Title: "Backend Engineer"}, true, nil).Once()
	s.jobs.On("SaveJob", principal(20), int64(20), mock.AnythingOfType("*domain.JobPosting")).
		Return(&domain.JobPosting{ID: 8, Title: "Backend Engineer"}, false, nil).Once()

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/companies/20/jobs", body, "company").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/v1/companies/20/jobs", body, "company").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/companies/20/jobs", body, "").Code)
}

func TestJobNotFound(t *testing.T) {
	s := newTestServer()
	s.jobs.On("GetJob", mock.Anything, int64(99)).Return(nil, apperror.NotFound("Job not found"))

	w := s.do(http.MethodGet, "/v1/jobs/99", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Job not found", decodeBody(t, w).Message)

	w = s.do(http.MethodGet, "/v1/jobs/zero", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeRoutes(t *testing.T) {
	s := newTestServer()

	w := s.do(http.MethodGet, "/v1/employees/abc", "", "employee")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user_id", decodeBody(t, w).Message)

	s.employees.On("SetJobCategory", principal(30), int64(30), int64(4)).Return(nil)
	w = s.do(http.MethodPut, "/v1/employees/30/job-category", `{"job_category":4}`, "employee")
	assert.Equal(t, http.StatusOK, w.Code)

	s.employees.On("AddSkills", principal(30), int64(30), []string{"go", "sql"}).
		Return([]domain.Skill{{ID: 1, Name: "Go"}, {ID: 2, Name: "Sql"}}, nil)
	w = s.do(http.MethodPost, "/v1/employees/30/skills", `{"skills":["go","sql"]}`, "employee")
	assert.Equal(t, http.StatusCreated, w.Code)

	s.employees.On("RemoveSkill", principal(30), int64(30), "Go").Return(apperror.NotFound("Skill not linked"))
	w = s.do(http.MethodDelete, "/v1/employees/30/skills/Go", "", "employee")
	assert.Equal(t, http.StatusNotFound, w.Code)

	s.employees.AssertExpectations(t)
}

func TestCompanyRoutes(t *testing.T) {
	s := newTestServer()

	s.companies.On("SaveSector", principal(20), int64(20), domain.SectorInput{Name: "IT", Departments: []string{"QA"}}).
		Return(&domain.Sector{ID: 1, Name: "IT"}, nil)
	w := s.do(http.MethodPost, "/v1/companies/20/sectors", `{"sector_name":"IT","departments":["QA"]}`, "company")
	assert.Equal(t, http.StatusCreated, w.Code)

	s.companies.On("DeleteEmployee", principal(20), int64(20), int64(4)).Return(nil)
	w = s.do(http.MethodDelete, "/v1/companies/20/employees/4", "", "company")
	assert.Equal(t, http.StatusOK, w.Code)

	s.companies.On("GetProfile", principal(30), int64(20)).Return(nil, apperror.Forbidden("You do not have permission to access this resource"))
	w = s.do(http.MethodGet, "/v1/companies/20", "", "employee")
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.companies.AssertExpectations(t)
}

func TestDirectory(t *testing.T) {
	t.Run("job categories see the caller when present", func(t *testing.T) {
		s := newTestServer()
		s.catalog.On("ListJobCategories", anonymous()).Return([]domain.JobCategory{{ID: 1, Name: "IT", IsVerified: true}}, nil).Once()
		s.catalog.On("ListJobCategories", principal(1)).Return([]domain.JobCategory{{ID: 1}, {ID: 2}}, nil).Once()

		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/directory/job-categories", "", "").Code)
		w := s.do(http.MethodGet, "/v1/directory/job-categories", "", "admin")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w).Data, 2)
		s.catalog.AssertExpectations(t)
	})

	t.Run("only admins create categories", func(t *testing.T) {
		s := newTestServer()
		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/directory/job-categories", `{"category_name":"Data"}`, "").Code)
		assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/v1/directory/job-categories", `{"category_name":"Data"}`, "company").Code)
		s.catalog.AssertNotCalled(t, "CreateJobCategory", mock.Anything, mock.Anything)

		s.catalog.On("CreateJobCategory", principal(1), &domain.JobCategory{Name: "Data"}).Return(nil)
		assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/directory/job-categories", `{"category_name":"Data"}`, "admin").Code)
	})

	t.Run("companies need a token", func(t *testing.T) {
		s := newTestServer()
		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/v1/directory/companies", "", "").Code)

		s.companies.On("ListVerified", mock.Anything).Return([]domain.Company{}, nil)
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/directory/companies", "", "employee").Code)
	})

	t.Run("departments", func(t *testing.T) {
		s := newTestServer()
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/v1/directory/departments", `{}`, "company").Code)

		s.companies.On("CreateDepartment", principal(20), "QA").Return(&domain.Department{ID: 3, Name: "QA"}, nil)
		assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/v1/directory/departments", `{"name":"QA"}`, "company").Code)
	})
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer()
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/health", "", "").Code)

	s.health.healthy = false
	w := s.do(http.MethodGet, "/v1/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")

	w = s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
