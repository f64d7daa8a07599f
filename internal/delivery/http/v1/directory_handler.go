package v1

import (
	"net/http"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the shared lookup lists: companies, organizations,
// sectors, departments, skills and job categories.
type DirectoryHandler struct {
	companyUC domain.CompanyUsecase
	catalogUC domain.CatalogUsecase
}

// NewDirectoryHandler registers the lookup routes. public should carry
// OptionalAuth so that admins see unverified job categories.
func NewDirectoryHandler(public, protected *gin.RouterGroup, admin gin.HandlerFunc, companyUC domain.CompanyUsecase, catalogUC domain.CatalogUsecase) {
	handler := &DirectoryHandler{companyUC: companyUC, catalogUC: catalogUC}

	open := public.Group("/directory")
	{
		open.GET("/skills", handler.ListSkills)
		open.GET("/job-categories", handler.ListJobCategories)
		open.GET("/job-categories/:id", handler.GetJobCategory)
	}

	dir := protected.Group("/directory")
	{
		dir.GET("/companies", handler.ListCompanies)
		dir.GET("/companies/:id", handler.GetCompany)
		dir.GET("/organizations", handler.ListOrganizations)
		dir.GET("/sectors", handler.ListSectorNames)
		dir.GET("/departments", handler.ListDepartments)
		dir.POST("/departments", handler.CreateDepartment)
		dir.POST("/job-categories", admin, handler.CreateJobCategory)
	}
}

type departmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// ListCompanies godoc
// @Summary      List verified companies
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Company}
// @Router       /directory/companies [get]
// @Security     BearerAuth
func (h *DirectoryHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyUC.ListVerified(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Companies retrieved", companies)
}

// GetCompany godoc
// @Summary      Verified company detail
// @Tags         directory
// @Produce      json
// @Param        id   path      int  true  "Company id"
// @Success      200  {object}  response.Response{data=domain.Company}
// @Failure      404  {object}  response.Response
// @Router       /directory/companies/{id} [get]
// @Security     BearerAuth
func (h *DirectoryHandler) GetCompany(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	company, err := h.companyUC.GetVerified(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// ListOrganizations godoc
// @Summary      List verified organizations
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Organization}
// @Router       /directory/organizations [get]
// @Security     BearerAuth
func (h *DirectoryHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.companyUC.ListOrganizations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organizations retrieved", orgs)
}

// ListSectorNames godoc
// @Summary      List distinct sector names
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]string}
// @Router       /directory/sectors [get]
// @Security     BearerAuth
func (h *DirectoryHandler) ListSectorNames(c *gin.Context) {
	names, err := h.companyUC.ListSectorNames(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sectors retrieved", names)
}

// ListDepartments godoc
// @Summary      List departments
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Department}
// @Router       /directory/departments [get]
// @Security     BearerAuth
func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	depts, err := h.companyUC.ListDepartments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Departments retrieved", depts)
}

// CreateDepartment godoc
// @Summary      Create a department
// @Description  Returns the existing department when the name is taken
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        department  body      departmentRequest  true  "Department"
// @Success      201         {object}  response.Response{data=domain.Department}
// @Failure      400         {object}  response.Response
// @Failure      403         {object}  response.Response
// @Router       /directory/departments [post]
// @Security     BearerAuth
func (h *DirectoryHandler) CreateDepartment(c *gin.Context) {
	var req departmentRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	dept, err := h.companyUC.CreateDepartment(c.Request.Context(), req.Name)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Department saved", dept)
}

// ListSkills godoc
// @Summary      List skills
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Skill}
// @Router       /directory/skills [get]
func (h *DirectoryHandler) ListSkills(c *gin.Context) {
	skills, err := h.catalogUC.ListSkills(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// ListJobCategories godoc
// @Summary      List job categories
// @Description  Verified categories only, unless the caller is an admin
// @Tags         directory
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /directory/job-categories [get]
func (h *DirectoryHandler) ListJobCategories(c *gin.Context) {
	categories, err := h.catalogUC.ListJobCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job categories retrieved", categories)
}

// GetJobCategory godoc
// @Summary      Job category detail
// @Tags         directory
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  response.Response{data=domain.JobCategory}
// @Failure      404  {object}  response.Response
// @Router       /directory/job-categories/{id} [get]
func (h *DirectoryHandler) GetJobCategory(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	category, err := h.catalogUC.GetJobCategory(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job category retrieved", category)
}

// CreateJobCategory godoc
// @Summary      Create a job category
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        category  body      domain.JobCategory  true  "Category"
// @Success      201       {object}  response.Response{data=domain.JobCategory}
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Router       /directory/job-categories [post]
// @Security     BearerAuth
func (h *DirectoryHandler) CreateJobCategory(c *gin.Context) {
	var req domain.JobCategory
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.catalogUC.CreateJobCategory(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job category created", req)
}
