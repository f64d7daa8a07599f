package v1

import (
	"net/http"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(protected *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := protected.Group("/companies/:user_id")
	{
		companies.GET("", handler.GetProfile)
		companies.POST("", handler.SaveProfile)
		companies.GET("/sectors", handler.ListSectors)
		companies.POST("/sectors", handler.SaveSector)
		companies.GET("/departments", handler.ListDepartments)
		companies.GET("/employees", handler.ListEmployees)
		companies.POST("/employees", handler.CreateEmployee)
		companies.DELETE("/employees/:id", handler.DeleteEmployee)
	}
}

// GetProfile godoc
// @Summary      Get company profile
// @Tags         companies
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Success      200      {object}  response.Response{data=domain.Company}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/{user_id} [get]
// @Security     BearerAuth
func (h *CompanyHandler) GetProfile(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	company, err := h.companyUC.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile retrieved", company)
}

// SaveProfile godoc
// @Summary      Create or update company profile
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        user_id  path      int             true  "Company account id"
// @Param        company  body      domain.Company  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.Company}
// @Success      201      {object}  response.Response{data=domain.Company}
// @Failure      400      {object}  response.Response
// @Router       /companies/{user_id} [post]
// @Security     BearerAuth
func (h *CompanyHandler) SaveProfile(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.Company
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	company, created, err := h.companyUC.SaveProfile(c.Request.Context(), ownerID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	if created {
		response.Success(c, http.StatusCreated, "Company profile created", company)
		return
	}
	response.Success(c, http.StatusOK, "Company profile updated", company)
}

// ListSectors godoc
// @Summary      List a company's sectors with departments
// @Tags         companies
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Success      200      {object}  response.Response{data=[]domain.Sector}
// @Router       /companies/{user_id}/sectors [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListSectors(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	sectors, err := h.companyUC.ListSectors(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sectors retrieved", sectors)
}

// SaveSector godoc
// @Summary      Save a sector and link departments
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                 true  "Company account id"
// @Param        sector   body      domain.SectorInput  true  "Sector"
// @Success      201      {object}  response.Response{data=domain.Sector}
// @Failure      400      {object}  response.Response
// @Router       /companies/{user_id}/sectors [post]
// @Security     BearerAuth
func (h *CompanyHandler) SaveSector(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.SectorInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	sector, err := h.companyUC.SaveSector(c.Request.Context(), ownerID, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Sector saved", sector)
}

// ListDepartments godoc
// @Summary      List a company's departments
// @Tags         companies
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Success      200      {object}  response.Response{data=[]domain.Department}
// @Router       /companies/{user_id}/departments [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListDepartments(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	depts, err := h.companyUC.ListCompanyDepartments(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Departments retrieved", depts)
}

// ListEmployees godoc
// @Summary      List company employees
// @Tags         companies
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Success      200      {object}  response.Response{data=[]domain.CompanyEmployee}
// @Router       /companies/{user_id}/employees [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListEmployees(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	employees, err := h.companyUC.ListEmployees(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employees retrieved", employees)
}

// CreateEmployee godoc
// @Summary      Add a company employee
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        user_id   path      int                     true  "Company account id"
// @Param        employee  body      domain.CompanyEmployee  true  "Employee"
// @Success      201       {object}  response.Response{data=domain.CompanyEmployee}
// @Failure      400       {object}  response.Response
// @Router       /companies/{user_id}/employees [post]
// @Security     BearerAuth
func (h *CompanyHandler) CreateEmployee(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CompanyEmployee
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	employee, err := h.companyUC.CreateEmployee(c.Request.Context(), ownerID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Employee created", employee)
}

// DeleteEmployee godoc
// @Summary      Delete a company employee
// @Tags         companies
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Param        id       path      int  true  "Employee id"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/{user_id}/employees/{id} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) DeleteEmployee(c *gin.Context) {
	ownerID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.companyUC.DeleteEmployee(c.Request.Context(), ownerID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employee deleted", nil)
}
