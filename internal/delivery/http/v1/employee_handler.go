package v1

import (
	"context"
	"net/http"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeUC domain.EmployeeUsecase
}

func NewEmployeeHandler(protected *gin.RouterGroup, employeeUC domain.EmployeeUsecase) {
	handler := &EmployeeHandler{employeeUC: employeeUC}

	employees := protected.Group("/employees/:user_id")
	{
		employees.GET("", handler.GetProfile)
		employees.POST("", handler.SaveProfile)
		employees.PUT("", handler.UpdateProfile)
		employees.PUT("/job-category", handler.SetJobCategory)

		employees.GET("/skills", handler.ListSkills)
		employees.POST("/skills", handler.AddSkills)
		employees.DELETE("/skills/:name", handler.RemoveSkill)

		employees.GET("/education", handler.ListEducation)
		employees.POST("/education", handler.SaveEducation)
		employees.GET("/education/:id", handler.GetEducation)
		employees.PUT("/education/:id", handler.UpdateEducation)
		employees.DELETE("/education/:id", handler.DeleteEducation)

		employees.GET("/experience", handler.ListExperience)
		employees.POST("/experience", handler.CreateExperience)
		employees.GET("/experience/:id", handler.GetExperience)
		employees.PUT("/experience/:id", handler.UpdateExperience)
		employees.DELETE("/experience/:id", handler.DeleteExperience)
	}
}

// GetProfile godoc
// @Summary      Get employee profile
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Success      200      {object}  response.Response{data=domain.EmployeeProfile}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id} [get]
// @Security     BearerAuth
func (h *EmployeeHandler) GetProfile(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	profile, err := h.employeeUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// SaveProfile godoc
// @Summary      Create or replace employee profile
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                     true  "Employee account id"
// @Param        profile  body      domain.EmployeeProfile  true  "Profile"
// @Success      201      {object}  response.Response{data=domain.EmployeeProfile}
// @Failure      400      {object}  response.Response
// @Router       /employees/{user_id} [post]
// @Security     BearerAuth
func (h *EmployeeHandler) SaveProfile(c *gin.Context) {
	h.writeProfile(c, h.employeeUC.SaveProfile, http.StatusCreated, "Profile saved")
}

// UpdateProfile godoc
// @Summary      Update employee profile
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                     true  "Employee account id"
// @Param        profile  body      domain.EmployeeProfile  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.EmployeeProfile}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id} [put]
// @Security     BearerAuth
func (h *EmployeeHandler) UpdateProfile(c *gin.Context) {
	h.writeProfile(c, h.employeeUC.UpdateProfile, http.StatusOK, "Profile updated")
}

type profileWriter func(ctx context.Context, userID int64, p *domain.EmployeeProfile) (*domain.EmployeeProfile, error)

func (h *EmployeeHandler) writeProfile(c *gin.Context, write profileWriter, status int, message string) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.EmployeeProfile
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	profile, err := write(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, status, message, profile)
}

// SetJobCategory godoc
// @Summary      Set the employee's job category
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                         true  "Employee account id"
// @Param        request  body      domain.SetJobCategoryInput  true  "Category"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /employees/{user_id}/job-category [put]
// @Security     BearerAuth
func (h *EmployeeHandler) SetJobCategory(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.SetJobCategoryInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	if err := h.employeeUC.SetJobCategory(c.Request.Context(), userID, req.JobCategoryID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job category updated", req)
}

// ListSkills godoc
// @Summary      List employee skills
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Success      200      {object}  response.Response{data=[]domain.Skill}
// @Router       /employees/{user_id}/skills [get]
// @Security     BearerAuth
func (h *EmployeeHandler) ListSkills(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	skills, err := h.employeeUC.ListSkills(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills retrieved", skills)
}

// AddSkills godoc
// @Summary      Add skills to an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                    true  "Employee account id"
// @Param        request  body      domain.AddSkillsInput  true  "Skill names"
// @Success      201      {object}  response.Response{data=[]domain.Skill}
// @Failure      400      {object}  response.Response
// @Router       /employees/{user_id}/skills [post]
// @Security     BearerAuth
func (h *EmployeeHandler) AddSkills(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.AddSkillsInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	skills, err := h.employeeUC.AddSkills(c.Request.Context(), userID, req.Names)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skills added", skills)
}

// RemoveSkill godoc
// @Summary      Remove a skill from an employee
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int     true  "Employee account id"
// @Param        name     path      string  true  "Skill name"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id}/skills/{name} [delete]
// @Security     BearerAuth
func (h *EmployeeHandler) RemoveSkill(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.employeeUC.RemoveSkill(c.Request.Context(), userID, c.Param("name")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill removed", nil)
}

// ListEducation godoc
// @Summary      List education entries
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Success      200      {object}  response.Response{data=[]domain.Education}
// @Router       /employees/{user_id}/education [get]
// @Security     BearerAuth
func (h *EmployeeHandler) ListEducation(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	items, err := h.employeeUC.ListEducation(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education retrieved", items)
}

// SaveEducation godoc
// @Summary      Create or update an education entry
// @Description  Entries are keyed by organization; saving the same organization again updates it
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id    path      int               true  "Employee account id"
// @Param        education  body      domain.Education  true  "Education"
// @Success      200        {object}  response.Response{data=domain.Education}
// @Success      201        {object}  response.Response{data=domain.Education}
// @Failure      400        {object}  response.Response
// @Router       /employees/{user_id}/education [post]
// @Security     BearerAuth
func (h *EmployeeHandler) SaveEducation(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.Education
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	saved, created, err := h.employeeUC.SaveEducation(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	if created {
		response.Success(c, http.StatusCreated, "Education created", saved)
		return
	}
	response.Success(c, http.StatusOK, "Education updated", saved)
}

// GetEducation godoc
// @Summary      Get an education entry
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Param        id       path      int  true  "Education id"
// @Success      200      {object}  response.Response{data=domain.Education}
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id}/education/{id} [get]
// @Security     BearerAuth
func (h *EmployeeHandler) GetEducation(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	item, err := h.employeeUC.GetEducation(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education retrieved", item)
}

// UpdateEducation godoc
// @Summary      Update an education entry
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id    path      int               true  "Employee account id"
// @Param        id         path      int               true  "Education id"
// @Param        education  body      domain.Education  true  "Education"
// @Success      200        {object}  response.Response{data=domain.Education}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /employees/{user_id}/education/{id} [put]
// @Security     BearerAuth
func (h *EmployeeHandler) UpdateEducation(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.Education
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	item, err := h.employeeUC.UpdateEducation(c.Request.Context(), userID, id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education updated", item)
}

// DeleteEducation godoc
// @Summary      Delete an education entry
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Param        id       path      int  true  "Education id"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id}/education/{id} [delete]
// @Security     BearerAuth
func (h *EmployeeHandler) DeleteEducation(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.employeeUC.DeleteEducation(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Education deleted", nil)
}

// ListExperience godoc
// @Summary      List experience entries
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Success      200      {object}  response.Response{data=[]domain.Experience}
// @Router       /employees/{user_id}/experience [get]
// @Security     BearerAuth
func (h *EmployeeHandler) ListExperience(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	items, err := h.employeeUC.ListExperience(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience retrieved", items)
}

// CreateExperience godoc
// @Summary      Add an experience entry
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id     path      int                true  "Employee account id"
// @Param        experience  body      domain.Experience  true  "Experience"
// @Success      201         {object}  response.Response{data=domain.Experience}
// @Failure      400         {object}  response.Response
// @Router       /employees/{user_id}/experience [post]
// @Security     BearerAuth
func (h *EmployeeHandler) CreateExperience(c *gin.Context) {
	userID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.Experience
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	item, err := h.employeeUC.CreateExperience(c.Request.Context(), userID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Experience created", item)
}

// GetExperience godoc
// @Summary      Get an experience entry
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Param        id       path      int  true  "Experience id"
// @Success      200      {object}  response.Response{data=domain.Experience}
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id}/experience/{id} [get]
// @Security     BearerAuth
func (h *EmployeeHandler) GetExperience(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	item, err := h.employeeUC.GetExperience(c.Request.Context(), userID, id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience retrieved", item)
}

// UpdateExperience godoc
// @Summary      Update an experience entry
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        user_id     path      int                true  "Employee account id"
// @Param        id          path      int                true  "Experience id"
// @Param        experience  body      domain.Experience  true  "Experience"
// @Success      200         {object}  response.Response{data=domain.Experience}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /employees/{user_id}/experience/{id} [put]
// @Security     BearerAuth
func (h *EmployeeHandler) UpdateExperience(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.Experience
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	item, err := h.employeeUC.UpdateExperience(c.Request.Context(), userID, id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience updated", item)
}

// DeleteExperience godoc
// @Summary      Delete an experience entry
// @Tags         employees
// @Produce      json
// @Param        user_id  path      int  true  "Employee account id"
// @Param        id       path      int  true  "Experience id"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /employees/{user_id}/experience/{id} [delete]
// @Security     BearerAuth
func (h *EmployeeHandler) DeleteExperience(c *gin.Context) {
	userID, id, err := ownerAndID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.employeeUC.DeleteExperience(c.Request.Context(), userID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Experience deleted", nil)
}
