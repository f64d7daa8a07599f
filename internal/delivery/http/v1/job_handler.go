package v1

import (
	"net/http"
	"strconv"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Public listing and detail
	public.GET("/jobs", handler.Search)
	public.GET("/jobs/:id", handler.GetDetails)

	protected.PUT("/jobs/:id", handler.Update)
	protected.DELETE("/jobs/:id", handler.Delete)

	// A company's own postings
	protected.GET("/companies/:user_id/jobs", handler.ListByOwner)
	protected.POST("/companies/:user_id/jobs", handler.Save)
}

// Save godoc
// @Summary      Create or update a job posting
// @Description  Postings are keyed by (company, job_title); saving an existing title updates it
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        user_id  path      int                true  "Company account id"
// @Param        job      body      domain.JobPosting  true  "Job posting"
// @Success      200      {object}  response.Response{data=domain.JobPosting}
// @Success      201      {object}  response.Response{data=domain.JobPosting}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /companies/{user_id}/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Save(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobPosting
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, created, err := h.jobUC.SaveJob(c.Request.Context(), ownerID, &req)
	if err != nil {
		c.Error(err)
		return
	}
	if created {
		response.Success(c, http.StatusCreated, "Job created", job)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// ListByOwner godoc
// @Summary      List a company's job postings
// @Tags         jobs
// @Produce      json
// @Param        user_id  path      int  true  "Company account id"
// @Success      200      {object}  response.Response{data=[]domain.JobPosting}
// @Failure      403      {object}  response.Response
// @Router       /companies/{user_id}/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByOwner(c *gin.Context) {
	ownerID, err := ownerParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	jobs, err := h.jobUC.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// Search godoc
// @Summary      List job postings
// @Description  Public listing. Repeat tag to match any of several tags.
// @Tags         jobs
// @Produce      json
// @Param        tag           query     []string  false  "Tag"  collectionFormat(multi)
// @Param        category_id   query     int       false  "Job category id"
// @Param        mode_of_work  query     string    false  "Mode of work"  Enums(Full-Time, Part-Time, Contract, Remote)
// @Param        q             query     string    false  "Search title and description"
// @Param        page          query     int       false  "Page number"
// @Param        page_size     query     int       false  "Page size"
// @Success      200           {object}  response.Response{data=response.Page}
// @Failure      400           {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) Search(c *gin.Context) {
	filter, err := parseJobFilter(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, total, err := h.jobUC.Search(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	filter.Normalize()
	response.Success(c, http.StatusOK, "Jobs retrieved", response.Page{
		Items:    jobs,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    total,
	})
}

func parseJobFilter(c *gin.Context) (domain.JobFilter, error) {
	filter := domain.JobFilter{
		Tags:       c.QueryArray("tag"),
		ModeOfWork: domain.WorkMode(c.Query("mode_of_work")),
		Query:      c.Query("q"),
	}

	fields := map[string]string{}
	intQuery := func(name string) int {
		raw := c.Query(name)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			fields[name] = "Enter a positive whole number."
			return 0
		}
		return n
	}
	filter.Page = intQuery("page")
	filter.PageSize = intQuery("page_size")

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			fields["category_id"] = "Enter a valid category id."
		} else {
			filter.CategoryID = &id
		}
	}

	if len(fields) > 0 {
		return filter, apperror.Validation(fields)
	}
	return filter, nil
}

// GetDetails godoc
// @Summary      Job posting detail
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Update godoc
// @Summary      Update a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int                true  "Job id"
// @Param        job  body      domain.JobPosting  true  "Job posting"
// @Success      200  {object}  response.Response{data=domain.JobPosting}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobPosting
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	job, err := h.jobUC.UpdateJob(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job posting
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}
