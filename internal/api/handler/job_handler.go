package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type jobRequest struct {
	Title            string `json:"title" validate:"required"`
	Location         string `json:"location" validate:"required"`
	DateTime         string `json:"date_time"`
	Payment          string `json:"payment" validate:"required"`
	Description      string `json:"description" validate:"required"`
	DesiredAgeStart  int    `json:"desired_age_start"`
	DesiredAgeEnd    int    `json:"desired_age_end"`
	PreferredGender  string `json:"preferred_gender"`
	DesiredEducation string `json:"desired_education"`
	DateNeededFrom   string `json:"date_needed_from"`
	DateNeededTo     string `json:"date_needed_to"`
	TimeNeededStart  string `json:"time_needed_start"`
	TimeNeededEnd    string `json:"time_needed_end"`
}

func (r *jobRequest) toInput() ports.JobInput {
	return ports.JobInput{
		Title:            r.Title,
		Location:         r.Location,
		DateTime:         r.DateTime,
		Payment:          r.Payment,
		Description:      r.Description,
		DesiredAgeStart:  r.DesiredAgeStart,
		DesiredAgeEnd:    r.DesiredAgeEnd,
		PreferredGender:  domain.Gender(r.PreferredGender),
		DesiredEducation: domain.EducationLevel(r.DesiredEducation),
		DateNeededFrom:   r.DateNeededFrom,
		DateNeededTo:     r.DateNeededTo,
		TimeNeededStart:  r.TimeNeededStart,
		TimeNeededEnd:    r.TimeNeededEnd,
	}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job details"
// @Success      201   {object}  domain.JobPosting
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.service.Create(c.Request().Context(), middleware.ActorID(c), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update handles PUT /v1/jobs/:id.
//
// @Summary      Edit a job
// @Tags         jobs
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string      true  "Job id"
// @Param        body  body  jobRequest  true  "Job details"
// @Success      204   "No Content"
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.toInput()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/jobs/:id.
//
// @Summary      Delete a job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id  path  string  true  "Job id"
// @Success      204  "No Content"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
