package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// HelperHandler handles HTTP requests for helper profiles.
type HelperHandler struct {
	service ports.HelperService
}

func NewHelperHandler(service ports.HelperService) *HelperHandler {
	return &HelperHandler{service: service}
}

type helperRequest struct {
	Title         string `json:"title" validate:"required"`
	Details       string `json:"details" validate:"required"`
	Area          string `json:"area" validate:"required"`
	Availability  string `json:"availability"`
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
}

func (r *helperRequest) toInput() ports.HelperInput {
	return ports.HelperInput{
		Title:         r.Title,
		Details:       r.Details,
		Area:          r.Area,
		Availability:  r.Availability,
		AvailableFrom: r.AvailableFrom,
		AvailableTo:   r.AvailableTo,
	}
}

// Create handles POST /v1/helpers.
//
// @Summary      Offer help
// @Tags         helpers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      helperRequest  true  "Profile details"
// @Success      201   {object}  domain.HelperProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/helpers [post]
func (h *HelperHandler) Create(c echo.Context) error {
	var req helperRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.Create(c.Request().Context(), middleware.ActorID(c), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profile)
}

// Update handles PUT /v1/helpers/:id.
//
// @Summary      Edit a helper profile
// @Tags         helpers
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string         true  "Profile id"
// @Param        body  body  helperRequest  true  "Profile details"
// @Success      204   "No Content"
// @Router       /v1/helpers/{id} [put]
func (h *HelperHandler) Update(c echo.Context) error {
	var req helperRequest
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

// Delete handles DELETE /v1/helpers/:id.
//
// @Summary      Delete a helper profile
// @Tags         helpers
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile id"
// @Success      204  "No Content"
// @Router       /v1/helpers/{id} [delete]
func (h *HelperHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterInterest handles POST /v1/helpers/:id/interest. Repeating the call
// for the same profile changes nothing and still returns 204.
//
// @Summary      Register interest in a helper
// @Tags         helpers
// @Security     BearerAuth
// @Param        id  path  string  true  "Profile id"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]string
// @Router       /v1/helpers/{id}/interest [post]
func (h *HelperHandler) RegisterInterest(c echo.Context) error {
	if err := h.service.RegisterInterest(c.Request().Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
