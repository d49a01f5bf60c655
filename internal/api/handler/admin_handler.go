package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// AdminHandler handles the staff moderation endpoints.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type flagRequest struct {
	Flag  string `json:"flag" validate:"required,oneof=pinned suspicious closed verified"`
	Value bool   `json:"value"`
}

// SetJobFlag handles PATCH /v1/admin/jobs/:id/flags.
//
// @Summary      Toggle a job posting flag
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Job id"
// @Param        body  body  flagRequest  true  "Flag and value"
// @Success      204   "No Content"
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/jobs/{id}/flags [patch]
func (h *AdminHandler) SetJobFlag(c echo.Context) error {
	var req flagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.SetJobFlag(c.Request().Context(), middleware.ActorID(c), c.Param("id"), ports.PostingFlag(req.Flag), req.Value)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetHelperFlag handles PATCH /v1/admin/helpers/:id/flags.
//
// @Summary      Toggle a helper profile flag
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "Profile id"
// @Param        body  body  flagRequest  true  "Flag and value"
// @Success      204   "No Content"
// @Router       /v1/admin/helpers/{id}/flags [patch]
func (h *AdminHandler) SetHelperFlag(c echo.Context) error {
	var req flagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.SetHelperFlag(c.Request().Context(), middleware.ActorID(c), c.Param("id"), ports.PostingFlag(req.Flag), req.Value)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type pinRequest struct {
	Pinned bool `json:"pinned"`
}

// PinBoardPost handles PATCH /v1/admin/board/posts/:id/pin.
//
// @Summary      Pin or unpin a board post
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string      true  "Post id"
// @Param        body  body  pinRequest  true  "Pin state"
// @Success      204   "No Content"
// @Router       /v1/admin/board/posts/{id}/pin [patch]
func (h *AdminHandler) PinBoardPost(c echo.Context) error {
	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetBoardPostPinned(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.Pinned)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Moderator Member"`
}

// SetUserRole handles PATCH /v1/admin/users/:id/role.
//
// @Summary      Change a user's role
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string       true  "User id"
// @Param        body  body  roleRequest  true  "New role"
// @Success      204   "No Content"
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/users/{id}/role [patch]
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.SetUserRole(c.Request().Context(), middleware.ActorID(c), c.Param("id"), domain.UserRole(req.Role))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type restrictionRequest struct {
	Value bool `json:"value"`
}

// SetUserMuted handles PATCH /v1/admin/users/:id/mute.
//
// @Summary      Mute or unmute a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "User id"
// @Param        body  body  restrictionRequest  true  "Mute state"
// @Success      204   "No Content"
// @Router       /v1/admin/users/{id}/mute [patch]
func (h *AdminHandler) SetUserMuted(c echo.Context) error {
	var req restrictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetUserMuted(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.Value)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetUserFrozen handles PATCH /v1/admin/users/:id/freeze.
//
// @Summary      Freeze or unfreeze a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "User id"
// @Param        body  body  restrictionRequest  true  "Freeze state"
// @Success      204   "No Content"
// @Router       /v1/admin/users/{id}/freeze [patch]
func (h *AdminHandler) SetUserFrozen(c echo.Context) error {
	var req restrictionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetUserFrozen(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.Value)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type siteLockRequest struct {
	Locked bool `json:"locked"`
}

// SetSiteLocked handles PATCH /v1/admin/site/lock.
//
// @Summary      Lock or unlock the whole site
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  siteLockRequest  true  "Lock state"
// @Success      204   "No Content"
// @Router       /v1/admin/site/lock [patch]
func (h *AdminHandler) SetSiteLocked(c echo.Context) error {
	var req siteLockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.SetSiteLocked(c.Request().Context(), middleware.ActorID(c), req.Locked)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
