package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// ActorBinder attaches and detaches the signed-in actor on the subscription
// coordinator.
type ActorBinder interface {
	BindActor(ctx context.Context, actorID string) error
	UnbindActor()
}

type AuthHandler struct {
	authService ports.AuthService
	binder      ActorBinder
}

func NewAuthHandler(authService ports.AuthService, binder ActorBinder) *AuthHandler {
	return &AuthHandler{authService: authService, binder: binder}
}

type registerRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
	Username    string `json:"username" validate:"required,min=3"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Mobile      string `json:"mobile" validate:"required,thaimobile"`
	LineID      string `json:"line_id"`
	Facebook    string `json:"facebook"`
	Gender      string `json:"gender"`
	Birthdate   string `json:"birthdate"`
	Education   string `json:"education_level"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		DisplayName: req.DisplayName,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Mobile:      req.Mobile,
		LineID:      req.LineID,
		Facebook:    req.Facebook,
		Gender:      domain.Gender(req.Gender),
		Birthdate:   req.Birthdate,
		Education:   domain.EducationLevel(req.Education),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates and binds the actor to the subscription coordinator.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := h.binder.BindActor(c.Request().Context(), user.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout detaches the actor identity. Collection data stays loaded.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204  "No Content"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.binder.UnbindActor()
	return c.NoContent(http.StatusNoContent)
}
