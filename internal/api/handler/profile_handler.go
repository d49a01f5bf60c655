package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the signed-in user's profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type personalityRequest struct {
	FavoriteMusic string `json:"favorite_music"`
	FavoriteBook  string `json:"favorite_book"`
	FavoriteMovie string `json:"favorite_movie"`
	Hobbies       string `json:"hobbies"`
	FavoriteFood  string `json:"favorite_food"`
	DislikedThing string `json:"disliked_thing"`
	IntroSentence string `json:"intro_sentence"`
}

type profileRequest struct {
	DisplayName string             `json:"display_name" validate:"required"`
	Mobile      string             `json:"mobile" validate:"required,thaimobile"`
	LineID      string             `json:"line_id"`
	Facebook    string             `json:"facebook"`
	Gender      string             `json:"gender"`
	Birthdate   string             `json:"birthdate"`
	Education   string             `json:"education_level"`
	Address     string             `json:"address"`
	Personality personalityRequest `json:"personality"`
}

// Update handles PUT /v1/profile.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  profileRequest  true  "Profile fields"
// @Success      204   "No Content"
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID := middleware.ActorID(c)
	err := h.service.UpdateProfile(c.Request().Context(), actorID, actorID, ports.ProfileInput{
		DisplayName: req.DisplayName,
		Mobile:      req.Mobile,
		LineID:      req.LineID,
		Facebook:    req.Facebook,
		Gender:      domain.Gender(req.Gender),
		Birthdate:   req.Birthdate,
		Education:   domain.EducationLevel(req.Education),
		Address:     req.Address,
		Personality: domain.Personality{
			FavoriteMusic: req.Personality.FavoriteMusic,
			FavoriteBook:  req.Personality.FavoriteBook,
			FavoriteMovie: req.Personality.FavoriteMovie,
			Hobbies:       req.Personality.Hobbies,
			FavoriteFood:  req.Personality.FavoriteFood,
			DislikedThing: req.Personality.DislikedThing,
			IntroSentence: req.Personality.IntroSentence,
		},
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type photoResponse struct {
	URL string `json:"url"`
}

// ReplacePhoto handles PUT /v1/profile/photo. The old photo is removed only
// after the new one is stored.
//
// @Summary      Replace profile photo
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        photo  formData  file  true  "New photo"
// @Success      200    {object}  photoResponse
// @Failure      400    {object}  map[string]string
// @Router       /v1/profile/photo [put]
func (h *ProfileHandler) ReplacePhoto(c echo.Context) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo is required")
	}
	if fh.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo too large")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable photo")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable photo")
	}
	if len(data) > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo too large")
	}

	url, err := h.service.ReplacePhoto(c.Request().Context(), middleware.ActorID(c), ports.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photoResponse{URL: url})
}
