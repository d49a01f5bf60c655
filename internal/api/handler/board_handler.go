package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/api/middleware"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// maxImageBytes caps board image uploads at 4 MiB.
const maxImageBytes = 4 << 20

// BoardHandler handles HTTP requests for the community board.
type BoardHandler struct {
	service ports.BoardService
}

func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

// postInput reads the multipart form: title, body, and an optional image part.
func postInput(c echo.Context) (ports.BoardPostInput, error) {
	in := ports.BoardPostInput{
		Title: c.FormValue("title"),
		Body:  c.FormValue("body"),
	}

	// A missing image part means keep (or omit) the image.
	fh, err := c.FormFile("image")
	if err != nil {
		return in, nil
	}
	if fh.Size > maxImageBytes {
		return in, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	f, err := fh.Open()
	if err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
	if err != nil {
		return in, echo.NewHTTPError(http.StatusBadRequest, "unreadable image")
	}
	if len(data) > maxImageBytes {
		return in, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	in.Image = &ports.PhotoUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}
	return in, nil
}

// CreatePost handles POST /v1/board/posts.
//
// @Summary      Create a board post
// @Tags         board
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title  formData  string  true   "Title"
// @Param        body   formData  string  true   "Body"
// @Param        image  formData  file    false  "Attached image"
// @Success      201    {object}  domain.BoardPost
// @Failure      403    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Router       /v1/board/posts [post]
func (h *BoardHandler) CreatePost(c echo.Context) error {
	in, err := postInput(c)
	if err != nil {
		return err
	}
	if in.Title == "" || in.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and body are required")
	}

	post, err := h.service.CreatePost(c.Request().Context(), middleware.ActorID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PUT /v1/board/posts/:id.
//
// @Summary      Edit a board post
// @Tags         board
// @Accept       mpfd
// @Security     BearerAuth
// @Param        id     path      string  true   "Post id"
// @Param        title  formData  string  true   "Title"
// @Param        body   formData  string  true   "Body"
// @Param        image  formData  file    false  "Replacement image"
// @Success      204    "No Content"
// @Router       /v1/board/posts/{id} [put]
func (h *BoardHandler) UpdatePost(c echo.Context) error {
	in, err := postInput(c)
	if err != nil {
		return err
	}
	if in.Title == "" || in.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and body are required")
	}

	if err := h.service.UpdatePost(c.Request().Context(), middleware.ActorID(c), c.Param("id"), in); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost handles DELETE /v1/board/posts/:id. Comments go with the post.
//
// @Summary      Delete a board post and its comments
// @Tags         board
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      204  "No Content"
// @Router       /v1/board/posts/{id} [delete]
func (h *BoardHandler) DeletePost(c echo.Context) error {
	if err := h.service.DeletePost(c.Request().Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

// ToggleLike handles POST /v1/board/posts/:id/like.
//
// @Summary      Toggle a like on a board post
// @Tags         board
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  likeResponse
// @Router       /v1/board/posts/{id}/like [post]
func (h *BoardHandler) ToggleLike(c echo.Context) error {
	liked, err := h.service.ToggleLike(c.Request().Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: liked})
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreateComment handles POST /v1/board/posts/:id/comments.
//
// @Summary      Comment on a board post
// @Tags         board
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Post id"
// @Param        body  body  commentRequest  true  "Comment text"
// @Success      201   {object}  domain.BoardComment
// @Router       /v1/board/posts/{id}/comments [post]
func (h *BoardHandler) CreateComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.service.CreateComment(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment handles PUT /v1/board/comments/:id.
//
// @Summary      Edit a comment
// @Tags         board
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string          true  "Comment id"
// @Param        body  body  commentRequest  true  "Comment text"
// @Success      204   "No Content"
// @Router       /v1/board/comments/{id} [put]
func (h *BoardHandler) UpdateComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateComment(c.Request().Context(), middleware.ActorID(c), c.Param("id"), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteComment handles DELETE /v1/board/comments/:id.
//
// @Summary      Delete a comment
// @Tags         board
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment id"
// @Success      204  "No Content"
// @Router       /v1/board/comments/{id} [delete]
func (h *BoardHandler) DeleteComment(c echo.Context) error {
	if err := h.service.DeleteComment(c.Request().Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
