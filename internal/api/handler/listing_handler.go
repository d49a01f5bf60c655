package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hajobjah/marketplace/internal/core/derive"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// ListingHandler serves the read side: derived, sorted views computed from
// the in-memory entity store. Nothing here touches the backend directly.
type ListingHandler struct {
	store *store.Store
}

func NewListingHandler(st *store.Store) *ListingHandler {
	return &ListingHandler{store: st}
}

// ready fails with a retryable error until the collection's first snapshot
// has been applied. Loaded-and-empty is served normally.
func (h *ListingHandler) ready(cols ...ports.Collection) error {
	for _, col := range cols {
		if !h.store.Ready(col) {
			return fmt.Errorf("collection %s not loaded: %w", col, domain.ErrBackendUnavailable)
		}
	}
	return nil
}

type jobView struct {
	domain.JobPosting
	IsExpired bool `json:"is_expired"`
}

// ListJobs handles GET /v1/jobs.
//
// @Summary      List job postings, pinned first then newest
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   jobView
// @Failure      503  {object}  map[string]string
// @Router       /v1/jobs [get]
func (h *ListingHandler) ListJobs(c echo.Context) error {
	if err := h.ready(ports.ColJobs); err != nil {
		return err
	}
	now := time.Now()
	jobs := derive.SortJobs(h.store.Jobs())
	out := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobView{
			JobPosting: j,
			IsExpired:  derive.IsExpired(j.PostedAt, j.IsHired, now),
		})
	}
	return c.JSON(http.StatusOK, out)
}

type helperView struct {
	derive.EnrichedHelperProfile
	IsExpired bool `json:"is_expired"`
}

// ListHelpers handles GET /v1/helpers.
//
// @Summary      List helper profiles with display badges
// @Tags         helpers
// @Produce      json
// @Success      200  {array}   helperView
// @Failure      503  {object}  map[string]string
// @Router       /v1/helpers [get]
func (h *ListingHandler) ListHelpers(c echo.Context) error {
	if err := h.ready(ports.ColHelperProfiles, ports.ColUsers, ports.ColInteractions); err != nil {
		return err
	}
	now := time.Now()
	profiles := derive.SortHelperProfiles(h.store.HelperProfiles())
	enriched := derive.EnrichHelperProfiles(profiles, h.store.Users(), h.store.Interactions())
	out := make([]helperView, 0, len(enriched))
	for _, e := range enriched {
		out = append(out, helperView{
			EnrichedHelperProfile: e,
			IsExpired:             derive.IsExpired(e.PostedAt, e.IsUnavailable, now),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListBoardPosts handles GET /v1/board/posts.
//
// @Summary      List board posts with comment counts and author badges
// @Tags         board
// @Produce      json
// @Success      200  {array}   derive.EnrichedBoardPost
// @Failure      503  {object}  map[string]string
// @Router       /v1/board/posts [get]
func (h *ListingHandler) ListBoardPosts(c echo.Context) error {
	if err := h.ready(ports.ColBoardPosts, ports.ColBoardComments, ports.ColUsers); err != nil {
		return err
	}
	posts := derive.SortBoardPosts(h.store.BoardPosts())
	return c.JSON(http.StatusOK, derive.EnrichBoardPosts(posts, h.store.BoardComments(), h.store.Users()))
}

type boardPostDetail struct {
	Post     derive.EnrichedBoardPost     `json:"post"`
	Comments []derive.EnrichedBoardComment `json:"comments"`
}

// GetBoardPost handles GET /v1/board/posts/:id.
//
// @Summary      Get a board post with its comments
// @Tags         board
// @Produce      json
// @Param        id  path  string  true  "Post id"
// @Success      200  {object}  boardPostDetail
// @Failure      404  {object}  map[string]string
// @Router       /v1/board/posts/{id} [get]
func (h *ListingHandler) GetBoardPost(c echo.Context) error {
	if err := h.ready(ports.ColBoardPosts, ports.ColBoardComments, ports.ColUsers); err != nil {
		return err
	}
	post, ok := h.store.BoardPostByID(c.Param("id"))
	if !ok {
		return domain.ErrNotFound
	}

	posts := h.store.BoardPosts()
	users := h.store.Users()
	allComments := h.store.BoardComments()
	enrichedPost := derive.EnrichBoardPosts([]domain.BoardPost{post}, allComments, users)[0]

	var mine []domain.BoardComment
	for _, cm := range allComments {
		if cm.PostID == post.ID {
			mine = append(mine, cm)
		}
	}
	return c.JSON(http.StatusOK, boardPostDetail{
		Post:     enrichedPost,
		Comments: derive.EnrichBoardComments(mine, posts, users),
	})
}

type userView struct {
	domain.User
	Badge           domain.Badge `json:"badge"`
	ProfileComplete bool         `json:"profile_complete"`
}

// GetUser handles GET /v1/users/:id.
//
// @Summary      Get a user's public profile with display badges
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  userView
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *ListingHandler) GetUser(c echo.Context) error {
	if err := h.ready(ports.ColUsers, ports.ColBoardPosts, ports.ColBoardComments); err != nil {
		return err
	}
	u, ok := h.store.UserByID(c.Param("id"))
	if !ok {
		return domain.ErrNotFound
	}
	return c.JSON(http.StatusOK, userView{
		User:            u,
		Badge:           derive.DisplayBadge(&u, h.store.BoardPosts(), h.store.BoardComments()),
		ProfileComplete: derive.ProfileComplete(&u),
	})
}

type siteStatusView struct {
	IsSiteLocked       bool   `json:"is_site_locked"`
	MaintenanceMessage string `json:"maintenance_message,omitempty"`
}

// SiteStatus handles GET /v1/site/status.
//
// @Summary      Current site lock state
// @Tags         site
// @Produce      json
// @Success      200  {object}  siteStatusView
// @Router       /v1/site/status [get]
func (h *ListingHandler) SiteStatus(c echo.Context) error {
	cfg := h.store.SiteConfig()
	if cfg == nil {
		return c.JSON(http.StatusOK, siteStatusView{})
	}
	view := siteStatusView{IsSiteLocked: cfg.IsSiteLocked}
	if cfg.IsSiteLocked {
		view.MaintenanceMessage = cfg.MaintenanceMessage
	}
	return c.JSON(http.StatusOK, view)
}
