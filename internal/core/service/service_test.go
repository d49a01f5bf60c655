package service

// Shared in-memory stubs for the service tests. Each stub implements the
// corresponding repository port over a map, cloning on store so tests cannot
// alias internal state.

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/store"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func newTestFilter() *moderation.Filter {
	return moderation.NewFilter(moderation.DefaultBlockedTerms)
}

// seedStore loads the given users, marks every collection ready, and leaves
// the site unlocked.
func seedStore(users ...domain.User) *store.Store {
	st := store.New()
	st.ReplaceUsers(users)
	st.ReplaceJobs(nil)
	st.ReplaceHelperProfiles(nil)
	st.ReplaceInteractions(nil)
	st.ReplaceBoardPosts(nil)
	st.ReplaceBoardComments(nil)
	st.ReplaceSiteConfig(&domain.SiteConfig{ID: domain.SiteConfigID})
	return st
}

func memberUser(id string) domain.User {
	return domain.User{
		ID:       id,
		Username: "user_" + id,
		Role:     domain.RoleMember,
		Mobile:   "0812345678",
	}
}

func adminUser(id string) domain.User {
	u := memberUser(id)
	u.Role = domain.RoleAdmin
	return u
}

func moderatorUser(id string) domain.User {
	u := memberUser(id)
	u.Role = domain.RoleModerator
	return u
}

// ---------------------------------------------------------------------------
// User repository stub
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID map[string]*domain.User
	seq  int
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for i := range users {
		u := users[i]
		r.byID[u.ID] = &u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.UserRole) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetMuted(_ context.Context, id string, muted bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsMuted = muted
	return nil
}

func (r *stubUserRepo) SetFrozen(_ context.Context, id string, frozen bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsFrozen = frozen
	return nil
}

// ---------------------------------------------------------------------------
// Job repository stub
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	byID map[string]*domain.JobPosting
	seq  int
}

func newStubJobRepo(jobs ...domain.JobPosting) *stubJobRepo {
	r := &stubJobRepo{byID: make(map[string]*domain.JobPosting)}
	for i := range jobs {
		j := jobs[i]
		r.byID[j.ID] = &j
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.JobPosting) (*domain.JobPosting, error) {
	r.seq++
	clone := *j
	clone.ID = fmt.Sprintf("job-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.JobPosting, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) Update(_ context.Context, j *domain.JobPosting) error {
	if _, ok := r.byID[j.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *j
	r.byID[j.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubJobRepo) setFlag(id string, set func(*domain.JobPosting)) error {
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	set(j)
	return nil
}

func (r *stubJobRepo) SetPinned(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(j *domain.JobPosting) { j.IsPinned = v })
}

func (r *stubJobRepo) SetSuspicious(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(j *domain.JobPosting) { j.IsSuspicious = v })
}

func (r *stubJobRepo) SetHired(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(j *domain.JobPosting) { j.IsHired = v })
}

// ---------------------------------------------------------------------------
// Helper repository stub
// ---------------------------------------------------------------------------

type stubHelperRepo struct {
	byID map[string]*domain.HelperProfile
	seq  int
}

func newStubHelperRepo(profiles ...domain.HelperProfile) *stubHelperRepo {
	r := &stubHelperRepo{byID: make(map[string]*domain.HelperProfile)}
	for i := range profiles {
		h := profiles[i]
		r.byID[h.ID] = &h
	}
	return r
}

func (r *stubHelperRepo) Create(_ context.Context, h *domain.HelperProfile) (*domain.HelperProfile, error) {
	r.seq++
	clone := *h
	clone.ID = fmt.Sprintf("helper-%d", r.seq)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubHelperRepo) FindByID(_ context.Context, id string) (*domain.HelperProfile, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *h
	clone.InterestedIDs = append([]string(nil), h.InterestedIDs...)
	return &clone, nil
}

func (r *stubHelperRepo) Update(_ context.Context, h *domain.HelperProfile) error {
	if _, ok := r.byID[h.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *h
	r.byID[h.ID] = &clone
	return nil
}

func (r *stubHelperRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubHelperRepo) setFlag(id string, set func(*domain.HelperProfile)) error {
	h, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	set(h)
	return nil
}

func (r *stubHelperRepo) SetPinned(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(h *domain.HelperProfile) { h.IsPinned = v })
}

func (r *stubHelperRepo) SetSuspicious(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(h *domain.HelperProfile) { h.IsSuspicious = v })
}

func (r *stubHelperRepo) SetUnavailable(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(h *domain.HelperProfile) { h.IsUnavailable = v })
}

func (r *stubHelperRepo) SetVerifiedExperience(_ context.Context, id string, v bool) error {
	return r.setFlag(id, func(h *domain.HelperProfile) { h.VerifiedExperience = v })
}

func (r *stubHelperRepo) RegisterInterest(_ context.Context, profileID, employerID string) (bool, error) {
	h, ok := r.byID[profileID]
	if !ok {
		return false, domain.ErrNotFound
	}
	for _, id := range h.InterestedIDs {
		if id == employerID {
			return false, nil
		}
	}
	h.InterestedIDs = append(h.InterestedIDs, employerID)
	h.InterestedCount = len(h.InterestedIDs)
	return true, nil
}

// ---------------------------------------------------------------------------
// Interaction repository stub
// ---------------------------------------------------------------------------

type stubInteractionRepo struct {
	entries []domain.Interaction
}

func (r *stubInteractionRepo) Append(_ context.Context, in *domain.Interaction) error {
	clone := *in
	clone.ID = fmt.Sprintf("in-%d", len(r.entries)+1)
	r.entries = append(r.entries, clone)
	return nil
}

// ---------------------------------------------------------------------------
// Board repository stub
// ---------------------------------------------------------------------------

type stubBoardRepo struct {
	posts    map[string]*domain.BoardPost
	comments map[string]*domain.BoardComment
	seq      int
}

func newStubBoardRepo() *stubBoardRepo {
	return &stubBoardRepo{
		posts:    make(map[string]*domain.BoardPost),
		comments: make(map[string]*domain.BoardComment),
	}
}

func (r *stubBoardRepo) CreatePost(_ context.Context, p *domain.BoardPost) (*domain.BoardPost, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("post-%d", r.seq)
	r.posts[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBoardRepo) FindPostByID(_ context.Context, id string) (*domain.BoardPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	clone.Likes = append([]string(nil), p.Likes...)
	return &clone, nil
}

func (r *stubBoardRepo) UpdatePost(_ context.Context, p *domain.BoardPost) error {
	if _, ok := r.posts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *stubBoardRepo) DeletePostWithComments(_ context.Context, postID string) error {
	if _, ok := r.posts[postID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, postID)
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *stubBoardRepo) SetPostPinned(_ context.Context, id string, pinned bool) error {
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsPinned = pinned
	return nil
}

func (r *stubBoardRepo) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	p, ok := r.posts[postID]
	if !ok {
		return false, domain.ErrNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return false, nil
		}
	}
	p.Likes = append(p.Likes, userID)
	return true, nil
}

func (r *stubBoardRepo) CreateComment(_ context.Context, c *domain.BoardComment) (*domain.BoardComment, error) {
	r.seq++
	clone := *c
	clone.ID = fmt.Sprintf("comment-%d", r.seq)
	r.comments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBoardRepo) FindCommentByID(_ context.Context, id string) (*domain.BoardComment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubBoardRepo) UpdateComment(_ context.Context, c *domain.BoardComment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubBoardRepo) DeleteComment(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

// ---------------------------------------------------------------------------
// Config repository stub
// ---------------------------------------------------------------------------

type lockCall struct {
	locked  bool
	message string
}

type stubConfigRepo struct {
	cfg       *domain.SiteConfig
	lockCalls []lockCall
}

func (r *stubConfigRepo) Get(_ context.Context) (*domain.SiteConfig, error) {
	if r.cfg == nil {
		return nil, domain.ErrNotFound
	}
	clone := *r.cfg
	return &clone, nil
}

func (r *stubConfigRepo) EnsureDefault(_ context.Context) error {
	if r.cfg == nil {
		r.cfg = &domain.SiteConfig{
			ID:                 domain.SiteConfigID,
			MaintenanceMessage: domain.DefaultMaintenanceMessage,
		}
	}
	return nil
}

func (r *stubConfigRepo) SetLocked(_ context.Context, locked bool, message string) error {
	r.lockCalls = append(r.lockCalls, lockCall{locked: locked, message: message})
	r.cfg = &domain.SiteConfig{
		ID:                 domain.SiteConfigID,
		IsSiteLocked:       locked,
		MaintenanceMessage: message,
	}
	return nil
}

// ---------------------------------------------------------------------------
// Blob store stub
// ---------------------------------------------------------------------------

// stubBlobStore records upload/delete operations in order so tests can assert
// upload-before-delete.
type stubBlobStore struct {
	ops      []string
	failNext error
}

func (b *stubBlobStore) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return "", err
	}
	b.ops = append(b.ops, "upload:"+key)
	return fmt.Sprintf("https://blob.test/%s", key), nil
}

func (b *stubBlobStore) Delete(_ context.Context, url string) error {
	b.ops = append(b.ops, "delete:"+url)
	return nil
}
