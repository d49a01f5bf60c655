package ports

import (
	"context"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	SetRole(ctx context.Context, id string, role domain.UserRole) error
	SetMuted(ctx context.Context, id string, muted bool) error
	SetFrozen(ctx context.Context, id string, frozen bool) error
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	Create(ctx context.Context, j *domain.JobPosting) (*domain.JobPosting, error)
	FindByID(ctx context.Context, id string) (*domain.JobPosting, error)
	Update(ctx context.Context, j *domain.JobPosting) error
	Delete(ctx context.Context, id string) error
	SetPinned(ctx context.Context, id string, pinned bool) error
	SetSuspicious(ctx context.Context, id string, suspicious bool) error
	SetHired(ctx context.Context, id string, hired bool) error
}

// HelperRepository defines persistence operations for helper profiles.
//
// RegisterInterest must adjust the interested set and its cached counter as
// one atomic unit and report whether the employer was newly added. Calling it
// twice for the same pair adds the employer once; the second call reports
// added=false and changes nothing.
type HelperRepository interface {
	Create(ctx context.Context, h *domain.HelperProfile) (*domain.HelperProfile, error)
	FindByID(ctx context.Context, id string) (*domain.HelperProfile, error)
	Update(ctx context.Context, h *domain.HelperProfile) error
	Delete(ctx context.Context, id string) error
	SetPinned(ctx context.Context, id string, pinned bool) error
	SetSuspicious(ctx context.Context, id string, suspicious bool) error
	SetUnavailable(ctx context.Context, id string, unavailable bool) error
	SetVerifiedExperience(ctx context.Context, id string, verified bool) error
	RegisterInterest(ctx context.Context, profileID, employerID string) (added bool, err error)
}

// InteractionRepository is the append-only contact log. Records are never
// mutated or deleted by normal flow.
type InteractionRepository interface {
	Append(ctx context.Context, in *domain.Interaction) error
}

// BoardRepository defines persistence operations for board posts and comments.
//
// DeletePostWithComments removes the post and every comment referencing it as
// a single atomic unit; a partial delete that orphans comments is a
// consistency failure the implementation must prevent.
type BoardRepository interface {
	CreatePost(ctx context.Context, p *domain.BoardPost) (*domain.BoardPost, error)
	FindPostByID(ctx context.Context, id string) (*domain.BoardPost, error)
	UpdatePost(ctx context.Context, p *domain.BoardPost) error
	DeletePostWithComments(ctx context.Context, postID string) error
	SetPostPinned(ctx context.Context, id string, pinned bool) error
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, err error)

	CreateComment(ctx context.Context, c *domain.BoardComment) (*domain.BoardComment, error)
	FindCommentByID(ctx context.Context, id string) (*domain.BoardComment, error)
	UpdateComment(ctx context.Context, c *domain.BoardComment) error
	DeleteComment(ctx context.Context, id string) error
}

// ConfigRepository manages the site config singleton.
//
// EnsureDefault performs a conditional create: it writes safe defaults only
// when the singleton is absent, so two coordinators started concurrently
// cannot both overwrite it.
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.SiteConfig, error)
	EnsureDefault(ctx context.Context) error
	SetLocked(ctx context.Context, locked bool, message string) error
}

// BlobStore stores uploaded photos. Keys are derived from actor id plus
// timestamp to avoid collisions; a replaced photo is deleted only after the
// new object is confirmed.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, url string) error
}
