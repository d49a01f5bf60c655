package ports

import (
	"context"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	DisplayName string
	Username    string
	Email       string
	Password    string
	Mobile      string
	LineID      string
	Facebook    string
	Gender      domain.Gender
	Birthdate   string
	Education   domain.EducationLevel
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
}

// ProfileInput carries the owner-editable user profile fields.
type ProfileInput struct {
	DisplayName string
	Mobile      string
	LineID      string
	Facebook    string
	Gender      domain.Gender
	Birthdate   string
	Education   domain.EducationLevel
	Address     string
	Personality domain.Personality
}

// PhotoUpload is a raw photo payload destined for blob storage.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProfileService covers user-profile mutation.
type ProfileService interface {
	UpdateProfile(ctx context.Context, actorID, targetID string, in ProfileInput) error
	ReplacePhoto(ctx context.Context, actorID string, upload PhotoUpload) (url string, err error)
}

// JobInput carries the owner-editable fields of a job posting. Contact is
// absent on purpose: the gateway rebuilds the snapshot string from the
// actor's current contact fields at write time.
type JobInput struct {
	Title            string
	Location         string
	DateTime         string
	Payment          string
	Description      string
	DesiredAgeStart  int
	DesiredAgeEnd    int
	PreferredGender  domain.Gender
	DesiredEducation domain.EducationLevel
	DateNeededFrom   string
	DateNeededTo     string
	TimeNeededStart  string
	TimeNeededEnd    string
}

// JobService is the write path for job postings.
type JobService interface {
	Create(ctx context.Context, actorID string, in JobInput) (*domain.JobPosting, error)
	Update(ctx context.Context, actorID, jobID string, in JobInput) error
	Delete(ctx context.Context, actorID, jobID string) error
}

// HelperInput carries the owner-editable fields of a helper profile.
type HelperInput struct {
	Title         string
	Details       string
	Area          string
	Availability  string
	AvailableFrom string
	AvailableTo   string
}

// HelperService is the write path for helper profiles, including the
// idempotent interest registration.
type HelperService interface {
	Create(ctx context.Context, actorID string, in HelperInput) (*domain.HelperProfile, error)
	Update(ctx context.Context, actorID, profileID string, in HelperInput) error
	Delete(ctx context.Context, actorID, profileID string) error
	RegisterInterest(ctx context.Context, actorID, profileID string) error
}

// BoardPostInput carries the editable fields of a board post.
type BoardPostInput struct {
	Title string
	Body  string
	Image *PhotoUpload // nil = keep current image
}

// BoardService is the write path for board posts and comments.
type BoardService interface {
	CreatePost(ctx context.Context, actorID string, in BoardPostInput) (*domain.BoardPost, error)
	UpdatePost(ctx context.Context, actorID, postID string, in BoardPostInput) error
	DeletePost(ctx context.Context, actorID, postID string) error
	ToggleLike(ctx context.Context, actorID, postID string) (liked bool, err error)
	CreateComment(ctx context.Context, actorID, postID, text string) (*domain.BoardComment, error)
	UpdateComment(ctx context.Context, actorID, commentID, text string) error
	DeleteComment(ctx context.Context, actorID, commentID string) error
}

// AdminService covers the moderation toggles reserved for staff.
type AdminService interface {
	SetJobFlag(ctx context.Context, actorID, jobID string, flag PostingFlag, value bool) error
	SetHelperFlag(ctx context.Context, actorID, profileID string, flag PostingFlag, value bool) error
	SetBoardPostPinned(ctx context.Context, actorID, postID string, pinned bool) error
	SetUserRole(ctx context.Context, actorID, targetID string, role domain.UserRole) error
	SetUserMuted(ctx context.Context, actorID, targetID string, muted bool) error
	SetUserFrozen(ctx context.Context, actorID, targetID string, frozen bool) error
	SetSiteLocked(ctx context.Context, actorID string, locked bool) error
}

// PostingFlag names an admin-toggleable posting attribute.
type PostingFlag string

const (
	FlagPinned     PostingFlag = "pinned"
	FlagSuspicious PostingFlag = "suspicious"
	FlagClosed     PostingFlag = "closed" // hired for jobs, unavailable for helpers
	FlagVerified   PostingFlag = "verified" // helper profiles only
)
