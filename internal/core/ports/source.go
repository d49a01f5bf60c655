package ports

import (
	"context"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// Collection identifies one of the tracked remote collections.
type Collection string

const (
	ColUsers          Collection = "users"
	ColJobs           Collection = "jobs"
	ColHelperProfiles Collection = "helperProfiles"
	ColInteractions   Collection = "interactions"
	ColBoardPosts     Collection = "webboardPosts"
	ColBoardComments  Collection = "webboardComments"
	ColSiteConfig     Collection = "config"
)

// Collections lists every tracked collection in subscription order.
var Collections = []Collection{
	ColUsers, ColJobs, ColHelperProfiles, ColInteractions,
	ColBoardPosts, ColBoardComments, ColSiteConfig,
}

// CollectionSource is the dual-backend abstraction behind the subscription
// coordinator: one implementation subscribes to the live backend, the other
// reads a locally persisted snapshot store. Both normalize their native
// timestamp representation to UTC time.Time at this boundary.
//
// Changes returns a channel that receives a signal whenever the collection
// may have changed; the coordinator reacts by reloading the full snapshot.
// The channel is closed when the underlying subscription is lost, which the
// coordinator treats as a transient error and retries.
type CollectionSource interface {
	Changes(ctx context.Context, col Collection) (<-chan struct{}, error)

	Users(ctx context.Context) ([]domain.User, error)
	Jobs(ctx context.Context) ([]domain.JobPosting, error)
	HelperProfiles(ctx context.Context) ([]domain.HelperProfile, error)
	Interactions(ctx context.Context) ([]domain.Interaction, error)
	BoardPosts(ctx context.Context) ([]domain.BoardPost, error)
	BoardComments(ctx context.Context) ([]domain.BoardComment, error)
	SiteConfig(ctx context.Context) (*domain.SiteConfig, error)
}
