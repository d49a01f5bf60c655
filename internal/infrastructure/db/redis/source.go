package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// Source implements ports.CollectionSource on the snapshot store. Change
// signals come from the pub/sub channel every repository write publishes to.
type Source struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewSource(client *redis.Client, log zerolog.Logger) *Source {
	return &Source{client: client, log: log}
}

// Changes subscribes to the collection's change channel. The signal channel
// closes when the subscription drops, which the coordinator treats as a
// transient error and retries.
func (s *Source) Changes(ctx context.Context, col ports.Collection) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, channel(col))
	// Receive forces the SUBSCRIBE round trip so a broken connection fails
	// here instead of silently dropping signals.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					s.log.Warn().Str("collection", string(col)).Msg("change subscription closed")
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}

func (s *Source) Users(ctx context.Context) ([]domain.User, error) {
	stored, err := loadAll[storedUser](ctx, s.client, ports.ColUsers)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(stored))
	for i := range stored {
		users = append(users, *stored[i].toDomain())
	}
	return users, nil
}

func (s *Source) Jobs(ctx context.Context) ([]domain.JobPosting, error) {
	return loadAll[domain.JobPosting](ctx, s.client, ports.ColJobs)
}

func (s *Source) HelperProfiles(ctx context.Context) ([]domain.HelperProfile, error) {
	return loadAll[domain.HelperProfile](ctx, s.client, ports.ColHelperProfiles)
}

func (s *Source) Interactions(ctx context.Context) ([]domain.Interaction, error) {
	return loadAll[domain.Interaction](ctx, s.client, ports.ColInteractions)
}

func (s *Source) BoardPosts(ctx context.Context) ([]domain.BoardPost, error) {
	return loadAll[domain.BoardPost](ctx, s.client, ports.ColBoardPosts)
}

func (s *Source) BoardComments(ctx context.Context) ([]domain.BoardComment, error) {
	return loadAll[domain.BoardComment](ctx, s.client, ports.ColBoardComments)
}

func (s *Source) SiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	return getRecord[domain.SiteConfig](ctx, s.client, ports.ColSiteConfig, domain.SiteConfigID)
}
