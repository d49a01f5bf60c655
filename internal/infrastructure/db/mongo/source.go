package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// Source implements ports.CollectionSource on top of MongoDB change streams.
// Each Changes call opens one stream; every event on the stream becomes a
// reload signal for the coordinator. The signal channel is closed when the
// stream dies so the coordinator resubscribes.
type Source struct {
	db  *mongo.Database
	log zerolog.Logger
}

func NewSource(db *mongo.Database, log zerolog.Logger) *Source {
	return &Source{db: db, log: log}
}

func (s *Source) collection(col ports.Collection) (*mongo.Collection, error) {
	switch col {
	case ports.ColUsers:
		return s.db.Collection(collectionUsers), nil
	case ports.ColJobs:
		return s.db.Collection(collectionJobs), nil
	case ports.ColHelperProfiles:
		return s.db.Collection(collectionHelpers), nil
	case ports.ColInteractions:
		return s.db.Collection(collectionInteractions), nil
	case ports.ColBoardPosts:
		return s.db.Collection(collectionBoardPosts), nil
	case ports.ColBoardComments:
		return s.db.Collection(collectionBoardComments), nil
	case ports.ColSiteConfig:
		return s.db.Collection(collectionConfig), nil
	}
	return nil, fmt.Errorf("unknown collection %q", col)
}

// Changes opens a change stream on the collection and forwards every event as
// a reload signal.
func (s *Source) Changes(ctx context.Context, col ports.Collection) (<-chan struct{}, error) {
	c, err := s.collection(col)
	if err != nil {
		return nil, err
	}

	stream, err := c.Watch(ctx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", col, err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			// Coalesce: a pending signal already forces a reload.
			select {
			case ch <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn().Err(err).Str("collection", string(col)).Msg("change stream closed")
		}
	}()
	return ch, nil
}

func (s *Source) Users(ctx context.Context) ([]domain.User, error) {
	return loadAll[domain.User](ctx, s.db.Collection(collectionUsers))
}

func (s *Source) Jobs(ctx context.Context) ([]domain.JobPosting, error) {
	return loadAll[domain.JobPosting](ctx, s.db.Collection(collectionJobs))
}

func (s *Source) HelperProfiles(ctx context.Context) ([]domain.HelperProfile, error) {
	return loadAll[domain.HelperProfile](ctx, s.db.Collection(collectionHelpers))
}

func (s *Source) Interactions(ctx context.Context) ([]domain.Interaction, error) {
	return loadAll[domain.Interaction](ctx, s.db.Collection(collectionInteractions))
}

func (s *Source) BoardPosts(ctx context.Context) ([]domain.BoardPost, error) {
	return loadAll[domain.BoardPost](ctx, s.db.Collection(collectionBoardPosts))
}

func (s *Source) BoardComments(ctx context.Context) ([]domain.BoardComment, error) {
	return loadAll[domain.BoardComment](ctx, s.db.Collection(collectionBoardComments))
}

func (s *Source) SiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cfg domain.SiteConfig
	if err := s.db.Collection(collectionConfig).FindOne(ctx, bson.M{"_id": domain.SiteConfigID}).Decode(&cfg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load site config: %w", err)
	}
	return &cfg, nil
}

func loadAll[T any](ctx context.Context, col *mongo.Collection) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	items := []T{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return items, nil
}
