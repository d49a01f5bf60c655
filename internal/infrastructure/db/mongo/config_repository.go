package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// ConfigRepository implements ports.ConfigRepository using MongoDB. The site
// config is a singleton document with a fixed id.
type ConfigRepository struct {
	col *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{col: db.Collection(collectionConfig)}
}

// Get retrieves the config singleton.
func (r *ConfigRepository) Get(ctx context.Context) (*domain.SiteConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cfg domain.SiteConfig
	if err := r.col.FindOne(ctx, bson.M{"_id": domain.SiteConfigID}).Decode(&cfg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find site config: %w", err)
	}
	return &cfg, nil
}

// EnsureDefault creates the singleton with safe defaults when it is absent.
// The upsert with $setOnInsert leaves an existing document untouched, so two
// concurrent callers cannot clobber an admin's settings.
func (r *ConfigRepository) EnsureDefault(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": domain.SiteConfigID},
		bson.M{"$setOnInsert": bson.M{
			"is_site_locked":      false,
			"maintenance_message": domain.DefaultMaintenanceMessage,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("ensure site config: %w", err)
	}
	return nil
}

// SetLocked updates the lock state and maintenance message.
func (r *ConfigRepository) SetLocked(ctx context.Context, locked bool, message string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": domain.SiteConfigID},
		bson.M{"$set": bson.M{
			"is_site_locked":      locked,
			"maintenance_message": message,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("set site lock: %w", err)
	}
	return nil
}
