package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// InteractionRepository implements ports.InteractionRepository using MongoDB.
// The collection is append-only; no update or delete path exists.
type InteractionRepository struct {
	col *mongo.Collection
}

func NewInteractionRepository(db *mongo.Database) *InteractionRepository {
	return &InteractionRepository{col: db.Collection(collectionInteractions)}
}

// Append inserts a new interaction record.
func (r *InteractionRepository) Append(ctx context.Context, in *domain.Interaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	record := *in
	record.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}
