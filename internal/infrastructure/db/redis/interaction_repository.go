package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// InteractionRepository implements the append-only contact log on the
// snapshot store.
type InteractionRepository struct {
	client *redis.Client
}

func NewInteractionRepository(client *redis.Client) *InteractionRepository {
	return &InteractionRepository{client: client}
}

func (r *InteractionRepository) Append(ctx context.Context, in *domain.Interaction) error {
	record := *in
	record.ID = uuid.NewString()
	return putRecord(ctx, r.client, ports.ColInteractions, record.ID, &record)
}
