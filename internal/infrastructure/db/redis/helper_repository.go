package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// HelperRepository implements ports.HelperRepository on the snapshot store.
type HelperRepository struct {
	client *redis.Client
}

func NewHelperRepository(client *redis.Client) *HelperRepository {
	return &HelperRepository{client: client}
}

func (r *HelperRepository) Create(ctx context.Context, h *domain.HelperProfile) (*domain.HelperProfile, error) {
	created := *h
	created.ID = uuid.NewString()
	if err := putRecord(ctx, r.client, ports.ColHelperProfiles, created.ID, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *HelperRepository) FindByID(ctx context.Context, id string) (*domain.HelperProfile, error) {
	return getRecord[domain.HelperProfile](ctx, r.client, ports.ColHelperProfiles, id)
}

func (r *HelperRepository) Update(ctx context.Context, h *domain.HelperProfile) error {
	return updateRecord(ctx, r.client, ports.ColHelperProfiles, h.ID, h)
}

func (r *HelperRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.client, ports.ColHelperProfiles, id)
}

func (r *HelperRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	return mutateRecord(ctx, r.client, ports.ColHelperProfiles, id, func(h *domain.HelperProfile) (bool, error) {
		h.IsPinned = pinned
		return true, nil
	})
}

func (r *HelperRepository) SetSuspicious(ctx context.Context, id string, suspicious bool) error {
	return mutateRecord(ctx, r.client, ports.ColHelperProfiles, id, func(h *domain.HelperProfile) (bool, error) {
		h.IsSuspicious = suspicious
		return true, nil
	})
}

func (r *HelperRepository) SetUnavailable(ctx context.Context, id string, unavailable bool) error {
	return mutateRecord(ctx, r.client, ports.ColHelperProfiles, id, func(h *domain.HelperProfile) (bool, error) {
		h.IsUnavailable = unavailable
		return true, nil
	})
}

func (r *HelperRepository) SetVerifiedExperience(ctx context.Context, id string, verified bool) error {
	return mutateRecord(ctx, r.client, ports.ColHelperProfiles, id, func(h *domain.HelperProfile) (bool, error) {
		h.VerifiedExperience = verified
		return true, nil
	})
}

// RegisterInterest adds the employer to the interested set and bumps the
// cached counter in one optimistic transaction. A repeat call leaves the
// record untouched and reports added=false.
func (r *HelperRepository) RegisterInterest(ctx context.Context, profileID, employerID string) (bool, error) {
	added := false
	err := mutateRecord(ctx, r.client, ports.ColHelperProfiles, profileID, func(h *domain.HelperProfile) (bool, error) {
		for _, id := range h.InterestedIDs {
			if id == employerID {
				return false, nil
			}
		}
		h.InterestedIDs = append(h.InterestedIDs, employerID)
		h.InterestedCount = len(h.InterestedIDs)
		added = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
