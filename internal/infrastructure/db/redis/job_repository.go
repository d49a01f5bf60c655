package redis

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// JobRepository implements ports.JobRepository on the snapshot store.
type JobRepository struct {
	client *redis.Client
}

func NewJobRepository(client *redis.Client) *JobRepository {
	return &JobRepository{client: client}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.JobPosting) (*domain.JobPosting, error) {
	created := *j
	created.ID = uuid.NewString()
	if err := putRecord(ctx, r.client, ports.ColJobs, created.ID, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	return getRecord[domain.JobPosting](ctx, r.client, ports.ColJobs, id)
}

func (r *JobRepository) Update(ctx context.Context, j *domain.JobPosting) error {
	return updateRecord(ctx, r.client, ports.ColJobs, j.ID, j)
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.client, ports.ColJobs, id)
}

func (r *JobRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	return mutateRecord(ctx, r.client, ports.ColJobs, id, func(j *domain.JobPosting) (bool, error) {
		j.IsPinned = pinned
		return true, nil
	})
}

func (r *JobRepository) SetSuspicious(ctx context.Context, id string, suspicious bool) error {
	return mutateRecord(ctx, r.client, ports.ColJobs, id, func(j *domain.JobPosting) (bool, error) {
		j.IsSuspicious = suspicious
		return true, nil
	})
}

func (r *JobRepository) SetHired(ctx context.Context, id string, hired bool) error {
	return mutateRecord(ctx, r.client, ports.ColJobs, id, func(j *domain.JobPosting) (bool, error) {
		j.IsHired = hired
		return true, nil
	})
}
