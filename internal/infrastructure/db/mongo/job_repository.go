package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

// Create inserts a new job posting.
func (r *JobRepository) Create(ctx context.Context, j *domain.JobPosting) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *j
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a job posting by identifier.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var j domain.JobPosting
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &j, nil
}

// Update replaces the job document.
func (r *JobRepository) Update(ctx context.Context, j *domain.JobPosting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": j.ID}, j)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job document.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetPinned updates only the pin flag.
func (r *JobRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	return r.setFlag(ctx, id, "is_pinned", pinned)
}

// SetSuspicious updates only the warning flag.
func (r *JobRepository) SetSuspicious(ctx context.Context, id string, suspicious bool) error {
	return r.setFlag(ctx, id, "is_suspicious", suspicious)
}

// SetHired updates only the hired flag.
func (r *JobRepository) SetHired(ctx context.Context, id string, hired bool) error {
	return r.setFlag(ctx, id, "is_hired", hired)
}

func (r *JobRepository) setFlag(ctx context.Context, id, field string, value bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("set %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
