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

// HelperRepository implements ports.HelperRepository using MongoDB.
type HelperRepository struct {
	col *mongo.Collection
}

func NewHelperRepository(db *mongo.Database) *HelperRepository {
	return &HelperRepository{col: db.Collection(collectionHelpers)}
}

// Create inserts a new helper profile.
func (r *HelperRepository) Create(ctx context.Context, h *domain.HelperProfile) (*domain.HelperProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *h
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.col.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert helper profile: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a helper profile by identifier.
func (r *HelperRepository) FindByID(ctx context.Context, id string) (*domain.HelperProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var h domain.HelperProfile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&h); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find helper profile: %w", err)
	}
	return &h, nil
}

// Update replaces the helper profile document.
func (r *HelperRepository) Update(ctx context.Context, h *domain.HelperProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		return fmt.Errorf("update helper profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the helper profile document.
func (r *HelperRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete helper profile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HelperRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	return r.setFlag(ctx, id, "is_pinned", pinned)
}

func (r *HelperRepository) SetSuspicious(ctx context.Context, id string, suspicious bool) error {
	return r.setFlag(ctx, id, "is_suspicious", suspicious)
}

func (r *HelperRepository) SetUnavailable(ctx context.Context, id string, unavailable bool) error {
	return r.setFlag(ctx, id, "is_unavailable", unavailable)
}

func (r *HelperRepository) SetVerifiedExperience(ctx context.Context, id string, verified bool) error {
	return r.setFlag(ctx, id, "verified_experience", verified)
}

// RegisterInterest adds the employer to the interested set and bumps the
// cached counter in a single update. The filter only matches when the employer
// is not yet in the set, so counter and set cannot drift and a repeat call is
// a no-op reported as added=false.
func (r *HelperRepository) RegisterInterest(ctx context.Context, profileID, employerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":            profileID,
		"interested_ids": bson.M{"$ne": employerID},
	}
	update := bson.M{
		"$addToSet": bson.M{"interested_ids": employerID},
		"$inc":      bson.M{"interested_count": 1},
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("register interest: %w", err)
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	// Not modified: either the employer is already interested or the profile
	// does not exist. Distinguish the two.
	count, err := r.col.CountDocuments(ctx, bson.M{"_id": profileID})
	if err != nil {
		return false, fmt.Errorf("register interest: %w", err)
	}
	if count == 0 {
		return false, domain.ErrNotFound
	}
	return false, nil
}

func (r *HelperRepository) setFlag(ctx context.Context, id, field string, value bool) error {
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
