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

// BoardRepository implements ports.BoardRepository using MongoDB. The cascade
// delete runs inside a session transaction so the post and its comments go
// together or not at all.
type BoardRepository struct {
	client   *mongo.Client
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewBoardRepository(client *mongo.Client, db *mongo.Database) *BoardRepository {
	return &BoardRepository{
		client:   client,
		posts:    db.Collection(collectionBoardPosts),
		comments: db.Collection(collectionBoardComments),
	}
}

// CreatePost inserts a new board post.
func (r *BoardRepository) CreatePost(ctx context.Context, p *domain.BoardPost) (*domain.BoardPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *p
	created.ID = primitive.NewObjectID().Hex()
	if created.Likes == nil {
		created.Likes = []string{}
	}
	if _, err := r.posts.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert board post: %w", err)
	}
	return &created, nil
}

// FindPostByID retrieves a board post by identifier.
func (r *BoardRepository) FindPostByID(ctx context.Context, id string) (*domain.BoardPost, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.BoardPost
	if err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find board post: %w", err)
	}
	return &p, nil
}

// UpdatePost replaces the board post document.
func (r *BoardRepository) UpdatePost(ctx context.Context, p *domain.BoardPost) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update board post: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeletePostWithComments removes the post and every comment referencing it in
// one transaction.
func (r *BoardRepository) DeletePostWithComments(ctx context.Context, postID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.posts.DeleteOne(sc, bson.M{"_id": postID})
		if err != nil {
			return nil, err
		}
		if res.DeletedCount == 0 {
			return nil, domain.ErrNotFound
		}
		if _, err := r.comments.DeleteMany(sc, bson.M{"post_id": postID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete board post: %w", err)
	}
	return nil
}

// SetPostPinned updates only the pin flag.
func (r *BoardRepository) SetPostPinned(ctx context.Context, id string, pinned bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_pinned": pinned}})
	if err != nil {
		return fmt.Errorf("set post pinned: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ToggleLike adds the user's id to the like set, or removes it when already
// present. The add uses a filter excluding the user so the two conditional
// updates cannot both apply.
func (r *BoardRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	res, err = r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, fmt.Errorf("toggle like: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrNotFound
	}
	return false, nil
}

// CreateComment inserts a new comment.
func (r *BoardRepository) CreateComment(ctx context.Context, c *domain.BoardComment) (*domain.BoardComment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *c
	created.ID = primitive.NewObjectID().Hex()
	if _, err := r.comments.InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &created, nil
}

// FindCommentByID retrieves a comment by identifier.
func (r *BoardRepository) FindCommentByID(ctx context.Context, id string) (*domain.BoardComment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.BoardComment
	if err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

// UpdateComment replaces the comment document.
func (r *BoardRepository) UpdateComment(ctx context.Context, c *domain.BoardComment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.comments.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteComment removes a single comment.
func (r *BoardRepository) DeleteComment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
