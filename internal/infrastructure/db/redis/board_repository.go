package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// BoardRepository implements ports.BoardRepository on the snapshot store. The
// cascade delete watches both hashes and removes the post and its comments in
// one MULTI block.
type BoardRepository struct {
	client *redis.Client
}

func NewBoardRepository(client *redis.Client) *BoardRepository {
	return &BoardRepository{client: client}
}

func (r *BoardRepository) CreatePost(ctx context.Context, p *domain.BoardPost) (*domain.BoardPost, error) {
	created := *p
	created.ID = uuid.NewString()
	if created.Likes == nil {
		created.Likes = []string{}
	}
	if err := putRecord(ctx, r.client, ports.ColBoardPosts, created.ID, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *BoardRepository) FindPostByID(ctx context.Context, id string) (*domain.BoardPost, error) {
	return getRecord[domain.BoardPost](ctx, r.client, ports.ColBoardPosts, id)
}

func (r *BoardRepository) UpdatePost(ctx context.Context, p *domain.BoardPost) error {
	return updateRecord(ctx, r.client, ports.ColBoardPosts, p.ID, p)
}

// DeletePostWithComments removes the post and every comment referencing it in
// one transaction.
func (r *BoardRepository) DeletePostWithComments(ctx context.Context, postID string) error {
	postsKey := hashKey(ports.ColBoardPosts)
	commentsKey := hashKey(ports.ColBoardComments)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, postsKey, postID).Result()
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}

		all, err := tx.HGetAll(ctx, commentsKey).Result()
		if err != nil {
			return err
		}
		var doomed []string
		for id, raw := range all {
			var c domain.BoardComment
			if err := json.Unmarshal([]byte(raw), &c); err != nil {
				return fmt.Errorf("decode comment %s: %w", id, err)
			}
			if c.PostID == postID {
				doomed = append(doomed, id)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, postsKey, postID)
			if len(doomed) > 0 {
				pipe.HDel(ctx, commentsKey, doomed...)
			}
			return nil
		})
		return err
	}, postsKey, commentsKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete board post: %w", err)
	}

	if err := notify(ctx, r.client, ports.ColBoardPosts); err != nil {
		return err
	}
	return notify(ctx, r.client, ports.ColBoardComments)
}

func (r *BoardRepository) SetPostPinned(ctx context.Context, id string, pinned bool) error {
	return mutateRecord(ctx, r.client, ports.ColBoardPosts, id, func(p *domain.BoardPost) (bool, error) {
		p.IsPinned = pinned
		return true, nil
	})
}

// ToggleLike adds or removes the user's id in the like set.
func (r *BoardRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	liked := false
	err := mutateRecord(ctx, r.client, ports.ColBoardPosts, postID, func(p *domain.BoardPost) (bool, error) {
		for i, id := range p.Likes {
			if id == userID {
				p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
				return true, nil
			}
		}
		p.Likes = append(p.Likes, userID)
		liked = true
		return true, nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *BoardRepository) CreateComment(ctx context.Context, c *domain.BoardComment) (*domain.BoardComment, error) {
	created := *c
	created.ID = uuid.NewString()
	if err := putRecord(ctx, r.client, ports.ColBoardComments, created.ID, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *BoardRepository) FindCommentByID(ctx context.Context, id string) (*domain.BoardComment, error) {
	return getRecord[domain.BoardComment](ctx, r.client, ports.ColBoardComments, id)
}

func (r *BoardRepository) UpdateComment(ctx context.Context, c *domain.BoardComment) error {
	return updateRecord(ctx, r.client, ports.ColBoardComments, c.ID, c)
}

func (r *BoardRepository) DeleteComment(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.client, ports.ColBoardComments, id)
}
