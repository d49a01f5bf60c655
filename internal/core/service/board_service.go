package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// BoardService is the write path for board posts and comments.
type BoardService struct {
	guard
	repo  ports.BoardRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewBoardService(
	repo ports.BoardRepository,
	blobs ports.BlobStore,
	st *store.Store,
	filter *moderation.Filter,
	log zerolog.Logger,
) *BoardService {
	return &BoardService{
		guard: guard{store: st, filter: filter},
		repo:  repo,
		blobs: blobs,
		log:   log,
	}
}

// CreatePost publishes a new board post, uploading the attached image first
// when one is provided.
func (s *BoardService) CreatePost(ctx context.Context, actorID string, in ports.BoardPostInput) (*domain.BoardPost, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return nil, err
	}
	if err := s.canWrite(actor, true); err != nil {
		return nil, err
	}
	if err := s.screen(in.Title, in.Body); err != nil {
		return nil, err
	}

	var imageURL string
	if in.Image != nil {
		imageURL, err = s.uploadImage(ctx, actor.ID, in.Image)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	post := &domain.BoardPost{
		Title:       in.Title,
		Body:        in.Body,
		ImageURL:    imageURL,
		OwnerID:     actor.ID,
		Username:    actor.Username,
		AuthorPhoto: actor.PhotoURL,
		Likes:       []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create board post")
		return nil, fmt.Errorf("create board post: %w", err)
	}
	s.log.Info().Str("post_id", created.ID).Str("owner_id", actor.ID).Msg("board post created")
	return created, nil
}

// UpdatePost edits a post. Owner, admin, or moderator (unless the author is
// an admin) may edit. A replaced image is uploaded before the old object is
// deleted, never the other way around.
func (s *BoardService) UpdatePost(ctx context.Context, actorID, postID string, in ports.BoardPostInput) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	if err := s.screen(in.Title, in.Body); err != nil {
		return err
	}

	existing, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.canModerateBoard(existing.OwnerID, actor); err != nil {
		return err
	}

	updated := *existing
	updated.Title = in.Title
	updated.Body = in.Body
	updated.AuthorPhoto = actor.PhotoURL
	updated.UpdatedAt = time.Now().UTC()

	var oldImage string
	if in.Image != nil {
		url, err := s.uploadImage(ctx, existing.OwnerID, in.Image)
		if err != nil {
			return err
		}
		oldImage = existing.ImageURL
		updated.ImageURL = url
	}

	if err := s.repo.UpdatePost(ctx, &updated); err != nil {
		return fmt.Errorf("update board post %s: %w", postID, err)
	}

	// New image is confirmed persisted; the old object can go now.
	if oldImage != "" && oldImage != updated.ImageURL {
		if err := s.blobs.Delete(ctx, oldImage); err != nil {
			s.log.Warn().Err(err).Str("url", oldImage).Msg("stale board image not deleted")
		}
	}
	s.log.Info().Str("post_id", postID).Str("actor_id", actor.ID).Msg("board post updated")
	return nil
}

// DeletePost removes a post and every one of its comments as one atomic unit.
func (s *BoardService) DeletePost(ctx context.Context, actorID, postID string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	existing, err := s.repo.FindPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.canModerateBoard(existing.OwnerID, actor); err != nil {
		return err
	}

	if err := s.repo.DeletePostWithComments(ctx, postID); err != nil {
		return fmt.Errorf("delete board post %s: %w", postID, err)
	}
	if existing.ImageURL != "" {
		if err := s.blobs.Delete(ctx, existing.ImageURL); err != nil {
			s.log.Warn().Err(err).Str("url", existing.ImageURL).Msg("board image not deleted")
		}
	}
	s.log.Info().Str("post_id", postID).Str("actor_id", actor.ID).Msg("board post deleted with comments")
	return nil
}

// ToggleLike adds or removes the actor's like on a post.
func (s *BoardService) ToggleLike(ctx context.Context, actorID, postID string) (bool, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return false, err
	}
	if err := s.canWrite(actor, false); err != nil {
		return false, err
	}
	liked, err := s.repo.ToggleLike(ctx, postID, actor.ID)
	if err != nil {
		return false, fmt.Errorf("toggle like %s: %w", postID, err)
	}
	return liked, nil
}

// CreateComment appends a comment to an existing post.
func (s *BoardService) CreateComment(ctx context.Context, actorID, postID, text string) (*domain.BoardComment, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return nil, err
	}
	if err := s.canWrite(actor, true); err != nil {
		return nil, err
	}
	if err := s.screen(text); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindPostByID(ctx, postID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.BoardComment{
		PostID:      postID,
		OwnerID:     actor.ID,
		Username:    actor.Username,
		AuthorPhoto: actor.PhotoURL,
		Text:        text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.repo.CreateComment(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return created, nil
}

// UpdateComment edits a comment under the board moderation rule.
func (s *BoardService) UpdateComment(ctx context.Context, actorID, commentID, text string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	if err := s.screen(text); err != nil {
		return err
	}
	existing, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.canModerateBoard(existing.OwnerID, actor); err != nil {
		return err
	}
	updated := *existing
	updated.Text = text
	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateComment(ctx, &updated); err != nil {
		return fmt.Errorf("update comment %s: %w", commentID, err)
	}
	return nil
}

// DeleteComment removes a single comment under the board moderation rule.
func (s *BoardService) DeleteComment(ctx context.Context, actorID, commentID string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	existing, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.canModerateBoard(existing.OwnerID, actor); err != nil {
		return err
	}
	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment %s: %w", commentID, err)
	}
	return nil
}

func (s *BoardService) uploadImage(ctx context.Context, ownerID string, img *ports.PhotoUpload) (string, error) {
	key := fmt.Sprintf("webboardImages/%s/%d_%s", ownerID, time.Now().UnixMilli(), sanitizeFilename(img.Filename))
	url, err := s.blobs.Upload(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload board image: %w", err)
	}
	return url, nil
}

// sanitizeFilename keeps object keys predictable when a client sends an odd
// or empty filename.
func sanitizeFilename(name string) string {
	if name == "" {
		return uuid.NewString()
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
