package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// thaiMobileRe accepts Thai mobile numbers after stripping spaces and dashes.
var thaiMobileRe = regexp.MustCompile(`^0[689]\d{8}$`)

var stripSeparators = regexp.MustCompile(`[\s-]`)

// ValidThaiMobile reports whether mobile is a well-formed Thai mobile number.
func ValidThaiMobile(mobile string) bool {
	if mobile == "" {
		return false
	}
	return thaiMobileRe.MatchString(stripSeparators.ReplaceAllString(mobile, ""))
}

// ProfileService is the write path for user profile edits and photo uploads.
type ProfileService struct {
	guard
	repo  ports.UserRepository
	blobs ports.BlobStore
	log   zerolog.Logger
}

func NewProfileService(
	repo ports.UserRepository,
	blobs ports.BlobStore,
	st *store.Store,
	filter *moderation.Filter,
	log zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		guard: guard{store: st, filter: filter},
		repo:  repo,
		blobs: blobs,
		log:   log,
	}
}

// UpdateProfile edits a user record. Only the owning actor or an admin may
// write; the mobile number must be well formed and free-text fields are
// screened.
func (s *ProfileService) UpdateProfile(ctx context.Context, actorID, targetID string, in ports.ProfileInput) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	if err := s.canModify(targetID, actor); err != nil {
		return err
	}
	if !ValidThaiMobile(in.Mobile) {
		return fmt.Errorf("mobile number: %w", domain.ErrValidationFailed)
	}
	p := in.Personality
	if err := s.screen(
		in.DisplayName, in.Address,
		p.FavoriteMusic, p.FavoriteBook, p.FavoriteMovie,
		p.Hobbies, p.FavoriteFood, p.DislikedThing, p.IntroSentence,
	); err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	updated := *target
	updated.DisplayName = in.DisplayName
	updated.Mobile = in.Mobile
	updated.LineID = in.LineID
	updated.Facebook = in.Facebook
	updated.Gender = in.Gender
	updated.Birthdate = in.Birthdate
	updated.Education = in.Education
	updated.Address = in.Address
	updated.Personality = in.Personality
	updated.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("update profile %s: %w", targetID, err)
	}
	s.log.Info().Str("user_id", targetID).Str("actor_id", actor.ID).Msg("profile updated")
	return nil
}

// ReplacePhoto uploads a new profile photo and only then deletes the previous
// object. Keys are actor id plus timestamp, so concurrent uploads never
// collide.
func (s *ProfileService) ReplacePhoto(ctx context.Context, actorID string, upload ports.PhotoUpload) (string, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return "", err
	}
	if err := s.canWrite(actor, false); err != nil {
		return "", err
	}

	key := fmt.Sprintf("profilePhotos/%s/%d_%s", actor.ID, time.Now().UnixMilli(), sanitizeFilename(upload.Filename))
	url, err := s.blobs.Upload(ctx, key, upload.Data, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	target, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	previous := target.PhotoURL

	updated := *target
	updated.PhotoURL = url
	updated.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, &updated); err != nil {
		return "", fmt.Errorf("save photo url: %w", err)
	}

	if previous != "" && previous != url {
		if err := s.blobs.Delete(ctx, previous); err != nil {
			s.log.Warn().Err(err).Str("url", previous).Msg("previous photo not deleted")
		}
	}
	s.log.Info().Str("user_id", actor.ID).Msg("profile photo replaced")
	return url, nil
}
