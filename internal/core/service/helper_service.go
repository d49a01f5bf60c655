package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/api/metrics"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// HelperService is the write path for helper profiles.
type HelperService struct {
	guard
	repo         ports.HelperRepository
	interactions ports.InteractionRepository
	log          zerolog.Logger
}

func NewHelperService(
	repo ports.HelperRepository,
	interactions ports.InteractionRepository,
	st *store.Store,
	filter *moderation.Filter,
	log zerolog.Logger,
) *HelperService {
	return &HelperService{
		guard:        guard{store: st, filter: filter},
		repo:         repo,
		interactions: interactions,
		log:          log,
	}
}

// Create publishes a helper profile for the actor. Gender, birthdate and
// education are snapshotted from the actor's user record at creation time,
// alongside the contact string.
func (s *HelperService) Create(ctx context.Context, actorID string, in ports.HelperInput) (*domain.HelperProfile, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return nil, err
	}
	if err := s.canWrite(actor, true); err != nil {
		return nil, err
	}
	if err := s.screen(in.Title, in.Details); err != nil {
		return nil, err
	}

	profile := &domain.HelperProfile{
		Title:         in.Title,
		Details:       in.Details,
		Area:          in.Area,
		Availability:  in.Availability,
		AvailableFrom: in.AvailableFrom,
		AvailableTo:   in.AvailableTo,
		Contact:       contactSnapshot(actor),
		Gender:        actor.Gender,
		Birthdate:     actor.Birthdate,
		Education:     actor.Education,
		OwnerID:       actor.ID,
		Username:      actor.Username,
		PostedAt:      time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create helper profile")
		return nil, fmt.Errorf("create helper profile: %w", err)
	}
	s.log.Info().Str("profile_id", created.ID).Str("owner_id", actor.ID).Msg("helper profile posted")
	return created, nil
}

// Update edits an existing profile; owner or admin only. The contact snapshot
// is refreshed; the demographic snapshot taken at creation is preserved.
func (s *HelperService) Update(ctx context.Context, actorID, profileID string, in ports.HelperInput) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	if err := s.screen(in.Title, in.Details); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.canModify(existing.OwnerID, actor); err != nil {
		return err
	}

	updated := *existing
	updated.Title = in.Title
	updated.Details = in.Details
	updated.Area = in.Area
	updated.Availability = in.Availability
	updated.AvailableFrom = in.AvailableFrom
	updated.AvailableTo = in.AvailableTo
	updated.Contact = contactSnapshot(actor)

	if err := s.repo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("update helper profile %s: %w", profileID, err)
	}
	s.log.Info().Str("profile_id", profileID).Str("actor_id", actor.ID).Msg("helper profile updated")
	return nil
}

// Delete removes a profile; owner or admin only.
func (s *HelperService) Delete(ctx context.Context, actorID, profileID string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if err := s.canModify(existing.OwnerID, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete helper profile %s: %w", profileID, err)
	}
	s.log.Info().Str("profile_id", profileID).Str("actor_id", actor.ID).Msg("helper profile deleted")
	return nil
}

// RegisterInterest records that the acting employer contacted this helper.
//
// The interested set and its cached counter move together atomically and are
// idempotent per (employer, profile) pair. The interaction log entry is
// appended unconditionally: the log is an append-only audit trail independent
// of the idempotent counter.
func (s *HelperService) RegisterInterest(ctx context.Context, actorID, profileID string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}

	profile, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	// Registering interest in your own profile is a no-op.
	if profile.OwnerID == actor.ID {
		return nil
	}

	added, err := s.repo.RegisterInterest(ctx, profileID, actor.ID)
	if err != nil {
		return fmt.Errorf("register interest %s/%s: %w", profileID, actor.ID, err)
	}
	if added {
		metrics.InterestRegistrationsTotal.WithLabelValues("counted").Inc()
	} else {
		metrics.InterestRegistrationsTotal.WithLabelValues("repeat").Inc()
		s.log.Debug().Str("profile_id", profileID).Str("employer_id", actor.ID).Msg("interest already counted")
	}

	entry := &domain.Interaction{
		HelperID:   profile.OwnerID,
		EmployerID: actor.ID,
		Timestamp:  time.Now().UTC(),
		Type:       domain.InteractionContactHelper,
	}
	if err := s.interactions.Append(ctx, entry); err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}

	s.log.Info().
		Str("profile_id", profileID).
		Str("employer_id", actor.ID).
		Bool("newly_counted", added).
		Msg("helper contact recorded")
	return nil
}
