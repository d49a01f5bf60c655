package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// JobService is the write path for job postings.
type JobService struct {
	guard
	repo ports.JobRepository
	log  zerolog.Logger
}

func NewJobService(repo ports.JobRepository, st *store.Store, filter *moderation.Filter, log zerolog.Logger) *JobService {
	return &JobService{
		guard: guard{store: st, filter: filter},
		repo:  repo,
		log:   log,
	}
}

// Create posts a new job for the actor. The contact snapshot is rebuilt from
// the actor's current contact fields; it is a point-in-time copy, not a live
// join.
func (s *JobService) Create(ctx context.Context, actorID string, in ports.JobInput) (*domain.JobPosting, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return nil, err
	}
	if err := s.canWrite(actor, true); err != nil {
		return nil, err
	}
	if err := s.screen(in.Title, in.Description); err != nil {
		return nil, err
	}

	job := &domain.JobPosting{
		Title:            in.Title,
		Location:         in.Location,
		DateTime:         in.DateTime,
		Payment:          in.Payment,
		Description:      in.Description,
		Contact:          contactSnapshot(actor),
		DesiredAgeStart:  in.DesiredAgeStart,
		DesiredAgeEnd:    in.DesiredAgeEnd,
		PreferredGender:  in.PreferredGender,
		DesiredEducation: in.DesiredEducation,
		DateNeededFrom:   in.DateNeededFrom,
		DateNeededTo:     in.DateNeededTo,
		TimeNeededStart:  in.TimeNeededStart,
		TimeNeededEnd:    in.TimeNeededEnd,
		OwnerID:          actor.ID,
		Username:         actor.Username,
		PostedAt:         time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", actor.ID).Msg("failed to create job posting")
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.Info().Str("job_id", created.ID).Str("owner_id", actor.ID).Msg("job posted")
	return created, nil
}

// Update edits an existing posting. Only the owner or an admin may edit; the
// contact snapshot is refreshed so edits pick up the actor's current details.
func (s *JobService) Update(ctx context.Context, actorID, jobID string, in ports.JobInput) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	if err := s.screen(in.Title, in.Description); err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.canModify(existing.OwnerID, actor); err != nil {
		return err
	}

	updated := *existing
	updated.Title = in.Title
	updated.Location = in.Location
	updated.DateTime = in.DateTime
	updated.Payment = in.Payment
	updated.Description = in.Description
	updated.DesiredAgeStart = in.DesiredAgeStart
	updated.DesiredAgeEnd = in.DesiredAgeEnd
	updated.PreferredGender = in.PreferredGender
	updated.DesiredEducation = in.DesiredEducation
	updated.DateNeededFrom = in.DateNeededFrom
	updated.DateNeededTo = in.DateNeededTo
	updated.TimeNeededStart = in.TimeNeededStart
	updated.TimeNeededEnd = in.TimeNeededEnd
	updated.Contact = contactSnapshot(actor)

	if err := s.repo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("update job %s: %w", jobID, err)
	}
	s.log.Info().Str("job_id", jobID).Str("actor_id", actor.ID).Msg("job updated")
	return nil
}

// Delete removes a posting. Only the owner or an admin may delete.
func (s *JobService) Delete(ctx context.Context, actorID, jobID string) error {
	actor, err := s.actor(actorID)
	if err != nil {
		return err
	}
	if err := s.canWrite(actor, false); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := s.canModify(existing.OwnerID, actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("delete job %s: %w", jobID, err)
	}
	s.log.Info().Str("job_id", jobID).Str("actor_id", actor.ID).Msg("job deleted")
	return nil
}
