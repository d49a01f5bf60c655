package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// AdminService covers the moderation toggles reserved for staff. Every
// operation re-checks the actor's role from the last-known user record; the
// role field is the only ground truth for privilege.
type AdminService struct {
	guard
	users   ports.UserRepository
	jobs    ports.JobRepository
	helpers ports.HelperRepository
	board   ports.BoardRepository
	config  ports.ConfigRepository
	log     zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	jobs ports.JobRepository,
	helpers ports.HelperRepository,
	board ports.BoardRepository,
	config ports.ConfigRepository,
	st *store.Store,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		guard:   guard{store: st},
		users:   users,
		jobs:    jobs,
		helpers: helpers,
		board:   board,
		config:  config,
		log:     log,
	}
}

func (s *AdminService) admin(actorID string) (domain.User, error) {
	actor, err := s.actor(actorID)
	if err != nil {
		return domain.User{}, err
	}
	if actor.Role != domain.RoleAdmin {
		return domain.User{}, domain.ErrForbidden
	}
	if actor.IsFrozen {
		return domain.User{}, fmt.Errorf("account frozen: %w", domain.ErrAccountRestricted)
	}
	return actor, nil
}

// SetJobFlag toggles a job posting's pinned, suspicious, or hired flag.
func (s *AdminService) SetJobFlag(ctx context.Context, actorID, jobID string, flag ports.PostingFlag, value bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	switch flag {
	case ports.FlagPinned:
		err = s.jobs.SetPinned(ctx, jobID, value)
	case ports.FlagSuspicious:
		err = s.jobs.SetSuspicious(ctx, jobID, value)
	case ports.FlagClosed:
		err = s.jobs.SetHired(ctx, jobID, value)
	default:
		return fmt.Errorf("flag %q not valid for jobs: %w", flag, domain.ErrValidationFailed)
	}
	if err != nil {
		return fmt.Errorf("set job flag %s=%t: %w", flag, value, err)
	}
	s.log.Info().Str("job_id", jobID).Str("flag", string(flag)).Bool("value", value).Str("admin_id", actor.ID).Msg("job flag set")
	return nil
}

// SetHelperFlag toggles a helper profile's pinned, suspicious, unavailable,
// or verified-experience flag.
func (s *AdminService) SetHelperFlag(ctx context.Context, actorID, profileID string, flag ports.PostingFlag, value bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	switch flag {
	case ports.FlagPinned:
		err = s.helpers.SetPinned(ctx, profileID, value)
	case ports.FlagSuspicious:
		err = s.helpers.SetSuspicious(ctx, profileID, value)
	case ports.FlagClosed:
		err = s.helpers.SetUnavailable(ctx, profileID, value)
	case ports.FlagVerified:
		err = s.helpers.SetVerifiedExperience(ctx, profileID, value)
	default:
		return fmt.Errorf("flag %q not valid for helper profiles: %w", flag, domain.ErrValidationFailed)
	}
	if err != nil {
		return fmt.Errorf("set helper flag %s=%t: %w", flag, value, err)
	}
	s.log.Info().Str("profile_id", profileID).Str("flag", string(flag)).Bool("value", value).Str("admin_id", actor.ID).Msg("helper flag set")
	return nil
}

// SetBoardPostPinned pins or unpins a board post.
func (s *AdminService) SetBoardPostPinned(ctx context.Context, actorID, postID string, pinned bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	if err := s.board.SetPostPinned(ctx, postID, pinned); err != nil {
		return fmt.Errorf("pin board post %s: %w", postID, err)
	}
	s.log.Info().Str("post_id", postID).Bool("pinned", pinned).Str("admin_id", actor.ID).Msg("board post pin toggled")
	return nil
}

// SetUserRole changes a user's role. Admins cannot change their own role, and
// an existing admin cannot be demoted.
func (s *AdminService) SetUserRole(ctx context.Context, actorID, targetID string, role domain.UserRole) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	if targetID == actor.ID {
		return fmt.Errorf("cannot change own role: %w", domain.ErrForbidden)
	}
	switch role {
	case domain.RoleAdmin, domain.RoleModerator, domain.RoleMember:
	default:
		return fmt.Errorf("role %q: %w", role, domain.ErrValidationFailed)
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin && role != domain.RoleAdmin {
		return fmt.Errorf("cannot demote an admin: %w", domain.ErrForbidden)
	}
	if err := s.users.SetRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("set role %s: %w", targetID, err)
	}
	s.log.Info().Str("user_id", targetID).Str("role", string(role)).Str("admin_id", actor.ID).Msg("user role changed")
	return nil
}

// SetUserMuted blocks or unblocks a user from creating content.
func (s *AdminService) SetUserMuted(ctx context.Context, actorID, targetID string, muted bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	if err := s.users.SetMuted(ctx, targetID, muted); err != nil {
		return fmt.Errorf("set muted %s: %w", targetID, err)
	}
	s.log.Info().Str("user_id", targetID).Bool("muted", muted).Str("admin_id", actor.ID).Msg("user mute toggled")
	return nil
}

// SetUserFrozen deactivates or reactivates an account. Freezing is the only
// deactivation mechanism; accounts are never hard deleted.
func (s *AdminService) SetUserFrozen(ctx context.Context, actorID, targetID string, frozen bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	if targetID == actor.ID {
		return fmt.Errorf("cannot freeze own account: %w", domain.ErrForbidden)
	}
	if err := s.users.SetFrozen(ctx, targetID, frozen); err != nil {
		return fmt.Errorf("set frozen %s: %w", targetID, err)
	}
	s.log.Info().Str("user_id", targetID).Bool("frozen", frozen).Str("admin_id", actor.ID).Msg("user freeze toggled")
	return nil
}

// SetSiteLocked toggles the global site lock read by every actor.
func (s *AdminService) SetSiteLocked(ctx context.Context, actorID string, locked bool) error {
	actor, err := s.admin(actorID)
	if err != nil {
		return err
	}
	message := domain.DefaultMaintenanceMessage
	if cfg := s.store.SiteConfig(); cfg != nil && cfg.MaintenanceMessage != "" {
		message = cfg.MaintenanceMessage
	}
	if err := s.config.SetLocked(ctx, locked, message); err != nil {
		return fmt.Errorf("set site lock: %w", err)
	}
	s.log.Info().Bool("locked", locked).Str("admin_id", actor.ID).Msg("site lock toggled")
	return nil
}
