package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

type adminFixture struct {
	users   *stubUserRepo
	jobs    *stubJobRepo
	helpers *stubHelperRepo
	board   *stubBoardRepo
	config  *stubConfigRepo
	store   *store.Store
	svc     *AdminService
}

func newAdminFixture(storeUsers ...domain.User) *adminFixture {
	f := &adminFixture{
		users:   newStubUserRepo(storeUsers...),
		jobs:    newStubJobRepo(),
		helpers: newStubHelperRepo(),
		board:   newStubBoardRepo(),
		config:  &stubConfigRepo{},
		store:   seedStore(storeUsers...),
	}
	f.svc = NewAdminService(f.users, f.jobs, f.helpers, f.board, f.config, f.store, discardLogger)
	return f
}

// ---------------------------------------------------------------------------
// Role gate
// ---------------------------------------------------------------------------

func TestAdmin_NonAdminForbidden(t *testing.T) {
	f := newAdminFixture(memberUser("u1"), moderatorUser("m1"))
	ctx := context.Background()

	if err := f.svc.SetSiteLocked(ctx, "u1", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("member err = %v", err)
	}
	// Moderators moderate the board through the board service, not here.
	if err := f.svc.SetSiteLocked(ctx, "m1", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("moderator err = %v", err)
	}
	if err := f.svc.SetSiteLocked(ctx, "", true); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("anonymous err = %v", err)
	}
}

func TestAdmin_FrozenAdminBlocked(t *testing.T) {
	frozenAdmin := adminUser("a1")
	frozenAdmin.IsFrozen = true
	f := newAdminFixture(frozenAdmin)

	if err := f.svc.SetSiteLocked(context.Background(), "a1", true); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Posting flags
// ---------------------------------------------------------------------------

func TestSetJobFlag(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	f.jobs.byID["j1"] = &domain.JobPosting{ID: "j1"}
	ctx := context.Background()

	for flag, check := range map[ports.PostingFlag]func(*domain.JobPosting) bool{
		ports.FlagPinned:     func(j *domain.JobPosting) bool { return j.IsPinned },
		ports.FlagSuspicious: func(j *domain.JobPosting) bool { return j.IsSuspicious },
		ports.FlagClosed:     func(j *domain.JobPosting) bool { return j.IsHired },
	} {
		if err := f.svc.SetJobFlag(ctx, "a1", "j1", flag, true); err != nil {
			t.Fatalf("flag %s: %v", flag, err)
		}
		if !check(f.jobs.byID["j1"]) {
			t.Errorf("flag %s not set", flag)
		}
	}

	// Verified experience only exists on helper profiles.
	if err := f.svc.SetJobFlag(ctx, "a1", "j1", ports.FlagVerified, true); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("verified on job err = %v", err)
	}
}

func TestSetHelperFlag(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	f.helpers.byID["p1"] = &domain.HelperProfile{ID: "p1"}
	ctx := context.Background()

	for flag, check := range map[ports.PostingFlag]func(*domain.HelperProfile) bool{
		ports.FlagPinned:     func(h *domain.HelperProfile) bool { return h.IsPinned },
		ports.FlagSuspicious: func(h *domain.HelperProfile) bool { return h.IsSuspicious },
		ports.FlagClosed:     func(h *domain.HelperProfile) bool { return h.IsUnavailable },
		ports.FlagVerified:   func(h *domain.HelperProfile) bool { return h.VerifiedExperience },
	} {
		if err := f.svc.SetHelperFlag(ctx, "a1", "p1", flag, true); err != nil {
			t.Fatalf("flag %s: %v", flag, err)
		}
		if !check(f.helpers.byID["p1"]) {
			t.Errorf("flag %s not set", flag)
		}
	}
}

func TestSetBoardPostPinned(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	f.board.posts["b1"] = &domain.BoardPost{ID: "b1"}

	if err := f.svc.SetBoardPostPinned(context.Background(), "a1", "b1", true); err != nil {
		t.Fatalf("pin: %v", err)
	}
	if !f.board.posts["b1"].IsPinned {
		t.Fatal("post not pinned")
	}
}

// ---------------------------------------------------------------------------
// User administration
// ---------------------------------------------------------------------------

func TestSetUserRole(t *testing.T) {
	f := newAdminFixture(adminUser("a1"), memberUser("u1"))
	ctx := context.Background()

	if err := f.svc.SetUserRole(ctx, "a1", "u1", domain.RoleModerator); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if f.users.byID["u1"].Role != domain.RoleModerator {
		t.Fatal("role not persisted")
	}
}

func TestSetUserRole_OwnRoleForbidden(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	if err := f.svc.SetUserRole(context.Background(), "a1", "a1", domain.RoleMember); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
}

func TestSetUserRole_NoAdminDemotion(t *testing.T) {
	f := newAdminFixture(adminUser("a1"), adminUser("a2"))
	if err := f.svc.SetUserRole(context.Background(), "a1", "a2", domain.RoleMember); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
	if f.users.byID["a2"].Role != domain.RoleAdmin {
		t.Fatal("admin role must survive")
	}
}

func TestSetUserRole_InvalidRole(t *testing.T) {
	f := newAdminFixture(adminUser("a1"), memberUser("u1"))
	if err := f.svc.SetUserRole(context.Background(), "a1", "u1", domain.UserRole("SuperUser")); !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("err = %v", err)
	}
}

func TestSetUserFrozen_SelfForbidden(t *testing.T) {
	f := newAdminFixture(adminUser("a1"), memberUser("u1"))
	ctx := context.Background()

	if err := f.svc.SetUserFrozen(ctx, "a1", "a1", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self freeze err = %v", err)
	}
	if err := f.svc.SetUserFrozen(ctx, "a1", "u1", true); err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if !f.users.byID["u1"].IsFrozen {
		t.Fatal("freeze not persisted")
	}
}

func TestSetUserMuted(t *testing.T) {
	f := newAdminFixture(adminUser("a1"), memberUser("u1"))
	ctx := context.Background()

	if err := f.svc.SetUserMuted(ctx, "a1", "u1", true); err != nil {
		t.Fatalf("mute: %v", err)
	}
	if !f.users.byID["u1"].IsMuted {
		t.Fatal("mute not persisted")
	}
	if err := f.svc.SetUserMuted(ctx, "a1", "u1", false); err != nil {
		t.Fatalf("unmute: %v", err)
	}
	if f.users.byID["u1"].IsMuted {
		t.Fatal("unmute not persisted")
	}
}

// ---------------------------------------------------------------------------
// Site lock
// ---------------------------------------------------------------------------

func TestSetSiteLocked_PreservesCustomMessage(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	f.store.ReplaceSiteConfig(&domain.SiteConfig{
		ID:                 domain.SiteConfigID,
		MaintenanceMessage: "ปิดปรับปรุงถึงเที่ยง",
	})

	if err := f.svc.SetSiteLocked(context.Background(), "a1", true); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if len(f.config.lockCalls) != 1 {
		t.Fatalf("lock calls = %d", len(f.config.lockCalls))
	}
	call := f.config.lockCalls[0]
	if !call.locked || call.message != "ปิดปรับปรุงถึงเที่ยง" {
		t.Fatalf("call = %+v, custom message must survive", call)
	}
}

func TestSetSiteLocked_DefaultMessageWhenAbsent(t *testing.T) {
	f := newAdminFixture(adminUser("a1"))
	f.store.ReplaceSiteConfig(nil)

	if err := f.svc.SetSiteLocked(context.Background(), "a1", true); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if f.config.lockCalls[0].message != domain.DefaultMaintenanceMessage {
		t.Fatalf("message = %q", f.config.lockCalls[0].message)
	}
}
