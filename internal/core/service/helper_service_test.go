package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

func minimalHelperInput() ports.HelperInput {
	return ports.HelperInput{
		Title:   "รับจ้างทำความสะอาดบ้าน",
		Details: "มีประสบการณ์ 3 ปี",
		Area:    "บางนา",
	}
}

func newHelperService(repo *stubHelperRepo, interactions *stubInteractionRepo, users ...domain.User) *HelperService {
	return NewHelperService(repo, interactions, seedStore(users...), newTestFilter(), discardLogger)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestHelperCreate_SnapshotsDemographics(t *testing.T) {
	owner := memberUser("u1")
	owner.Gender = domain.GenderMale
	owner.Birthdate = "1995-04-12"
	repo := newStubHelperRepo()
	svc := newHelperService(repo, &stubInteractionRepo{}, owner)

	created, err := svc.Create(context.Background(), "u1", minimalHelperInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Gender != owner.Gender || created.Birthdate != owner.Birthdate {
		t.Fatalf("demographics not snapshotted: %+v", created)
	}
	if created.Contact == "" {
		t.Fatal("contact snapshot missing")
	}
}

func TestHelperCreate_ProfanityRejected(t *testing.T) {
	repo := newStubHelperRepo()
	svc := newHelperService(repo, &stubInteractionRepo{}, memberUser("u1"))

	in := minimalHelperInput()
	in.Title = "รับจ้าง คำหยาบ1"
	if _, err := svc.Create(context.Background(), "u1", in); !errors.Is(err, domain.ErrContentRejected) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("rejected write must not persist")
	}
}

// ---------------------------------------------------------------------------
// Interest registration
// ---------------------------------------------------------------------------

func TestRegisterInterest_FirstContactCountsAndLogs(t *testing.T) {
	repo := newStubHelperRepo(domain.HelperProfile{ID: "p1", OwnerID: "helper"})
	interactions := &stubInteractionRepo{}
	svc := newHelperService(repo, interactions, memberUser("helper"), memberUser("employer"))

	if err := svc.RegisterInterest(context.Background(), "employer", "p1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	p := repo.byID["p1"]
	if p.InterestedCount != 1 || len(p.InterestedIDs) != 1 || p.InterestedIDs[0] != "employer" {
		t.Fatalf("profile = %+v", p)
	}
	if len(interactions.entries) != 1 {
		t.Fatalf("interactions = %d, want 1", len(interactions.entries))
	}
	entry := interactions.entries[0]
	if entry.HelperID != "helper" || entry.EmployerID != "employer" || entry.Type != domain.InteractionContactHelper {
		t.Fatalf("entry = %+v", entry)
	}
}

func TestRegisterInterest_RepeatCountsOnceButLogsTwice(t *testing.T) {
	repo := newStubHelperRepo(domain.HelperProfile{ID: "p1", OwnerID: "helper"})
	interactions := &stubInteractionRepo{}
	svc := newHelperService(repo, interactions, memberUser("helper"), memberUser("employer"))
	ctx := context.Background()

	if err := svc.RegisterInterest(ctx, "employer", "p1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.RegisterInterest(ctx, "employer", "p1"); err != nil {
		t.Fatalf("repeat register: %v", err)
	}

	p := repo.byID["p1"]
	if p.InterestedCount != 1 || len(p.InterestedIDs) != 1 {
		t.Fatalf("counter must stay at 1: %+v", p)
	}
	// The audit log is unconditional: two contacts, two records.
	if len(interactions.entries) != 2 {
		t.Fatalf("interactions = %d, want 2", len(interactions.entries))
	}
}

func TestRegisterInterest_OwnProfileIsNoOp(t *testing.T) {
	repo := newStubHelperRepo(domain.HelperProfile{ID: "p1", OwnerID: "u1"})
	interactions := &stubInteractionRepo{}
	svc := newHelperService(repo, interactions, memberUser("u1"))

	if err := svc.RegisterInterest(context.Background(), "u1", "p1"); err != nil {
		t.Fatalf("self register: %v", err)
	}
	if repo.byID["p1"].InterestedCount != 0 {
		t.Fatal("self interest must not count")
	}
	if len(interactions.entries) != 0 {
		t.Fatal("self interest must not be logged")
	}
}

func TestRegisterInterest_MissingProfile(t *testing.T) {
	svc := newHelperService(newStubHelperRepo(), &stubInteractionRepo{}, memberUser("u1"))
	if err := svc.RegisterInterest(context.Background(), "u1", "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRegisterInterest_FrozenEmployerBlocked(t *testing.T) {
	frozenEmployer := memberUser("employer")
	frozenEmployer.IsFrozen = true
	repo := newStubHelperRepo(domain.HelperProfile{ID: "p1", OwnerID: "helper"})
	svc := newHelperService(repo, &stubInteractionRepo{}, memberUser("helper"), frozenEmployer)

	if err := svc.RegisterInterest(context.Background(), "employer", "p1"); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("err = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update and delete
// ---------------------------------------------------------------------------

func TestHelperUpdate_PreservesDemographicSnapshot(t *testing.T) {
	owner := memberUser("u1")
	repo := newStubHelperRepo(domain.HelperProfile{
		ID: "p1", OwnerID: "u1", Gender: domain.GenderMale, Birthdate: "1990-01-01",
	})
	svc := newHelperService(repo, &stubInteractionRepo{}, owner)

	if err := svc.Update(context.Background(), "u1", "p1", minimalHelperInput()); err != nil {
		t.Fatalf("update: %v", err)
	}
	p := repo.byID["p1"]
	if p.Gender != domain.GenderMale || p.Birthdate != "1990-01-01" {
		t.Fatal("creation-time demographics must survive edits")
	}
	if p.Title != minimalHelperInput().Title {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestHelperDelete_NonOwnerForbidden(t *testing.T) {
	repo := newStubHelperRepo(domain.HelperProfile{ID: "p1", OwnerID: "owner"})
	svc := newHelperService(repo, &stubInteractionRepo{}, memberUser("owner"), memberUser("other"))

	if err := svc.Delete(context.Background(), "other", "p1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := repo.byID["p1"]; !ok {
		t.Fatal("profile must survive a forbidden delete")
	}
}
