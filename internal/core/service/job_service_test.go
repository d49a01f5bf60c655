package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

func minimalJobInput() ports.JobInput {
	return ports.JobInput{
		Title:       "พี่เลี้ยงเด็กวันเสาร์",
		Location:    "ลาดพร้าว",
		Payment:     "500 บาท",
		Description: "ดูแลเด็ก 5 ขวบ ครึ่งวัน",
	}
}

func newJobService(repo *stubJobRepo, users ...domain.User) *JobService {
	return NewJobService(repo, seedStore(users...), newTestFilter(), discardLogger)
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestJobCreate_SnapshotsOwnerAndContact(t *testing.T) {
	owner := memberUser("u1")
	owner.LineID = "somchai_line"
	repo := newStubJobRepo()
	svc := newJobService(repo, owner)

	created, err := svc.Create(context.Background(), "u1", minimalJobInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("repository must assign an id")
	}
	if created.OwnerID != "u1" || created.Username != owner.Username {
		t.Fatalf("owner snapshot = %q/%q", created.OwnerID, created.Username)
	}
	want := "เบอร์โทร: 0812345678\nLINE ID: somchai_line"
	if created.Contact != want {
		t.Fatalf("contact = %q, want %q", created.Contact, want)
	}
	if created.PostedAt.IsZero() {
		t.Fatal("posted_at must be set")
	}
}

func TestJobCreate_ContactFallbackWhenNoChannels(t *testing.T) {
	owner := memberUser("u1")
	owner.Mobile = ""
	svc := newJobService(newStubJobRepo(), owner)

	created, err := svc.Create(context.Background(), "u1", minimalJobInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Contact != "ไม่ระบุช่องทางติดต่อ" {
		t.Fatalf("contact = %q", created.Contact)
	}
}

func TestJobCreate_Unauthenticated(t *testing.T) {
	svc := newJobService(newStubJobRepo())

	if _, err := svc.Create(context.Background(), "", minimalJobInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("empty actor err = %v", err)
	}
	if _, err := svc.Create(context.Background(), "ghost", minimalJobInput()); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("unknown actor err = %v", err)
	}
}

func TestJobCreate_ProfanityRejected(t *testing.T) {
	repo := newStubJobRepo()
	svc := newJobService(repo, memberUser("u1"))

	in := minimalJobInput()
	in.Description = "งานดีมาก badword3 จริงๆ"
	if _, err := svc.Create(context.Background(), "u1", in); !errors.Is(err, domain.ErrContentRejected) {
		t.Fatalf("err = %v, want content rejection", err)
	}
	if len(repo.byID) != 0 {
		t.Fatal("rejected write must not persist")
	}
}

// ---------------------------------------------------------------------------
// Account restrictions
// ---------------------------------------------------------------------------

func TestJob_MutedBlocksCreateOnly(t *testing.T) {
	muted := memberUser("u1")
	muted.IsMuted = true
	repo := newStubJobRepo(domain.JobPosting{ID: "j1", OwnerID: "u1", Title: "old"})
	svc := newJobService(repo, muted)

	ctx := context.Background()
	if _, err := svc.Create(ctx, "u1", minimalJobInput()); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("muted create err = %v", err)
	}
	if err := svc.Update(ctx, "u1", "j1", minimalJobInput()); err != nil {
		t.Fatalf("muted update should pass: %v", err)
	}
	if err := svc.Delete(ctx, "u1", "j1"); err != nil {
		t.Fatalf("muted delete should pass: %v", err)
	}
}

func TestJob_FrozenBlocksEverything(t *testing.T) {
	frozen := memberUser("u1")
	frozen.IsFrozen = true
	repo := newStubJobRepo(domain.JobPosting{ID: "j1", OwnerID: "u1"})
	svc := newJobService(repo, frozen)

	ctx := context.Background()
	if _, err := svc.Create(ctx, "u1", minimalJobInput()); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("frozen create err = %v", err)
	}
	if err := svc.Update(ctx, "u1", "j1", minimalJobInput()); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("frozen update err = %v", err)
	}
	if err := svc.Delete(ctx, "u1", "j1"); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("frozen delete err = %v", err)
	}
}

func TestJob_SiteLockBlocksNonAdmins(t *testing.T) {
	st := seedStore(memberUser("u1"), adminUser("a1"))
	st.ReplaceSiteConfig(&domain.SiteConfig{ID: domain.SiteConfigID, IsSiteLocked: true})
	repo := newStubJobRepo()
	svc := NewJobService(repo, st, newTestFilter(), discardLogger)

	ctx := context.Background()
	if _, err := svc.Create(ctx, "u1", minimalJobInput()); !errors.Is(err, domain.ErrAccountRestricted) {
		t.Fatalf("locked site member err = %v", err)
	}
	if _, err := svc.Create(ctx, "a1", minimalJobInput()); err != nil {
		t.Fatalf("admin must bypass the site lock: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Ownership
// ---------------------------------------------------------------------------

func TestJob_OwnershipMatrix(t *testing.T) {
	repo := newStubJobRepo(domain.JobPosting{ID: "j1", OwnerID: "owner"})
	svc := newJobService(repo, memberUser("owner"), memberUser("other"), adminUser("a1"), moderatorUser("m1"))
	ctx := context.Background()

	if err := svc.Update(ctx, "other", "j1", minimalJobInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-owner member err = %v", err)
	}
	// Moderators get no special power over job postings.
	if err := svc.Update(ctx, "m1", "j1", minimalJobInput()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("moderator err = %v", err)
	}
	if err := svc.Update(ctx, "owner", "j1", minimalJobInput()); err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if err := svc.Delete(ctx, "a1", "j1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestJobUpdate_RefreshesContactSnapshot(t *testing.T) {
	owner := memberUser("u1")
	owner.Facebook = "somchai.fb"
	repo := newStubJobRepo(domain.JobPosting{ID: "j1", OwnerID: "u1", Contact: "stale"})
	svc := newJobService(repo, owner)

	if err := svc.Update(context.Background(), "u1", "j1", minimalJobInput()); err != nil {
		t.Fatalf("update: %v", err)
	}
	saved := repo.byID["j1"]
	if !strings.Contains(saved.Contact, "Facebook: somchai.fb") {
		t.Fatalf("contact not refreshed: %q", saved.Contact)
	}
}

func TestJobUpdate_MissingJob(t *testing.T) {
	svc := newJobService(newStubJobRepo(), memberUser("u1"))
	if err := svc.Update(context.Background(), "u1", "nope", minimalJobInput()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}
