package store

import (
	"testing"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Readiness
// ---------------------------------------------------------------------------

func TestReady_EmptyBatchStillCountsAsLoaded(t *testing.T) {
	s := New()
	if s.Ready(ports.ColJobs) {
		t.Fatal("fresh store must not be ready")
	}

	s.ReplaceJobs(nil)
	if !s.Ready(ports.ColJobs) {
		t.Fatal("an empty batch means loaded-and-empty, not not-loaded")
	}
	if len(s.Jobs()) != 0 {
		t.Fatal("jobs should be empty")
	}
}

func TestReady_PerCollection(t *testing.T) {
	s := New()
	s.ReplaceUsers([]domain.User{{ID: "u1"}})
	if !s.Ready(ports.ColUsers) {
		t.Fatal("users should be ready")
	}
	if s.Ready(ports.ColBoardPosts) {
		t.Fatal("board posts never loaded")
	}
}

// ---------------------------------------------------------------------------
// Batch replacement
// ---------------------------------------------------------------------------

func TestReplace_LaterBatchSupersedes(t *testing.T) {
	s := New()
	s.ReplaceJobs([]domain.JobPosting{{ID: "j1", Title: "old"}, {ID: "j2"}})
	s.ReplaceJobs([]domain.JobPosting{{ID: "j1", Title: "new"}})

	if got := len(s.Jobs()); got != 1 {
		t.Fatalf("jobs = %d, want 1 after full replacement", got)
	}
	j, ok := s.JobByID("j1")
	if !ok || j.Title != "new" {
		t.Fatalf("j1 = %+v, want the later batch's record", j)
	}
	if _, ok := s.JobByID("j2"); ok {
		t.Fatal("j2 missing from the later batch must be gone")
	}
}

func TestReplaceSiteConfig_NilMeansAbsent(t *testing.T) {
	s := New()
	s.ReplaceSiteConfig(&domain.SiteConfig{ID: domain.SiteConfigID, IsSiteLocked: true})
	if cfg := s.SiteConfig(); cfg == nil || !cfg.IsSiteLocked {
		t.Fatal("config should be present and locked")
	}

	s.ReplaceSiteConfig(nil)
	if s.SiteConfig() != nil {
		t.Fatal("nil batch clears the singleton")
	}
	if !s.Ready(ports.ColSiteConfig) {
		t.Fatal("absent singleton still counts as loaded")
	}
}

func TestSiteConfig_ReturnsCopy(t *testing.T) {
	s := New()
	s.ReplaceSiteConfig(&domain.SiteConfig{ID: domain.SiteConfigID})
	first := s.SiteConfig()
	first.IsSiteLocked = true
	if s.SiteConfig().IsSiteLocked {
		t.Fatal("mutating a returned snapshot must not touch the store")
	}
}

// ---------------------------------------------------------------------------
// Actor identity
// ---------------------------------------------------------------------------

func TestCurrentActor(t *testing.T) {
	s := New()
	if _, ok := s.CurrentActorID(); ok {
		t.Fatal("no actor set yet")
	}

	s.ReplaceUsers([]domain.User{{ID: "u1", Username: "somchai"}})
	s.SetCurrentActor("u1")

	u, ok := s.CurrentActor()
	if !ok || u.Username != "somchai" {
		t.Fatalf("actor = %+v ok=%v", u, ok)
	}
}

func TestCurrentActor_SetBeforeUsersLoaded(t *testing.T) {
	s := New()
	s.SetCurrentActor("u1")
	if _, ok := s.CurrentActor(); ok {
		t.Fatal("actor record not loaded yet")
	}
	if id, ok := s.CurrentActorID(); !ok || id != "u1" {
		t.Fatal("identity is known even when the record is not")
	}
}

func TestClearCurrentActor_KeepsCollections(t *testing.T) {
	s := New()
	s.ReplaceUsers([]domain.User{{ID: "u1"}})
	s.ReplaceJobs([]domain.JobPosting{{ID: "j1"}})
	s.SetCurrentActor("u1")

	s.ClearCurrentActor()
	if _, ok := s.CurrentActorID(); ok {
		t.Fatal("actor should be cleared")
	}
	if len(s.Jobs()) != 1 || len(s.Users()) != 1 {
		t.Fatal("clearing the actor must not clear collection data")
	}
}
