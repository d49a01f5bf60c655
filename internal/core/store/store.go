// Package store holds the last-known snapshot of every tracked collection
// plus the identity of the signed-in actor.
//
// Only the subscription coordinator writes to the store, and only through
// Replace*. Everything else reads copied snapshots. An empty batch means
// "this collection is now empty", never "no update occurred"; Ready
// distinguishes not-yet-loaded from loaded-and-empty.
package store

import (
	"sync"

	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
)

// Store is the single shared mutable resource. Later batches for a collection
// supersede earlier ones; there is no ordering guarantee across collections.
type Store struct {
	mu sync.RWMutex

	users        map[string]domain.User
	jobs         map[string]domain.JobPosting
	helpers      map[string]domain.HelperProfile
	interactions map[string]domain.Interaction
	boardPosts   map[string]domain.BoardPost
	boardComments map[string]domain.BoardComment
	siteConfig   *domain.SiteConfig

	ready map[ports.Collection]bool

	currentActorID string
}

// New returns an empty store with no collection marked ready.
func New() *Store {
	return &Store{
		users:         make(map[string]domain.User),
		jobs:          make(map[string]domain.JobPosting),
		helpers:       make(map[string]domain.HelperProfile),
		interactions:  make(map[string]domain.Interaction),
		boardPosts:    make(map[string]domain.BoardPost),
		boardComments: make(map[string]domain.BoardComment),
		ready:         make(map[ports.Collection]bool),
	}
}

// Ready reports whether the collection has received at least one batch.
func (s *Store) Ready(col ports.Collection) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready[col]
}

// ReplaceUsers installs a full users batch.
func (s *Store) ReplaceUsers(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]domain.User, len(users))
	for _, u := range users {
		s.users[u.ID] = u
	}
	s.ready[ports.ColUsers] = true
}

// ReplaceJobs installs a full jobs batch.
func (s *Store) ReplaceJobs(jobs []domain.JobPosting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = make(map[string]domain.JobPosting, len(jobs))
	for _, j := range jobs {
		s.jobs[j.ID] = j
	}
	s.ready[ports.ColJobs] = true
}

// ReplaceHelperProfiles installs a full helper-profiles batch.
func (s *Store) ReplaceHelperProfiles(profiles []domain.HelperProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.helpers = make(map[string]domain.HelperProfile, len(profiles))
	for _, h := range profiles {
		s.helpers[h.ID] = h
	}
	s.ready[ports.ColHelperProfiles] = true
}

// ReplaceInteractions installs a full interactions batch.
func (s *Store) ReplaceInteractions(interactions []domain.Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = make(map[string]domain.Interaction, len(interactions))
	for _, in := range interactions {
		s.interactions[in.ID] = in
	}
	s.ready[ports.ColInteractions] = true
}

// ReplaceBoardPosts installs a full board-posts batch.
func (s *Store) ReplaceBoardPosts(posts []domain.BoardPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardPosts = make(map[string]domain.BoardPost, len(posts))
	for _, p := range posts {
		s.boardPosts[p.ID] = p
	}
	s.ready[ports.ColBoardPosts] = true
}

// ReplaceBoardComments installs a full board-comments batch.
func (s *Store) ReplaceBoardComments(comments []domain.BoardComment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardComments = make(map[string]domain.BoardComment, len(comments))
	for _, c := range comments {
		s.boardComments[c.ID] = c
	}
	s.ready[ports.ColBoardComments] = true
}

// ReplaceSiteConfig installs the config singleton.
func (s *Store) ReplaceSiteConfig(cfg *domain.SiteConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg != nil {
		c := *cfg
		s.siteConfig = &c
	} else {
		s.siteConfig = nil
	}
	s.ready[ports.ColSiteConfig] = true
}

// Users returns a snapshot of all user records.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}

// UserByID returns the last-known record for id, if present.
func (s *Store) UserByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// Jobs returns a snapshot of all job postings.
func (s *Store) Jobs() []domain.JobPosting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.JobPosting, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out
}

// JobByID returns the last-known job posting for id, if present.
func (s *Store) JobByID(id string) (domain.JobPosting, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

// HelperProfiles returns a snapshot of all helper profiles.
func (s *Store) HelperProfiles() []domain.HelperProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.HelperProfile, 0, len(s.helpers))
	for _, h := range s.helpers {
		out = append(out, h)
	}
	return out
}

// HelperProfileByID returns the last-known helper profile for id, if present.
func (s *Store) HelperProfileByID(id string) (domain.HelperProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.helpers[id]
	return h, ok
}

// Interactions returns a snapshot of the interaction log.
func (s *Store) Interactions() []domain.Interaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Interaction, 0, len(s.interactions))
	for _, in := range s.interactions {
		out = append(out, in)
	}
	return out
}

// BoardPosts returns a snapshot of all board posts.
func (s *Store) BoardPosts() []domain.BoardPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BoardPost, 0, len(s.boardPosts))
	for _, p := range s.boardPosts {
		out = append(out, p)
	}
	return out
}

// BoardPostByID returns the last-known board post for id, if present.
func (s *Store) BoardPostByID(id string) (domain.BoardPost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.boardPosts[id]
	return p, ok
}

// BoardComments returns a snapshot of all board comments.
func (s *Store) BoardComments() []domain.BoardComment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BoardComment, 0, len(s.boardComments))
	for _, c := range s.boardComments {
		out = append(out, c)
	}
	return out
}

// SiteConfig returns the config singleton, or nil if not yet loaded/absent.
func (s *Store) SiteConfig() *domain.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.siteConfig == nil {
		return nil
	}
	c := *s.siteConfig
	return &c
}

// SetCurrentActor records the signed-in actor's identity.
func (s *Store) SetCurrentActor(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentActorID = id
}

// ClearCurrentActor forgets the signed-in actor. The rest of the store is
// untouched: loss of the auth subscription never clears collection data.
func (s *Store) ClearCurrentActor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentActorID = ""
}

// CurrentActor returns the signed-in actor's last-known record, if any.
func (s *Store) CurrentActor() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentActorID == "" {
		return domain.User{}, false
	}
	u, ok := s.users[s.currentActorID]
	return u, ok
}

// CurrentActorID returns the signed-in actor's identifier, if any.
func (s *Store) CurrentActorID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentActorID, s.currentActorID != ""
}
