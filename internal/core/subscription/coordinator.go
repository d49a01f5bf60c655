// Package subscription maintains one logical subscription per tracked collection and
// republishes merged snapshot batches into the entity store. It owns the
// dual-backend abstraction: the same coordinator drives a live push backend
// or a locally persisted snapshot backend through ports.CollectionSource.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hajobjah/marketplace/internal/api/metrics"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/ports"
	"github.com/hajobjah/marketplace/internal/core/store"
)

const (
	initialRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Coordinator runs one watch loop per collection. A failed load is simply
// not applied: the store keeps its last-known-good snapshot and the loop
// retries with backoff. Loss of the auth binding clears only the current
// actor identity, never collection data.
type Coordinator struct {
	source ports.CollectionSource
	config ports.ConfigRepository
	store  *store.Store
	log    zerolog.Logger

	ensureOnce sync.Once
	wg         sync.WaitGroup
}

// New returns a coordinator over the given backend source.
func New(source ports.CollectionSource, config ports.ConfigRepository, st *store.Store, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		source: source,
		config: config,
		store:  st,
		log:    log,
	}
}

// Start launches the per-collection watch loops. They stop when ctx is
// cancelled; Wait blocks until all have exited.
func (c *Coordinator) Start(ctx context.Context) {
	for _, col := range ports.Collections {
		col := col
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.run(ctx, col)
		}()
	}
}

// Wait blocks until every watch loop has exited.
func (c *Coordinator) Wait() { c.wg.Wait() }

// BindActor records the signed-in actor after its own user record has been
// observed, then ensures the site-config singleton exists. The conditional
// create runs at most once per process; the repository itself guards against
// two coordinators racing to create it.
func (c *Coordinator) BindActor(ctx context.Context, actorID string) error {
	if _, ok := c.store.UserByID(actorID); !ok {
		// Record missing after sign-in is recoverable: force sign-out.
		return fmt.Errorf("actor record %s not loaded: %w", actorID, errActorNotLoaded)
	}
	c.store.SetCurrentActor(actorID)

	var ensureErr error
	c.ensureOnce.Do(func() {
		if err := c.config.EnsureDefault(ctx); err != nil {
			ensureErr = fmt.Errorf("ensure site config: %w", err)
		}
	})
	return ensureErr
}

// UnbindActor clears the signed-in actor identity. The rest of the entity
// store is left intact.
func (c *Coordinator) UnbindActor() {
	c.store.ClearCurrentActor()
}

var errActorNotLoaded = errors.New("actor record not loaded")

// ErrActorNotLoaded reports whether err means the signed-in actor's record
// was not found; callers respond by forcing sign-out, not by crashing.
func ErrActorNotLoaded(err error) bool { return errors.Is(err, errActorNotLoaded) }

// run is a single collection's subscription loop: load a snapshot, apply it,
// then block on change notifications; any error backs off and resubscribes.
func (c *Coordinator) run(ctx context.Context, col ports.Collection) {
	delay := initialRetryDelay
	for {
		if err := c.watch(ctx, col); err != nil {
			if ctx.Err() != nil {
				return
			}
			metrics.SubscriptionRetriesTotal.WithLabelValues(string(col)).Inc()
			c.log.Warn().Err(err).Str("collection", string(col)).Dur("retry_in", delay).Msg("subscription error, retrying")
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			continue
		}
		delay = initialRetryDelay
		if ctx.Err() != nil {
			return
		}
	}
}

// watch applies one snapshot then follows change notifications until the
// subscription drops or ctx ends.
func (c *Coordinator) watch(ctx context.Context, col ports.Collection) error {
	changes, err := c.source.Changes(ctx, col)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", col, err)
	}

	if err := c.apply(ctx, col); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return fmt.Errorf("subscription %s closed", col)
			}
			if err := c.apply(ctx, col); err != nil {
				return err
			}
		}
	}
}

// apply loads a full snapshot and replaces the store's collection. An empty
// result replaces the collection with emptiness; the store's readiness flag
// is what distinguishes not-yet-loaded from loaded-and-empty.
func (c *Coordinator) apply(ctx context.Context, col ports.Collection) error {
	switch col {
	case ports.ColUsers:
		users, err := c.source.Users(ctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		c.store.ReplaceUsers(users)
	case ports.ColJobs:
		jobs, err := c.source.Jobs(ctx)
		if err != nil {
			return fmt.Errorf("load jobs: %w", err)
		}
		c.store.ReplaceJobs(jobs)
	case ports.ColHelperProfiles:
		profiles, err := c.source.HelperProfiles(ctx)
		if err != nil {
			return fmt.Errorf("load helper profiles: %w", err)
		}
		for i := range profiles {
			if profiles[i].InterestedCount != len(profiles[i].InterestedIDs) {
				metrics.InvariantViolationsTotal.Inc()
				c.log.Error().
					Str("profile_id", profiles[i].ID).
					Int("count", profiles[i].InterestedCount).
					Int("set", len(profiles[i].InterestedIDs)).
					Msg("interested counter out of step with set")
			}
		}
		c.store.ReplaceHelperProfiles(profiles)
	case ports.ColInteractions:
		interactions, err := c.source.Interactions(ctx)
		if err != nil {
			return fmt.Errorf("load interactions: %w", err)
		}
		c.store.ReplaceInteractions(interactions)
	case ports.ColBoardPosts:
		posts, err := c.source.BoardPosts(ctx)
		if err != nil {
			return fmt.Errorf("load board posts: %w", err)
		}
		c.store.ReplaceBoardPosts(posts)
	case ports.ColBoardComments:
		comments, err := c.source.BoardComments(ctx)
		if err != nil {
			return fmt.Errorf("load board comments: %w", err)
		}
		c.store.ReplaceBoardComments(comments)
	case ports.ColSiteConfig:
		cfg, err := c.source.SiteConfig(ctx)
		if err != nil {
			// Absent singleton means not created yet, not a failed load.
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("load site config: %w", err)
			}
			cfg = nil
		}
		c.store.ReplaceSiteConfig(cfg)
	default:
		return fmt.Errorf("unknown collection %q", col)
	}

	metrics.BatchesAppliedTotal.WithLabelValues(string(col)).Inc()
	c.log.Debug().Str("collection", string(col)).Msg("snapshot applied")
	return nil
}
