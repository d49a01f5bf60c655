package service

import (
	"fmt"

	"github.com/hajobjah/marketplace/internal/api/metrics"
	"github.com/hajobjah/marketplace/internal/core/domain"
	"github.com/hajobjah/marketplace/internal/core/moderation"
	"github.com/hajobjah/marketplace/internal/core/store"
)

// guard runs the uniform precondition pipeline every write passes through:
// authentication, account restrictions, site lock, content screening, and
// ownership. It reads the last-known view from the entity store; the backend
// remains authoritative and the next subscription batch reconciles.
type guard struct {
	store  *store.Store
	filter *moderation.Filter
}

// actor resolves the acting user. An empty id or a missing record is an
// unauthenticated write; the caller reroutes into the login workflow rather
// than dropping the write silently.
func (g *guard) actor(actorID string) (domain.User, error) {
	if actorID == "" {
		metrics.WritesRejectedTotal.WithLabelValues("unauthenticated").Inc()
		return domain.User{}, domain.ErrUnauthenticated
	}
	u, ok := g.store.UserByID(actorID)
	if !ok {
		metrics.WritesRejectedTotal.WithLabelValues("unauthenticated").Inc()
		return domain.User{}, fmt.Errorf("actor %s: %w", actorID, domain.ErrUnauthenticated)
	}
	return u, nil
}

// canWrite enforces frozen/muted/site-lock restrictions. Muting blocks only
// create operations; freezing blocks any write. A locked site blocks
// non-admin writes entirely.
func (g *guard) canWrite(u domain.User, create bool) error {
	if u.IsFrozen {
		metrics.WritesRejectedTotal.WithLabelValues("restricted").Inc()
		return fmt.Errorf("account frozen: %w", domain.ErrAccountRestricted)
	}
	if create && u.IsMuted {
		metrics.WritesRejectedTotal.WithLabelValues("restricted").Inc()
		return fmt.Errorf("account muted: %w", domain.ErrAccountRestricted)
	}
	if cfg := g.store.SiteConfig(); cfg != nil && cfg.IsSiteLocked && u.Role != domain.RoleAdmin {
		metrics.WritesRejectedTotal.WithLabelValues("restricted").Inc()
		return fmt.Errorf("site locked: %w", domain.ErrAccountRestricted)
	}
	return nil
}

// screen checks free-text fields against the blocked-term list.
func (g *guard) screen(texts ...string) error {
	if g.filter.Blocked(texts...) {
		metrics.WritesRejectedTotal.WithLabelValues("content").Inc()
		return domain.ErrContentRejected
	}
	return nil
}

// canModify allows the record owner or an admin.
func (g *guard) canModify(ownerID string, u domain.User) error {
	if u.ID == ownerID || u.Role == domain.RoleAdmin {
		return nil
	}
	metrics.WritesRejectedTotal.WithLabelValues("forbidden").Inc()
	return domain.ErrForbidden
}

// canModerateBoard allows the owner, an admin, or a moderator — unless the
// target was authored by an admin, which moderators may not touch.
func (g *guard) canModerateBoard(ownerID string, u domain.User) error {
	if u.ID == ownerID || u.Role == domain.RoleAdmin {
		return nil
	}
	if u.Role == domain.RoleModerator {
		if author, ok := g.store.UserByID(ownerID); ok && author.Role == domain.RoleAdmin {
			metrics.WritesRejectedTotal.WithLabelValues("forbidden").Inc()
			return fmt.Errorf("admin-authored content: %w", domain.ErrForbidden)
		}
		return nil
	}
	metrics.WritesRejectedTotal.WithLabelValues("forbidden").Inc()
	return domain.ErrForbidden
}

// contactSnapshot rebuilds the denormalized contact string from the actor's
// current contact fields. Labels and fallback follow the original site copy.
func contactSnapshot(u domain.User) string {
	var parts []string
	if u.Mobile != "" {
		parts = append(parts, "เบอร์โทร: "+u.Mobile)
	}
	if u.LineID != "" {
		parts = append(parts, "LINE ID: "+u.LineID)
	}
	if u.Facebook != "" {
		parts = append(parts, "Facebook: "+u.Facebook)
	}
	if len(parts) == 0 {
		return "ไม่ระบุช่องทางติดต่อ"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "\n" + p
	}
	return out
}
