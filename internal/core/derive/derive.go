// Package derive computes display attributes that no single record owns:
// trust badges, profile completeness, reputation levels, comment counts,
// contacted flags, and listing order.
//
// Every function is pure and side-effect free over snapshots of the entity
// store. Cross-collection views may be momentarily inconsistent (a new
// interaction can arrive before the matching counter update); callers simply
// recompute when the next batch lands.
package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/hajobjah/marketplace/internal/core/domain"
)

// ProfileComplete reports whether a user profile qualifies for the
// completeness badge: contact number AND photo AND address AND at least one
// personality field. A conjunction, not a weighted score.
func ProfileComplete(u *domain.User) bool {
	if u == nil {
		return false
	}
	p := u.Personality
	hasPersonality := strings.TrimSpace(p.FavoriteMusic) != "" ||
		strings.TrimSpace(p.FavoriteBook) != "" ||
		strings.TrimSpace(p.FavoriteMovie) != "" ||
		strings.TrimSpace(p.Hobbies) != "" ||
		strings.TrimSpace(p.FavoriteFood) != "" ||
		strings.TrimSpace(p.DislikedThing) != "" ||
		strings.TrimSpace(p.IntroSentence) != ""

	return u.Mobile != "" &&
		u.PhotoURL != "" &&
		strings.TrimSpace(u.Address) != "" &&
		hasPersonality
}

// ReputationScore is posts*2 + comments*0.5 for the given user.
func ReputationScore(userID string, posts []domain.BoardPost, comments []domain.BoardComment) float64 {
	var postCount, commentCount int
	for _, p := range posts {
		if p.OwnerID == userID {
			postCount++
		}
	}
	for _, c := range comments {
		if c.OwnerID == userID {
			commentCount++
		}
	}
	return float64(postCount)*2 + float64(commentCount)*0.5
}

// ReputationLevel selects the highest level whose threshold is <= score,
// scanning the table from highest to lowest.
func ReputationLevel(userID string, posts []domain.BoardPost, comments []domain.BoardComment) domain.Badge {
	score := ReputationScore(userID, posts, comments)
	levels := domain.ReputationLevels
	for i := len(levels) - 1; i >= 0; i-- {
		if score >= levels[i].MinScore {
			return levels[i]
		}
	}
	return levels[0]
}

// DisplayBadge returns the badge shown for a user. Admins and moderators get
// their fixed role badge; the score computation is bypassed entirely.
func DisplayBadge(u *domain.User, posts []domain.BoardPost, comments []domain.BoardComment) domain.Badge {
	if u == nil {
		return domain.ReputationLevels[0]
	}
	switch u.Role {
	case domain.RoleAdmin:
		return domain.AdminBadge
	case domain.RoleModerator:
		return domain.ModeratorBadge
	}
	return ReputationLevel(u.ID, posts, comments)
}

// HasBeenContacted reports whether any interaction records this user on the
// helper side.
func HasBeenContacted(helperUserID string, interactions []domain.Interaction) bool {
	for _, in := range interactions {
		if in.HelperID == helperUserID {
			return true
		}
	}
	return false
}

// IsExpired reports whether a posting older than the fixed expiry window
// should display as expired. Closed (hired/unavailable) postings never
// expire. Display-only: expired postings stay in the owner's management view.
func IsExpired(postedAt time.Time, closed bool, now time.Time) bool {
	if closed || postedAt.IsZero() {
		return false
	}
	return now.Sub(postedAt) > domain.PostingExpiry
}

// SortJobs orders jobs pinned-first then newest-first. The sort is stable:
// pinned-but-older items always precede unpinned-but-newer ones.
func SortJobs(jobs []domain.JobPosting) []domain.JobPosting {
	out := make([]domain.JobPosting, len(jobs))
	copy(out, jobs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out
}

// SortHelperProfiles orders helper profiles pinned-first then newest-first.
func SortHelperProfiles(profiles []domain.HelperProfile) []domain.HelperProfile {
	out := make([]domain.HelperProfile, len(profiles))
	copy(out, profiles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out
}

// SortBoardPosts orders board posts pinned-first then newest-first.
func SortBoardPosts(posts []domain.BoardPost) []domain.BoardPost {
	out := make([]domain.BoardPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
