package derive

import (
	"github.com/hajobjah/marketplace/internal/core/domain"
)

// EnrichedHelperProfile is a display projection of a helper profile plus the
// badges computed from the owner's user record and the interaction log.
// Never written back to the backend.
type EnrichedHelperProfile struct {
	domain.HelperProfile
	OwnerDisplayName     string `json:"owner_display_name"`
	OwnerPhoto           string `json:"owner_photo,omitempty"`
	OwnerAddress         string `json:"owner_address,omitempty"`
	ProfileCompleteBadge bool   `json:"profile_complete_badge"`
	WarningBadge         bool   `json:"warning_badge"`
	VerifiedBadge        bool   `json:"verified_badge"`
	HasBeenContacted     bool   `json:"has_been_contacted"`
}

// EnrichedBoardPost adds the comment count and the author's display badge.
type EnrichedBoardPost struct {
	domain.BoardPost
	CommentCount  int          `json:"comment_count"`
	AuthorBadge   domain.Badge `json:"author_badge"`
	IsAuthorAdmin bool         `json:"is_author_admin"`
}

// EnrichedBoardComment adds the author's display badge to a comment.
type EnrichedBoardComment struct {
	domain.BoardComment
	AuthorBadge domain.Badge `json:"author_badge"`
}

// EnrichHelperProfiles joins each profile against its owner's user record and
// the interaction log. Profiles whose owner record has not arrived yet are
// still returned, with the user-derived badges unset.
func EnrichHelperProfiles(
	profiles []domain.HelperProfile,
	users []domain.User,
	interactions []domain.Interaction,
) []EnrichedHelperProfile {
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]EnrichedHelperProfile, 0, len(profiles))
	for _, p := range profiles {
		e := EnrichedHelperProfile{
			HelperProfile:    p,
			WarningBadge:     p.IsSuspicious,
			VerifiedBadge:    p.VerifiedExperience,
			HasBeenContacted: HasBeenContacted(p.OwnerID, interactions),
		}
		if owner, ok := byID[p.OwnerID]; ok {
			e.OwnerDisplayName = owner.DisplayName
			e.OwnerPhoto = owner.PhotoURL
			e.OwnerAddress = owner.Address
			e.ProfileCompleteBadge = ProfileComplete(owner)
		}
		out = append(out, e)
	}
	return out
}

// EnrichBoardPosts computes per-post comment counts and author badges.
func EnrichBoardPosts(
	posts []domain.BoardPost,
	comments []domain.BoardComment,
	users []domain.User,
) []EnrichedBoardPost {
	counts := make(map[string]int, len(posts))
	for _, c := range comments {
		counts[c.PostID]++
	}
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]EnrichedBoardPost, 0, len(posts))
	for _, p := range posts {
		author := byID[p.OwnerID]
		out = append(out, EnrichedBoardPost{
			BoardPost:     p,
			CommentCount:  counts[p.ID],
			AuthorBadge:   DisplayBadge(author, posts, comments),
			IsAuthorAdmin: author != nil && author.Role == domain.RoleAdmin,
		})
	}
	return out
}

// EnrichBoardComments attaches the author's display badge to each comment.
func EnrichBoardComments(
	comments []domain.BoardComment,
	posts []domain.BoardPost,
	users []domain.User,
) []EnrichedBoardComment {
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	out := make([]EnrichedBoardComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, EnrichedBoardComment{
			BoardComment: c,
			AuthorBadge:  DisplayBadge(byID[c.OwnerID], posts, comments),
		})
	}
	return out
}
