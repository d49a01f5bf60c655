package domain

import "time"

// PostingExpiry is how long a job or helper posting stays listed as active.
// Expiry is display-only; expired postings remain visible in their owner's
// management view.
const PostingExpiry = 30 * 24 * time.Hour

// JobPosting is a request for help posted by an employer.
//
// Contact is a point-in-time copy of the owner's contact fields taken at
// create/edit time, not a live join. The poster may change contact info later
// without rewriting historical posts, and the posting stays self-contained.
type JobPosting struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	Title           string         `json:"title" bson:"title"`
	Location        string         `json:"location" bson:"location"`
	DateTime        string         `json:"date_time,omitempty" bson:"date_time,omitempty"`
	Payment         string         `json:"payment" bson:"payment"`
	Description     string         `json:"description" bson:"description"`
	Contact         string         `json:"contact" bson:"contact"`
	DesiredAgeStart int            `json:"desired_age_start,omitempty" bson:"desired_age_start,omitempty"`
	DesiredAgeEnd   int            `json:"desired_age_end,omitempty" bson:"desired_age_end,omitempty"`
	PreferredGender Gender         `json:"preferred_gender,omitempty" bson:"preferred_gender,omitempty"`
	DesiredEducation EducationLevel `json:"desired_education,omitempty" bson:"desired_education,omitempty"`
	DateNeededFrom  string         `json:"date_needed_from,omitempty" bson:"date_needed_from,omitempty"` // YYYY-MM-DD
	DateNeededTo    string         `json:"date_needed_to,omitempty" bson:"date_needed_to,omitempty"`
	TimeNeededStart string         `json:"time_needed_start,omitempty" bson:"time_needed_start,omitempty"` // HH:MM
	TimeNeededEnd   string         `json:"time_needed_end,omitempty" bson:"time_needed_end,omitempty"`
	OwnerID         string         `json:"owner_id" bson:"owner_id"`
	Username        string         `json:"username" bson:"username"`
	PostedAt        time.Time      `json:"posted_at" bson:"posted_at"`
	IsSuspicious    bool           `json:"is_suspicious" bson:"is_suspicious"`
	IsPinned        bool           `json:"is_pinned" bson:"is_pinned"`
	IsHired         bool           `json:"is_hired" bson:"is_hired"`
}

// HelperProfile is a person offering help. Gender, birthdate and education are
// snapshots of the owner's user record taken at creation time.
//
// InterestedCount is a cached projection of len(InterestedIDs), refreshed
// transactionally by the write path. It is a deliberate denormalization: the
// count is never recomputed from the interaction log on read.
type HelperProfile struct {
	ID               string         `json:"id" bson:"_id,omitempty"`
	Title            string         `json:"title" bson:"title"`
	Details          string         `json:"details" bson:"details"`
	Area             string         `json:"area" bson:"area"`
	Availability     string         `json:"availability,omitempty" bson:"availability,omitempty"`
	AvailableFrom    string         `json:"available_from,omitempty" bson:"available_from,omitempty"` // YYYY-MM-DD
	AvailableTo      string         `json:"available_to,omitempty" bson:"available_to,omitempty"`
	Contact          string         `json:"contact" bson:"contact"`
	Gender           Gender         `json:"gender,omitempty" bson:"gender,omitempty"`
	Birthdate        string         `json:"birthdate,omitempty" bson:"birthdate,omitempty"`
	Education        EducationLevel `json:"education_level,omitempty" bson:"education_level,omitempty"`
	OwnerID          string         `json:"owner_id" bson:"owner_id"`
	Username         string         `json:"username" bson:"username"`
	PostedAt         time.Time      `json:"posted_at" bson:"posted_at"`
	IsSuspicious     bool           `json:"is_suspicious" bson:"is_suspicious"`
	IsPinned         bool           `json:"is_pinned" bson:"is_pinned"`
	IsUnavailable    bool           `json:"is_unavailable" bson:"is_unavailable"`
	VerifiedExperience bool         `json:"verified_experience" bson:"verified_experience"`
	InterestedCount  int            `json:"interested_count" bson:"interested_count"`
	InterestedIDs    []string       `json:"interested_ids,omitempty" bson:"interested_ids,omitempty"`
}

// InteractionContactHelper is the only interaction type currently recorded.
const InteractionContactHelper = "contact_helper"

// Interaction is an append-only log record of a contact event between an
// employer and a helper. Never mutated or deleted by normal flow.
type Interaction struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	HelperID   string    `json:"helper_user_id" bson:"helper_user_id"`
	EmployerID string    `json:"employer_user_id" bson:"employer_user_id"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	Type       string    `json:"type" bson:"type"`
}
