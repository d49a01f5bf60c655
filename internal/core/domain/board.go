package domain

import "time"

// BoardPost is a community board entry. Likes holds the ids of users who
// liked the post; toggling a like adds or removes the caller's id.
type BoardPost struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Body        string    `json:"body" bson:"body"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Username    string    `json:"username" bson:"username"`
	AuthorPhoto string    `json:"author_photo,omitempty" bson:"author_photo,omitempty"`
	Likes       []string  `json:"likes" bson:"likes"`
	IsPinned    bool      `json:"is_pinned" bson:"is_pinned"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// BoardComment belongs to exactly one BoardPost. Deleting the post deletes
// all its comments in the same transaction; an orphaned comment is a
// consistency violation.
type BoardComment struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	PostID      string    `json:"post_id" bson:"post_id"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Username    string    `json:"username" bson:"username"`
	AuthorPhoto string    `json:"author_photo,omitempty" bson:"author_photo,omitempty"`
	Text        string    `json:"text" bson:"text"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}
