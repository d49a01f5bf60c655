package domain

import "time"

// UserRole is authoritative for every privilege check. A displayed admin or
// moderator badge is a projection of this field, never stored separately.
type UserRole string

const (
	RoleAdmin     UserRole = "Admin"
	RoleModerator UserRole = "Moderator"
	RoleMember    UserRole = "Member"
)

// Gender options follow the original site copy.
type Gender string

const (
	GenderMale         Gender = "ชาย"
	GenderFemale       Gender = "หญิง"
	GenderOther        Gender = "อื่น ๆ / เพศทางเลือก"
	GenderNotSpecified Gender = "ไม่ระบุ"
)

// EducationLevel values are shared by user profiles and job requirements.
type EducationLevel string

const (
	EducationNotStated    EducationLevel = "ไม่ได้ระบุ"
	EducationAny          EducationLevel = "ไม่จำกัด"
	EducationMiddleSchool EducationLevel = "ม.ต้น"
	EducationHighSchool   EducationLevel = "ม.ปลาย"
	EducationVocational   EducationLevel = "ปวช./ปวส."
	EducationBachelor     EducationLevel = "ปริญญาตรี"
	EducationHigher       EducationLevel = "สูงกว่าปริญญาตรี"
)

// Personality holds the free-text self-description fields. Profile
// completeness requires at least one of them to be non-empty.
type Personality struct {
	FavoriteMusic string `json:"favorite_music,omitempty" bson:"favorite_music,omitempty"`
	FavoriteBook  string `json:"favorite_book,omitempty" bson:"favorite_book,omitempty"`
	FavoriteMovie string `json:"favorite_movie,omitempty" bson:"favorite_movie,omitempty"`
	Hobbies       string `json:"hobbies,omitempty" bson:"hobbies,omitempty"`
	FavoriteFood  string `json:"favorite_food,omitempty" bson:"favorite_food,omitempty"`
	DislikedThing string `json:"disliked_thing,omitempty" bson:"disliked_thing,omitempty"`
	IntroSentence string `json:"intro_sentence,omitempty" bson:"intro_sentence,omitempty"`
}

// User models an authenticated actor. Accounts are never hard deleted;
// deactivation is done by freezing.
type User struct {
	ID           string         `json:"id" bson:"_id,omitempty"`
	DisplayName  string         `json:"display_name" bson:"display_name"`
	Username     string         `json:"username" bson:"username"`
	Email        string         `json:"email,omitempty" bson:"email"`
	PasswordHash string         `json:"-" bson:"password_hash"`
	Role         UserRole       `json:"role" bson:"role"`
	Mobile       string         `json:"mobile" bson:"mobile"`
	LineID       string         `json:"line_id,omitempty" bson:"line_id,omitempty"`
	Facebook     string         `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Gender       Gender         `json:"gender,omitempty" bson:"gender,omitempty"`
	Birthdate    string         `json:"birthdate,omitempty" bson:"birthdate,omitempty"` // YYYY-MM-DD
	Education    EducationLevel `json:"education_level,omitempty" bson:"education_level,omitempty"`
	PhotoURL     string         `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	Address      string         `json:"address,omitempty" bson:"address,omitempty"`
	Personality  Personality    `json:"personality" bson:"personality"`
	IsMuted      bool           `json:"is_muted" bson:"is_muted"`
	IsFrozen     bool           `json:"is_frozen" bson:"is_frozen"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}

// IsStaff reports whether the user's role replaces the score-based
// reputation badge with a fixed role badge.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleModerator
}
