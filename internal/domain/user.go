package domain

import (
	"strings"
	"time"
)

// User is a registered account. PasswordHash never leaves the process.
type User struct {
	ID             string     `json:"userId"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	ProfilePicture string     `json:"profilePicture"`
	FullName       string     `json:"fullName"`
	Bio            string     `json:"bio"`
	Country        string     `json:"country"`
	Birthdate      *time.Time `json:"birthdate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// UserSummary is the author/follower projection embedded in other views.
type UserSummary struct {
	ID             string `json:"userId"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
	FullName       string `json:"fullName"`
}

// Summary projects u down to its public summary.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		FullName:       u.FullName,
	}
}

// Identity is the authenticated viewer carried by a request.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserCounts holds the per-user aggregates shown on a profile.
type UserCounts struct {
	PostCount      int64 `json:"postCount"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
}

// Profile is a user enriched with counts and viewer-relative state.
type Profile struct {
	*User
	UserCounts
	IsFollowing bool       `json:"isFollowing"`
	Posts       []PostView `json:"posts,omitempty"`
}

// FollowEntry is one row of a follower/following listing.
type FollowEntry struct {
	UserSummary
	IsFollowing bool `json:"isFollowing"`
}

// ProfileUpdate carries a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Username       *string
	Email          *string
	FullName       *string
	Bio            *string
	Country        *string
	Birthdate      *time.Time
	ProfilePicture *string
}

// Normalize trims username and email and checks every text field. An empty
// value still means "unchanged"; a username or email of only spaces is rejected.
func (p ProfileUpdate) Normalize() (ProfileUpdate, error) {
	var err error
	if p.Username, err = trimmedName(p.Username); err != nil {
		return p, err
	}
	if p.Email, err = trimmedName(p.Email); err != nil {
		return p, err
	}
	for _, v := range []*string{p.Username, p.Email, p.FullName, p.Bio, p.Country, p.ProfilePicture} {
		if v != nil && !ValidText(*v) {
			return p, ErrInvalidInput
		}
	}
	return p, nil
}

func trimmedName(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*v)
	if t == "" && *v != "" {
		return nil, ErrInvalidInput
	}
	return &t, nil
}

// Apply overwrites the supplied, non-empty fields of u.
func (p ProfileUpdate) Apply(u *User) {
	set := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}
	set(&u.Username, p.Username)
	set(&u.Email, p.Email)
	set(&u.FullName, p.FullName)
	set(&u.Bio, p.Bio)
	set(&u.Country, p.Country)
	set(&u.ProfilePicture, p.ProfilePicture)
	if p.Birthdate != nil {
		u.Birthdate = p.Birthdate
	}
}
