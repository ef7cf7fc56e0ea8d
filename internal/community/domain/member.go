package domain

import "time"

// User is an account record. Account lifecycle (signup, deactivation, login
// tracking) is owned by the platform user service; this service only reads
// user rows to render members and to anchor membership foreign keys.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	UserType  UserType
	IsActive  bool
	CreatedAt time.Time
	LastLogin *time.Time
}

// Member is the read-through view of a user within a community. CreatedAt is
// the membership's join date, not the account creation time.
type Member struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	UserType  UserType
	IsActive  bool
	CreatedAt time.Time
	LastLogin *time.Time
}

// Name returns the member's display name.
func (m Member) Name() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
