package domain

import "time"

// Community is the owning scope for invitations and memberships.
type Community struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
