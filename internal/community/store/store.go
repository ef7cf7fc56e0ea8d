package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and make it obvious
// which tables an operation touches.
type Store interface {
	Communities() Communities
	Users() Users
	Members() Members
	Invitations() Invitations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns an
	// error and committing otherwise. This is the recommended way to run
	// multi-step operations that must be atomic (e.g., accept + join).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It exposes the same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Communities interface {
	// GetCommunityByID returns a community by id.
	GetCommunityByID(ctx context.Context, id string) (domain.Community, error)

	// CreateCommunity inserts a new community (id is provided via ULID).
	CreateCommunity(ctx context.Context, c domain.Community) error
}

type Users interface {
	// GetUserByID returns a user account by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user account by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a user row. Account management is owned by the
	// platform user service; this exists for fixtures and replication.
	CreateUser(ctx context.Context, u domain.User) error
}

// MemberFilter narrows a member listing. Zero-valued fields are ignored; all
// supplied filters combine with logical AND.
type MemberFilter struct {
	// Name matches case-insensitively as a substring of first or last name.
	Name string
	// Email matches case-insensitively as a substring of the email address.
	Email string
	// JoinedFrom/JoinedTo are inclusive bounds on the membership join date.
	JoinedFrom *time.Time
	JoinedTo   *time.Time
}

type Members interface {
	// GetMember returns the member view for a user within a community.
	GetMember(ctx context.Context, communityID, userID string) (domain.Member, error)

	// ListMembers returns one page of the filtered member sequence in join
	// order, plus the post-filter total count.
	ListMembers(ctx context.Context, communityID string, f MemberFilter, offset, limit int) ([]domain.Member, int, error)

	// AddMember inserts a community association. Returns ErrAlreadyExists if
	// the user is already a member.
	AddMember(ctx context.Context, communityID, userID string, joinedAt time.Time) error

	// RemoveMember deletes the association. Returns ErrNotFound when no row
	// was removed, which is what makes concurrent removal observably
	// idempotent.
	RemoveMember(ctx context.Context, communityID, userID string) error
}

type Invitations interface {
	// CreateInvitation writes a new invitation. A partial unique index on
	// (community_id, email) where status='pending' closes the check-then-
	// insert race; violations surface as ErrAlreadyExists.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation by id.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByTokenHash returns an invitation by secret fingerprint.
	GetInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// GetPendingInvitation returns the stored-pending invitation for a
	// (community, email) pair, expired or not; lazy expiry is the service's
	// concern.
	GetPendingInvitation(ctx context.Context, communityID, email string) (domain.Invitation, error)

	// ListInvitations returns all invitations for a community, newest first.
	ListInvitations(ctx context.Context, communityID string) ([]domain.Invitation, error)

	// MarkAccepted transitions pending -> accepted, recording who redeemed it
	// and when. Returns ErrNotFound if the row is no longer pending.
	MarkAccepted(ctx context.Context, id, acceptedBy string, acceptedAt time.Time) error

	// MarkStatus transitions pending -> expired|revoked. Returns ErrNotFound
	// if the row is no longer pending.
	MarkStatus(ctx context.Context, id string, status domain.InvitationStatus) error
}
