package domain

import "time"

// InvitationStatus is the lifecycle state of an invitation. pending is the
// only non-terminal state; expired can also be derived lazily from
// ExpirationDate without a stored write.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Terminal reports whether no further transition is possible from s.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// Invitation is a time-bounded, single-use credential granting community
// membership upon redemption. Rows are never deleted; terminal invitations
// stay behind as the audit trail.
type Invitation struct {
	ID          string
	CommunityID string
	Email       string // normalized to lowercase
	TokenHash   string // SHA-256 fingerprint of the secret; plaintext never stored
	Status      InvitationStatus
	InvitedBy   string
	AcceptedBy  *string
	AcceptedAt  *time.Time

	ExpirationDate time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ExpiredAt reports whether the invitation is past its expiration at the
// given instant, regardless of the stored status.
func (i Invitation) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpirationDate)
}

// EffectiveStatus is the lazily-evaluated status: a stored pending that is
// past its expiration reads as expired. Every read path must go through this
// so listing and accepting never disagree about what is still pending.
func (i Invitation) EffectiveStatus(now time.Time) InvitationStatus {
	if i.Status == InvitationPending && i.ExpiredAt(now) {
		return InvitationExpired
	}
	return i.Status
}
