package communitysdk

import "time"

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code (e.g. "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Invitation Types
// ============================================================================

// CreateInviteRequest is the body for POST /v1/communities/{communityID}/invites.
type CreateInviteRequest struct {
	// Email is the invitee's address. It is normalized to lowercase server-side.
	Email string `json:"email"`

	// ExpirationHours is the invitation lifetime in hours, between 1 and 168.
	ExpirationHours int `json:"expiration_hours"`
}

// CreateInviteResponse is returned once from invite creation. InviteToken is
// the plaintext secret; the service stores only its hash, so this is the only
// time it can be read.
type CreateInviteResponse struct {
	InvitationID   string    `json:"invitation_id"`
	CommunityID    string    `json:"community_id"`
	Email          string    `json:"email"`
	InviteToken    string    `json:"invite_token"`
	Status         string    `json:"status"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// Invitation is one invitation in a listing. The status reflects lazy
// expiration: a stored pending row past its expiration reads as "expired".
type Invitation struct {
	InvitationID   string     `json:"invitation_id"`
	CommunityID    string     `json:"community_id"`
	Email          string     `json:"email"`
	Status         string     `json:"status"`
	InvitedBy      string     `json:"invited_by"`
	AcceptedBy     *string    `json:"accepted_by,omitempty"`
	AcceptedAt     *time.Time `json:"accepted_at,omitempty"`
	ExpirationDate time.Time  `json:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ListInvitesResponse is returned from GET /v1/communities/{communityID}/invites.
type ListInvitesResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// AcceptInviteRequest is the body for POST /v1/invites/accept. The accepting
// user is taken from the bearer token, not the body.
type AcceptInviteRequest struct {
	InviteToken string `json:"invite_token"`
}

// AcceptInviteResponse confirms a redeemed invitation and the granted
// membership.
type AcceptInviteResponse struct {
	InvitationID string    `json:"invitation_id"`
	CommunityID  string    `json:"community_id"`
	Status       string    `json:"status"`
	AcceptedAt   time.Time `json:"accepted_at"`
}

// RevokeInviteResponse confirms a withdrawn invitation.
type RevokeInviteResponse struct {
	InvitationID string `json:"invitation_id"`
	CommunityID  string `json:"community_id"`
	Status       string `json:"status"`
}

// ============================================================================
// Membership Types
// ============================================================================

// Member is one member row in a listing. JoinedAt is when the user joined the
// community, not when the account was created.
type Member struct {
	UserID    string     `json:"user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	UserType  string     `json:"user_type"`
	IsActive  bool       `json:"is_active"`
	JoinedAt  time.Time  `json:"joined_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// PaginationInfo describes the page envelope of a member listing.
type PaginationInfo struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// ListMembersResponse is returned from GET /v1/communities/{communityID}/members.
type ListMembersResponse struct {
	Members    []Member       `json:"members"`
	Pagination PaginationInfo `json:"pagination"`
}

// MemberListQuery carries the optional filters and pagination for a member
// listing. Zero values are omitted from the request, leaving the server
// defaults (page 1, limit 10) in charge.
type MemberListQuery struct {
	Page  int
	Limit int

	// Name matches first or last name by case-insensitive substring.
	Name string

	// Email matches the email address by case-insensitive substring.
	Email string

	// JoinDateFrom and JoinDateTo bound the join date inclusively.
	JoinDateFrom time.Time
	JoinDateTo   time.Time
}

// RemoveMemberResponse is the snapshot of a removed member.
type RemoveMemberResponse struct {
	MemberID  string    `json:"member_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RemovedAt time.Time `json:"removed_at"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthChecks reports the status of the service's critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned from the /livez and /readyz probes. Checks is
// only populated by /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
