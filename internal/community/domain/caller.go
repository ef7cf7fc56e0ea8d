package domain

// Caller is the already-authenticated identity handed to the services by the
// HTTP adapter. The services never see raw tokens; the adapter resolves the
// bearer token into this structure before any business logic runs.
type Caller struct {
	UserID string
	Role   UserType

	// Communities lists the community ids this caller administers. Only
	// meaningful for community_admin callers; platform_admins act everywhere.
	Communities []string
}

// Administers reports whether the caller is a designated administrator of the
// given community.
func (c Caller) Administers(communityID string) bool {
	for _, id := range c.Communities {
		if id == communityID {
			return true
		}
	}
	return false
}
