package service

import (
	"errors"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
)

// ErrNotPermitted is returned whenever a caller's role is insufficient for an
// administrative membership action.
var ErrNotPermitted = errors.New("caller is not permitted to manage this community")

// CanManageMembership reports whether the caller may perform administrative
// membership actions (invite, revoke, remove) in the given community.
// platform_admins act across all communities; community_admins only within
// communities they are designated administrators of. This is the single
// authorization decision point; services never compare role strings directly.
func CanManageMembership(caller domain.Caller, communityID string) bool {
	switch caller.Role {
	case domain.UserTypePlatformAdmin:
		return true
	case domain.UserTypeCommunityAdmin:
		return caller.Administers(communityID)
	default:
		return false
	}
}

// IsProtectedMember reports whether a member is shielded from removal through
// the membership API. Community administrators can only be demoted through
// user management, never silently dropped from their own community.
func IsProtectedMember(m domain.Member) bool {
	return m.UserType == domain.UserTypeCommunityAdmin
}
