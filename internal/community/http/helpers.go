package http

import (
	"context"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
)

// callerFromContext builds the domain caller from the identity the authn
// middleware injected. Returns false when no authenticated identity is
// present.
func callerFromContext(ctx context.Context) (domain.Caller, bool) {
	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		return domain.Caller{}, false
	}

	role, _ := httpx.RoleFromContext(ctx)
	return domain.Caller{
		UserID:      userID,
		Role:        domain.ParseUserType(role),
		Communities: httpx.CommunitiesFromContext(ctx),
	}, true
}

// adminRoles lists the platform roles allowed through the membership
// management endpoints. The per-community check still runs in the service.
func adminRoles() []string {
	return []string{
		string(domain.UserTypeCommunityAdmin),
		string(domain.UserTypePlatformAdmin),
	}
}
