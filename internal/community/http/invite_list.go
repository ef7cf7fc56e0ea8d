package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

type InviteListHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List a community's invitations with lazily-evaluated statuses; a pending invitation past its expiration reads as expired.
//	@Tags			Invitations
//	@Produce		json
//	@Param			communityID	path		string							true	"Community ID"
//	@Success		200			{object}	communitysdk.ListInvitesResponse	"invitations"
//	@Failure		403			{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		404			{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		500			{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/communities/{communityID}/invites [get].
func (h *InviteListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	caller, ok := callerFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	communityID := r.PathValue("communityID")

	invitations, err := h.InviteService.ListInvitations(ctx, caller, communityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPermitted):
			httpx.WriteJSON(w, http.StatusForbidden, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeForbidden,
				ErrorDescription: "Caller may not manage this community",
			})
		case errors.Is(err, service.ErrCommunityNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeNotFound,
				ErrorDescription: "Community not found",
			})
		default:
			log.Error("failed to list invitations", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to list invitations",
			})
		}
		return
	}

	response := communitysdk.ListInvitesResponse{
		Invitations: make([]communitysdk.Invitation, 0, len(invitations)),
	}
	for _, inv := range invitations {
		response.Invitations = append(response.Invitations, toInvitation(inv))
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

// toInvitation maps a domain invitation onto the wire type. The token hash is
// deliberately absent; it never leaves the store.
func toInvitation(inv domain.Invitation) communitysdk.Invitation {
	return communitysdk.Invitation{
		InvitationID:   inv.ID,
		CommunityID:    inv.CommunityID,
		Email:          inv.Email,
		Status:         string(inv.Status),
		InvitedBy:      inv.InvitedBy,
		AcceptedBy:     inv.AcceptedBy,
		AcceptedAt:     inv.AcceptedAt,
		ExpirationDate: inv.ExpirationDate,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}
