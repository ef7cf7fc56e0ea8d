package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

type InviteRevokeHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Revoke Invitation Endpoint
//	@Description	Withdraw a pending invitation. Invitations that are already accepted, revoked or expired answer 409 Conflict.
//	@Tags			Invitations
//	@Produce		json
//	@Param			communityID		path		string							true	"Community ID"
//	@Param			invitationID	path		string							true	"Invitation ID"
//	@Success		200				{object}	communitysdk.RevokeInviteResponse	"invitation_id, status"
//	@Failure		403				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		409				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/communities/{communityID}/invites/{invitationID}/revoke [post].
func (h *InviteRevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	invitationID := r.PathValue("invitationID")

	revoked, err := h.InviteService.RevokeInvitation(ctx, caller, communityID, invitationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPermitted):
			httpx.WriteJSON(w, http.StatusForbidden, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeForbidden,
				ErrorDescription: "Caller may not manage this community",
			})
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeNotFound,
				ErrorDescription: "Invitation not found",
			})
		case errors.Is(err, service.ErrInviteNotPending):
			httpx.WriteJSON(w, http.StatusConflict, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeConflict,
				ErrorDescription: "Invitation is no longer pending",
			})
		default:
			log.Error("failed to revoke invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to revoke invitation",
			})
		}
		return
	}

	response := communitysdk.RevokeInviteResponse{
		InvitationID: revoked.ID,
		CommunityID:  revoked.CommunityID,
		Status:       string(revoked.Status),
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
