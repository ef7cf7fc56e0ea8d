package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Redeem an invite token for the authenticated user and grant the community membership.
//	@Description	Expired invitations answer 410 Gone; already accepted or revoked invitations answer 409 Conflict.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		communitysdk.AcceptInviteRequest	true	"Invite token"
//	@Success		200		{object}	communitysdk.AcceptInviteResponse	"invitation_id, community_id, status, accepted_at"
//	@Failure		400		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invites/accept [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	// Parse JSON request body
	var req communitysdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}
	if req.InviteToken == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "invite_token is required",
		})
		return
	}

	accepted, err := h.InviteService.AcceptInvitation(ctx, req.InviteToken, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrCallerUnknown):
			httpx.WriteJSON(w, http.StatusUnauthorized, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeUnauthorized,
				ErrorDescription: "Accepting user is not recognised",
			})
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeNotFound,
				ErrorDescription: "Invite token is invalid",
			})
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteJSON(w, http.StatusGone, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeGone,
				ErrorDescription: "Invitation has expired",
			})
		case errors.Is(err, service.ErrInviteNotPending):
			httpx.WriteJSON(w, http.StatusConflict, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeConflict,
				ErrorDescription: "Invitation has already been resolved",
			})
		default:
			log.Error("failed to accept invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to accept invitation",
			})
		}
		return
	}

	response := communitysdk.AcceptInviteResponse{
		InvitationID: accepted.ID,
		CommunityID:  accepted.CommunityID,
		Status:       string(accepted.Status),
	}
	if accepted.AcceptedAt != nil {
		response.AcceptedAt = *accepted.AcceptedAt
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
