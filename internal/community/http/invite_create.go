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

type InviteCreateHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Mint a pending invitation for an email address. The invite token in the response is shown exactly once; only its fingerprint is stored.
//	@Description	At most one unexpired pending invitation may exist per community and email.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			communityID	path		string								true	"Community ID"
//	@Param			request		body		communitysdk.CreateInviteRequest	true	"Invite request"
//	@Success		201			{object}	communitysdk.CreateInviteResponse	"invitation_id, invite_token, expiration_date"
//	@Failure		400			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		403			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		404			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		409			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		500			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/communities/{communityID}/invites [post].
func (h *InviteCreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	// Parse JSON request body
	var req communitysdk.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	created, err := h.InviteService.CreateInvitation(ctx, caller, communityID, req.Email, req.ExpirationHours)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInviteRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
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
		case errors.Is(err, service.ErrDuplicateInvite):
			httpx.WriteJSON(w, http.StatusConflict, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeConflict,
				ErrorDescription: "An active invitation already exists for this email",
			})
		default:
			log.Error("failed to create invitation", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to create invitation",
			})
		}
		return
	}

	response := communitysdk.CreateInviteResponse{
		InvitationID:   created.InvitationID,
		CommunityID:    communityID,
		Email:          created.Email,
		InviteToken:    created.Secret,
		Status:         string(created.Status),
		ExpirationDate: created.ExpirationDate,
	}

	httpx.WriteJSON(w, http.StatusCreated, response)
}
