package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

type MemberRemoveHandler struct {
	MembershipService *service.MembershipService
}

// ServeHTTP godoc
//
//	@Summary		Remove Member Endpoint
//	@Description	Remove a user's community association and return a snapshot of the removed member.
//	@Description	Community administrators cannot be removed through this endpoint.
//	@Tags			Members
//	@Produce		json
//	@Param			communityID	path		string								true	"Community ID"
//	@Param			memberID	path		string								true	"Member user ID"
//	@Success		200			{object}	communitysdk.RemoveMemberResponse	"member_id, name, email, removed_at"
//	@Failure		403			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		404			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Failure		500			{object}	communitysdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/communities/{communityID}/members/{memberID} [delete].
func (h *MemberRemoveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	memberID := r.PathValue("memberID")

	removed, err := h.MembershipService.RemoveMember(ctx, caller, communityID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotPermitted):
			httpx.WriteJSON(w, http.StatusForbidden, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeForbidden,
				ErrorDescription: "Caller may not manage this community",
			})
		case errors.Is(err, service.ErrProtectedMember):
			httpx.WriteJSON(w, http.StatusForbidden, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeForbidden,
				ErrorDescription: "Community administrators cannot be removed",
			})
		case errors.Is(err, service.ErrMemberNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeNotFound,
				ErrorDescription: "Member not found in this community",
			})
		default:
			log.Error("failed to remove member", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to remove member",
			})
		}
		return
	}

	response := communitysdk.RemoveMemberResponse{
		MemberID:  removed.ID,
		Name:      removed.Name,
		Email:     removed.Email,
		RemovedAt: removed.RemovedAt,
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}
