package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/service"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/httpx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type MembersListHandler struct {
	MembershipService *service.MembershipService
}

// ServeHTTP godoc
//
//	@Summary		List Members Endpoint
//	@Description	List a community's members with pagination. Name and email filters match case-insensitive substrings;
//	@Description	join date bounds are inclusive; all supplied filters combine with logical AND.
//	@Tags			Members
//	@Produce		json
//	@Param			communityID		path		string							true	"Community ID"
//	@Param			page			query		int								false	"Page number, starting at 1"	default(1)
//	@Param			limit			query		int								false	"Page size, between 1 and 100"	default(10)
//	@Param			name			query		string							false	"Substring match on first or last name"
//	@Param			email			query		string							false	"Substring match on email"
//	@Param			join_date_from	query		string							false	"Inclusive lower bound, RFC 3339 timestamp or YYYY-MM-DD"
//	@Param			join_date_to	query		string							false	"Inclusive upper bound, RFC 3339 timestamp or YYYY-MM-DD"
//	@Success		200				{object}	communitysdk.ListMembersResponse	"members, pagination"
//	@Failure		400				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		404				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	communitysdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/communities/{communityID}/members [get].
func (h *MembersListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	communityID := r.PathValue("communityID")
	query := r.URL.Query()

	page, err := parseIntParam(query.Get("page"), defaultPage)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "page must be an integer",
		})
		return
	}
	limit, err := parseIntParam(query.Get("limit"), defaultLimit)
	if err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "limit must be an integer",
		})
		return
	}

	filter := store.MemberFilter{
		Name:  query.Get("name"),
		Email: query.Get("email"),
	}
	if filter.JoinedFrom, err = parseTimeParam(query.Get("join_date_from")); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "join_date_from must be an RFC 3339 timestamp or YYYY-MM-DD date",
		})
		return
	}
	if filter.JoinedTo, err = parseTimeParam(query.Get("join_date_to")); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
			Error:            communitysdk.ErrorCodeInvalidRequest,
			ErrorDescription: "join_date_to must be an RFC 3339 timestamp or YYYY-MM-DD date",
		})
		return
	}

	result, err := h.MembershipService.ListMembers(ctx, communityID, filter, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidListRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeInvalidRequest,
				ErrorDescription: err.Error(),
			})
		case errors.Is(err, service.ErrCommunityNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeNotFound,
				ErrorDescription: "Community not found",
			})
		default:
			log.Error("failed to list members", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, communitysdk.ErrorResponse{
				Error:            communitysdk.ErrorCodeServerError,
				ErrorDescription: "Failed to list members",
			})
		}
		return
	}

	response := communitysdk.ListMembersResponse{
		Members: make([]communitysdk.Member, 0, len(result.Members)),
		Pagination: communitysdk.PaginationInfo{
			CurrentPage: result.Pagination.CurrentPage,
			TotalPages:  result.Pagination.TotalPages,
			TotalCount:  result.Pagination.TotalCount,
			Limit:       result.Pagination.Limit,
			HasNextPage: result.Pagination.HasNextPage,
			HasPrevPage: result.Pagination.HasPrevPage,
		},
	}
	for _, m := range result.Members {
		response.Members = append(response.Members, toMember(m))
	}

	httpx.WriteJSON(w, http.StatusOK, response)
}

func toMember(m domain.Member) communitysdk.Member {
	return communitysdk.Member{
		UserID:    m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Name:      m.Name(),
		Email:     m.Email,
		UserType:  string(m.UserType),
		IsActive:  m.IsActive,
		JoinedAt:  m.CreatedAt,
		LastLogin: m.LastLogin,
	}
}

func parseIntParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// parseTimeParam accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("unparseable time %q", raw)
}
