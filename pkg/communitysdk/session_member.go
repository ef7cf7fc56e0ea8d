package communitysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListMembers returns one page of a community's members. All supplied filters
// combine with logical AND.
func (s *Session) ListMembers(
	ctx context.Context,
	communityID string,
	query MemberListQuery,
) (*ListMembersResponse, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Name != "" {
		params.Set("name", query.Name)
	}
	if query.Email != "" {
		params.Set("email", query.Email)
	}
	if !query.JoinDateFrom.IsZero() {
		params.Set("join_date_from", query.JoinDateFrom.Format(time.RFC3339))
	}
	if !query.JoinDateTo.IsZero() {
		params.Set("join_date_to", query.JoinDateTo.Format(time.RFC3339))
	}

	path := fmt.Sprintf("/v1/communities/%s/members", url.PathEscape(communityID))
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list ListMembersResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// RemoveMember removes a user's community association and returns a snapshot
// of the removed member. Community administrators cannot be removed and
// answer 403 Forbidden.
func (s *Session) RemoveMember(
	ctx context.Context,
	communityID, memberID string,
) (*RemoveMemberResponse, error) {
	path := fmt.Sprintf("/v1/communities/%s/members/%s",
		url.PathEscape(communityID), url.PathEscape(memberID))
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return nil, err
	}

	var removed RemoveMemberResponse
	if err := decodeJSON(resp, &removed, http.StatusOK); err != nil {
		return nil, err
	}
	return &removed, nil
}
