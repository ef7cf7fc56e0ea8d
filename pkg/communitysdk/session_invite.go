package communitysdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateInvite mints a pending invitation for an email address. Requires a
// token whose role administers the community. The returned InviteToken is
// shown exactly once.
func (s *Session) CreateInvite(
	ctx context.Context,
	communityID string,
	req CreateInviteRequest,
) (*CreateInviteResponse, error) {
	path := fmt.Sprintf("/v1/communities/%s/invites", url.PathEscape(communityID))
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var created CreateInviteResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListInvites returns all of a community's invitations, newest first, with
// lazily-evaluated statuses.
func (s *Session) ListInvites(
	ctx context.Context,
	communityID string,
) (*ListInvitesResponse, error) {
	path := fmt.Sprintf("/v1/communities/%s/invites", url.PathEscape(communityID))
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list ListInvitesResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// AcceptInvite redeems an invite token for the authenticated user, granting
// the community membership. Expired invitations answer 410 Gone; already
// resolved ones answer 409 Conflict.
func (s *Session) AcceptInvite(
	ctx context.Context,
	inviteToken string,
) (*AcceptInviteResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/invites/accept",
		AcceptInviteRequest{InviteToken: inviteToken})
	if err != nil {
		return nil, err
	}

	var accepted AcceptInviteResponse
	if err := decodeJSON(resp, &accepted, http.StatusOK); err != nil {
		return nil, err
	}
	return &accepted, nil
}

// RevokeInvite withdraws a pending invitation.
func (s *Session) RevokeInvite(
	ctx context.Context,
	communityID, invitationID string,
) (*RevokeInviteResponse, error) {
	path := fmt.Sprintf("/v1/communities/%s/invites/%s/revoke",
		url.PathEscape(communityID), url.PathEscape(invitationID))
	resp, err := s.doAuthRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}

	var revoked RevokeInviteResponse
	if err := decodeJSON(resp, &revoked, http.StatusOK); err != nil {
		return nil, err
	}
	return &revoked, nil
}
