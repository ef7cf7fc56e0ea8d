/*
Package communitysdk provides a client SDK for the Huddle community service.

# Overview

The package is organized around two main types:

  - SDKClient: Provides unauthenticated operations (health probes) and creates
    authenticated sessions from an access token.
  - Session: Provides the authenticated invitation and membership operations.

Authentication is owned by the platform identity service; this SDK never mints
tokens itself. Obtain a JWT access token elsewhere and hand it to the client:

	client := communitysdk.NewSDKClient("https://community.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Attach a token to perform authenticated operations
	session := client.WithToken(accessToken)

	invite, err := session.CreateInvite(ctx, communityID, communitysdk.CreateInviteRequest{
		Email:           "new.member@example.com",
		ExpirationHours: 72,
	})

# Error Handling

Non-2xx responses are returned as *APIError, carrying the HTTP status code and
the service's error envelope:

	_, err := session.RevokeInvite(ctx, communityID, invitationID)
	var apiErr *communitysdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == communitysdk.ErrorCodeConflict {
		// invitation was already accepted, expired or revoked
	}

# Thread Safety

Sessions hold only immutable state and are safe for concurrent use.
*/
package communitysdk
