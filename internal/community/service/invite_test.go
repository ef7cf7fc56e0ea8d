package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/pkg/cryptox"
	"github.com/aussiebroadwan/huddle/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending invitation with the expected expiry", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, "NewMember@Example.com", 24)
		require.NoError(t, err)

		require.NotEmpty(t, created.InvitationID)
		require.Equal(t, "newmember@example.com", created.Email)
		require.Equal(t, domain.InvitationPending, created.Status)
		require.NotEmpty(t, created.Secret)
		require.WithinDuration(t, time.Now().Add(24*time.Hour), created.ExpirationDate, time.Minute)

		// Only the fingerprint is persisted, never the plaintext.
		stored, err := st.Invitations().GetInvitationByID(ctx, created.InvitationID)
		require.NoError(t, err)
		require.Equal(t, cryptox.Fingerprint(created.Secret), stored.TokenHash)
		require.NotEqual(t, created.Secret, stored.TokenHash)
	})

	t.Run("rejects out-of-range expiration hours", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		admin := platformAdmin()

		_, err := svc.CreateInvitation(ctx, admin, com.ID, "a@example.com", 0)
		require.ErrorIs(t, err, ErrInvalidInviteRequest)

		_, err = svc.CreateInvitation(ctx, admin, com.ID, "a@example.com", 169)
		require.ErrorIs(t, err, ErrInvalidInviteRequest)

		// Boundary values are in range.
		_, err = svc.CreateInvitation(ctx, admin, com.ID, "one@example.com", 1)
		require.NoError(t, err)
		_, err = svc.CreateInvitation(ctx, admin, com.ID, "week@example.com", 168)
		require.NoError(t, err)
	})

	t.Run("rejects malformed email addresses", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		admin := platformAdmin()

		for _, email := range []string{"", "no-at-sign", "two@@example.com", "Jane Doe <jane@example.com>"} {
			_, err := svc.CreateInvitation(ctx, admin, com.ID, email, 24)
			require.ErrorIs(t, err, ErrInvalidInviteRequest, "email %q", email)
		}
	})

	t.Run("conflicts on a duplicate active invitation", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		admin := platformAdmin()

		_, err := svc.CreateInvitation(ctx, admin, com.ID, "newmember@example.com", 24)
		require.NoError(t, err)

		_, err = svc.CreateInvitation(ctx, admin, com.ID, "newmember@example.com", 24)
		require.ErrorIs(t, err, ErrDuplicateInvite)
		require.Contains(t, ErrDuplicateInvite.Error(), "active invitation already exists")

		// Case and whitespace differences are the same address.
		_, err = svc.CreateInvitation(ctx, admin, com.ID, "  NewMember@example.com ", 24)
		require.ErrorIs(t, err, ErrDuplicateInvite)
	})

	t.Run("an expired pending invitation does not block a new one", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		stale := staleInvitation(com.ID, "slow@example.com")
		require.NoError(t, st.Invitations().CreateInvitation(ctx, stale))

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, "slow@example.com", 24)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, created.Status)

		// The stale row was lazily flipped to expired.
		old, err := st.Invitations().GetInvitationByID(ctx, stale.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationExpired, old.Status)
	})

	t.Run("community admin of another community is refused", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		_, err := svc.CreateInvitation(ctx, communityAdmin("some-other-community"), com.ID, "a@example.com", 24)
		require.ErrorIs(t, err, ErrNotPermitted)

		_, err = svc.CreateInvitation(ctx, plainMember(), com.ID, "a@example.com", 24)
		require.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("unknown community is refused", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		_, err := svc.CreateInvitation(ctx, platformAdmin(), idx.New().String(), "a@example.com", 24)
		require.ErrorIs(t, err, ErrCommunityNotFound)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems the secret and grants membership", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		invitee := seedUser(t, st, "Robin", "Hartley", "robin@example.com", domain.UserTypeMember)

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, invitee.Email, 24)
		require.NoError(t, err)

		accepted, err := svc.AcceptInvitation(ctx, created.Secret, invitee.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationAccepted, accepted.Status)
		require.NotNil(t, accepted.AcceptedBy)
		require.Equal(t, invitee.ID, *accepted.AcceptedBy)
		require.NotNil(t, accepted.AcceptedAt)

		member, err := st.Members().GetMember(ctx, com.ID, invitee.ID)
		require.NoError(t, err)
		require.Equal(t, invitee.Email, member.Email)
	})

	t.Run("unknown secret is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		_, err := svc.AcceptInvitation(ctx, "definitely-not-a-real-secret", idx.New().String())
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("second redemption conflicts", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		invitee := seedUser(t, st, "Robin", "Hartley", "robin@example.com", domain.UserTypeMember)

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, invitee.Email, 24)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, created.Secret, invitee.ID)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, created.Secret, invitee.ID)
		require.ErrorIs(t, err, ErrInviteNotPending)
	})

	t.Run("expired invitation is refused and marked expired", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		invitee := seedUser(t, st, "Robin", "Hartley", "robin@example.com", domain.UserTypeMember)

		secret, err := cryptox.NewSecret()
		require.NoError(t, err)
		stale := staleInvitation(com.ID, invitee.Email)
		stale.TokenHash = cryptox.Fingerprint(secret)
		require.NoError(t, st.Invitations().CreateInvitation(ctx, stale))

		_, err = svc.AcceptInvitation(ctx, secret, invitee.ID)
		require.ErrorIs(t, err, ErrInviteExpired)

		stored, err := st.Invitations().GetInvitationByID(ctx, stale.ID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationExpired, stored.Status)
	})

	t.Run("revoked invitation cannot be redeemed", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		invitee := seedUser(t, st, "Robin", "Hartley", "robin@example.com", domain.UserTypeMember)
		admin := platformAdmin()

		created, err := svc.CreateInvitation(ctx, admin, com.ID, invitee.Email, 24)
		require.NoError(t, err)
		_, err = svc.RevokeInvitation(ctx, admin, com.ID, created.InvitationID)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, created.Secret, invitee.ID)
		require.ErrorIs(t, err, ErrInviteNotPending)
	})

	t.Run("unknown accepting user is refused", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, "ghost@example.com", 24)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, created.Secret, idx.New().String())
		require.ErrorIs(t, err, ErrCallerUnknown)

		// The invitation stays pending for a later, valid redemption.
		stored, err := st.Invitations().GetInvitationByID(ctx, created.InvitationID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, stored.Status)
	})
}

func TestRevokeInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes a pending invitation", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		admin := communityAdmin(com.ID)

		created, err := svc.CreateInvitation(ctx, admin, com.ID, "a@example.com", 24)
		require.NoError(t, err)

		revoked, err := svc.RevokeInvitation(ctx, admin, com.ID, created.InvitationID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationRevoked, revoked.Status)

		// Revocation is terminal.
		_, err = svc.RevokeInvitation(ctx, admin, com.ID, created.InvitationID)
		require.ErrorIs(t, err, ErrInviteNotPending)
	})

	t.Run("invitation addressed under the wrong community is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		other := seedCommunity(t, st, "Harbour Runners")
		admin := platformAdmin()

		created, err := svc.CreateInvitation(ctx, admin, com.ID, "a@example.com", 24)
		require.NoError(t, err)

		_, err = svc.RevokeInvitation(ctx, admin, other.ID, created.InvitationID)
		require.ErrorIs(t, err, ErrInviteNotFound)

		// The invitation under its real community is untouched.
		stored, err := st.Invitations().GetInvitationByID(ctx, created.InvitationID)
		require.NoError(t, err)
		require.Equal(t, domain.InvitationPending, stored.Status)
	})

	t.Run("requires management rights on the owning community", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		created, err := svc.CreateInvitation(ctx, platformAdmin(), com.ID, "a@example.com", 24)
		require.NoError(t, err)

		_, err = svc.RevokeInvitation(ctx, communityAdmin("another-community"), com.ID, created.InvitationID)
		require.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("lazily expired invitation is already terminal", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		stale := staleInvitation(com.ID, "late@example.com")
		require.NoError(t, st.Invitations().CreateInvitation(ctx, stale))

		_, err := svc.RevokeInvitation(ctx, platformAdmin(), com.ID, stale.ID)
		require.ErrorIs(t, err, ErrInviteNotPending)
	})

	t.Run("unknown invitation is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		_, err := svc.RevokeInvitation(ctx, platformAdmin(), idx.New().String(), idx.New().String())
		require.ErrorIs(t, err, ErrInviteNotFound)
	})
}

func TestListInvitations(t *testing.T) {
	ctx := context.Background()

	t.Run("reports lazily expired invitations as expired", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")
		admin := platformAdmin()

		_, err := svc.CreateInvitation(ctx, admin, com.ID, "fresh@example.com", 24)
		require.NoError(t, err)

		stale := staleInvitation(com.ID, "stale@example.com")
		require.NoError(t, st.Invitations().CreateInvitation(ctx, stale))

		invitations, err := svc.ListInvitations(ctx, admin, com.ID)
		require.NoError(t, err)
		require.Len(t, invitations, 2)

		byEmail := map[string]domain.InvitationStatus{}
		for _, inv := range invitations {
			byEmail[inv.Email] = inv.Status
		}
		require.Equal(t, domain.InvitationPending, byEmail["fresh@example.com"])
		require.Equal(t, domain.InvitationExpired, byEmail["stale@example.com"])
	})

	t.Run("requires management rights", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}
		com := seedCommunity(t, st, "Brewers Collective")

		_, err := svc.ListInvitations(ctx, plainMember(), com.ID)
		require.ErrorIs(t, err, ErrNotPermitted)
	})
}

// staleInvitation builds a stored-pending invitation whose expiration is
// already in the past, the shape left behind when nobody redeemed in time.
func staleInvitation(communityID, email string) domain.Invitation {
	now := time.Now().UTC()
	return domain.Invitation{
		ID:             idx.New().String(),
		CommunityID:    communityID,
		Email:          email,
		TokenHash:      cryptox.Fingerprint(idx.New().String()),
		Status:         domain.InvitationPending,
		InvitedBy:      idx.New().String(),
		ExpirationDate: now.Add(-time.Hour),
		CreatedAt:      now.Add(-2 * time.Hour),
		UpdatedAt:      now.Add(-2 * time.Hour),
	}
}
