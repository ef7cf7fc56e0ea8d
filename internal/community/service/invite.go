package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/pkg/cryptox"
	"github.com/aussiebroadwan/huddle/pkg/idx"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrDuplicateInvite      = errors.New("active invitation already exists")
	ErrInviteNotFound       = errors.New("invitation not found")
	ErrInviteExpired        = errors.New("invitation has expired")
	ErrInviteNotPending     = errors.New("invitation is no longer pending")
	ErrCommunityNotFound    = errors.New("community not found")
	ErrCallerUnknown        = errors.New("caller identity not recognised")
)

// Invitation expiry must sit between 1 hour and 7 days.
const (
	MinExpirationHours = 1
	MaxExpirationHours = 168
)

type InviteService struct {
	Store store.Store
}

// CreatedInvitation is returned once from CreateInvitation. Secret carries
// the plaintext invite token; it is never persisted and never retrievable
// again.
type CreatedInvitation struct {
	InvitationID   string
	Email          string
	Secret         string
	Status         domain.InvitationStatus
	ExpirationDate time.Time
}

// CreateInvitation mints a pending invitation for an email address. At most
// one unexpired pending invitation may exist per (community, email); a
// concurrent duplicate loses to the store's uniqueness constraint rather than
// to the lookup below.
func (s *InviteService) CreateInvitation(
	ctx context.Context,
	caller domain.Caller,
	communityID string,
	email string,
	expirationHours int,
) (CreatedInvitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorization: only an admin of this community (or a platform admin)
	// may invite.
	if !CanManageMembership(caller, communityID) {
		log.Warn("invite creation refused",
			slog.String("community_id", communityID),
			slog.String("caller_id", caller.UserID),
			slog.String("caller_role", string(caller.Role)),
		)
		return CreatedInvitation{}, ErrNotPermitted
	}

	// 2. Validate and normalize input.
	email, err := normalizeEmail(email)
	if err != nil {
		return CreatedInvitation{}, err
	}
	if expirationHours < MinExpirationHours || expirationHours > MaxExpirationHours {
		return CreatedInvitation{}, fmt.Errorf(
			"%w: expiration_hours must be between %d and %d",
			ErrInvalidInviteRequest, MinExpirationHours, MaxExpirationHours)
	}

	// 3. Community must exist.
	if _, err := s.Store.Communities().GetCommunityByID(ctx, communityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return CreatedInvitation{}, ErrCommunityNotFound
		}
		log.Error("failed to fetch community", slog.Any("error", err))
		return CreatedInvitation{}, err
	}

	now := time.Now().UTC()

	// 4. Duplicate check. A stored-pending invitation that is already past
	// its expiration does not block; it is lazily marked expired so the
	// partial unique index frees the slot for the new invite.
	existing, err := s.Store.Invitations().GetPendingInvitation(ctx, communityID, email)
	switch {
	case err == nil:
		if !existing.ExpiredAt(now) {
			return CreatedInvitation{}, ErrDuplicateInvite
		}
		if err := s.Store.Invitations().MarkStatus(ctx, existing.ID, domain.InvitationExpired); err != nil &&
			!errors.Is(err, store.ErrNotFound) {
			log.Error("failed to expire stale invitation", slog.Any("error", err))
			return CreatedInvitation{}, err
		}
		invitationsResolvedMetric.WithLabelValues("expired").Inc()
	case errors.Is(err, store.ErrNotFound):
		// no pending invitation, carry on
	default:
		log.Error("failed to check for existing invitation", slog.Any("error", err))
		return CreatedInvitation{}, err
	}

	// 5. Generate the secret and persist only its fingerprint.
	secret, err := cryptox.NewSecret()
	if err != nil {
		log.Error("failed to generate invite secret", slog.Any("error", err))
		return CreatedInvitation{}, err
	}

	inv := domain.Invitation{
		ID:             idx.New().String(),
		CommunityID:    communityID,
		Email:          email,
		TokenHash:      cryptox.Fingerprint(secret),
		Status:         domain.InvitationPending,
		InvitedBy:      caller.UserID,
		ExpirationDate: now.Add(time.Duration(expirationHours) * time.Hour),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 6. Insert. A unique-index violation here means another request won the
	// race between step 4 and now; surface it as the same conflict.
	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return CreatedInvitation{}, ErrDuplicateInvite
		}
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return CreatedInvitation{}, err
	}

	invitationsCreatedMetric.Inc()
	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("community_id", communityID),
		slog.String("invited_by", caller.UserID),
		slog.Time("expiration_date", inv.ExpirationDate),
	)

	return CreatedInvitation{
		InvitationID:   inv.ID,
		Email:          inv.Email,
		Secret:         secret,
		Status:         inv.Status,
		ExpirationDate: inv.ExpirationDate,
	}, nil
}

// AcceptInvitation redeems an invitation secret for the accepting user and
// grants the community membership in the same transaction. Expiration is
// evaluated lazily at this read; a pending invitation past its expiration is
// marked expired on the spot and refused.
func (s *InviteService) AcceptInvitation(
	ctx context.Context,
	secret string,
	acceptingUserID string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if secret == "" || acceptingUserID == "" {
		return domain.Invitation{}, fmt.Errorf(
			"%w: invite token and accepting user are required", ErrInvalidInviteRequest)
	}

	fingerprint := cryptox.Fingerprint(secret)
	now := time.Now().UTC()

	// 1. Look up by fingerprint; an unknown secret is indistinguishable from a
	// deleted one.
	inv, err := s.Store.Invitations().GetInvitationByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 2. Lazy expiration, checked before the stored status so a stale pending
	// row can never be redeemed. The expiry write happens outside the accept
	// transaction so it survives the refusal.
	if inv.ExpiredAt(now) {
		if inv.Status == domain.InvitationPending {
			if err := s.Store.Invitations().MarkStatus(ctx, inv.ID, domain.InvitationExpired); err != nil &&
				!errors.Is(err, store.ErrNotFound) {
				log.Error("failed to expire stale invitation", slog.Any("error", err))
				return domain.Invitation{}, err
			}
			invitationsResolvedMetric.WithLabelValues("expired").Inc()
		}
		return domain.Invitation{}, ErrInviteExpired
	}

	// 3. Terminal states refuse redemption.
	if inv.Status.Terminal() {
		return domain.Invitation{}, ErrInviteNotPending
	}

	// 4. The accepting identity must exist in our user replica.
	if _, err := s.Store.Users().GetUserByID(ctx, acceptingUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrCallerUnknown
		}
		return domain.Invitation{}, err
	}

	// 5. Flip to accepted and grant the membership atomically. The conditional
	// update loses cleanly if another accept slipped in.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().MarkAccepted(ctx, inv.ID, acceptingUserID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteNotPending
			}
			return err
		}

		if err := tx.Members().AddMember(ctx, inv.CommunityID, acceptingUserID, now); err != nil &&
			!errors.Is(err, store.ErrAlreadyExists) {
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Invitation{}, err
	}

	accepted := inv
	accepted.Status = domain.InvitationAccepted
	accepted.AcceptedBy = &acceptingUserID
	accepted.AcceptedAt = &now
	accepted.UpdatedAt = now

	invitationsResolvedMetric.WithLabelValues("accepted").Inc()
	log.Info("invitation accepted",
		slog.String("invitation_id", accepted.ID),
		slog.String("community_id", accepted.CommunityID),
		slog.String("accepted_by", acceptingUserID),
	)

	return accepted, nil
}

// RevokeInvitation withdraws a pending invitation belonging to the given
// community. An invitation addressed under the wrong community is treated as
// unknown. Terminal invitations (accepted, revoked, or lazily expired) refuse
// the transition.
func (s *InviteService) RevokeInvitation(
	ctx context.Context,
	caller domain.Caller,
	communityID string,
	invitationID string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}
	if inv.CommunityID != communityID {
		return domain.Invitation{}, ErrInviteNotFound
	}

	if !CanManageMembership(caller, inv.CommunityID) {
		return domain.Invitation{}, ErrNotPermitted
	}

	now := time.Now().UTC()
	if inv.EffectiveStatus(now).Terminal() {
		return domain.Invitation{}, ErrInviteNotPending
	}

	if err := s.Store.Invitations().MarkStatus(ctx, inv.ID, domain.InvitationRevoked); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInviteNotPending
		}
		log.Error("failed to revoke invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	invitationsResolvedMetric.WithLabelValues("revoked").Inc()
	log.Info("invitation revoked",
		slog.String("invitation_id", inv.ID),
		slog.String("community_id", inv.CommunityID),
		slog.String("revoked_by", caller.UserID),
	)

	inv.Status = domain.InvitationRevoked
	inv.UpdatedAt = now
	return inv, nil
}

// ListInvitations returns a community's invitations with lazily-evaluated
// statuses, so the listing can never call pending something that accept would
// refuse as expired.
func (s *InviteService) ListInvitations(
	ctx context.Context,
	caller domain.Caller,
	communityID string,
) ([]domain.Invitation, error) {
	if !CanManageMembership(caller, communityID) {
		return nil, ErrNotPermitted
	}

	if _, err := s.Store.Communities().GetCommunityByID(ctx, communityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}

	invitations, err := s.Store.Invitations().ListInvitations(ctx, communityID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range invitations {
		invitations[i].Status = invitations[i].EffectiveStatus(now)
	}
	return invitations, nil
}

// normalizeEmail lowercases, trims and validates an invitee address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInviteRequest)
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email %q is not a valid address", ErrInvalidInviteRequest, email)
	}
	return email, nil
}
