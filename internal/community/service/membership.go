package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/pkg/slogx"
)

var (
	ErrInvalidListRequest = errors.New("invalid member listing request")
	ErrMemberNotFound     = errors.New("member not found in this community")
	ErrProtectedMember    = errors.New("cannot remove community administrator")
)

// Listing pages are capped so a single request can never drag an entire
// community through the wire.
const (
	MinPageLimit = 1
	MaxPageLimit = 100
)

type MembershipService struct {
	Store store.Store
}

// Pagination describes one page of a filtered member listing.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int
	Limit       int
	HasNextPage bool
	HasPrevPage bool
}

// MemberPage is one page of members plus its pagination envelope.
type MemberPage struct {
	Members    []domain.Member
	Pagination Pagination
}

// RemovedMember is the snapshot returned after a successful removal.
type RemovedMember struct {
	ID        string
	Name      string
	Email     string
	RemovedAt time.Time
}

// ListMembers returns one page of a community's members. All supplied filters
// combine with logical AND; filtering and slicing happen at the store
// boundary so the count and the page always agree.
func (s *MembershipService) ListMembers(
	ctx context.Context,
	communityID string,
	filter store.MemberFilter,
	page, limit int,
) (MemberPage, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate pagination bounds.
	if page < 1 {
		return MemberPage{}, fmt.Errorf("%w: page must be >= 1", ErrInvalidListRequest)
	}
	if limit < MinPageLimit || limit > MaxPageLimit {
		return MemberPage{}, fmt.Errorf("%w: limit must be between %d and %d",
			ErrInvalidListRequest, MinPageLimit, MaxPageLimit)
	}
	if filter.JoinedFrom != nil && filter.JoinedTo != nil && filter.JoinedTo.Before(*filter.JoinedFrom) {
		return MemberPage{}, fmt.Errorf("%w: join_date_to precedes join_date_from", ErrInvalidListRequest)
	}

	// 2. Community must exist.
	if _, err := s.Store.Communities().GetCommunityByID(ctx, communityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MemberPage{}, ErrCommunityNotFound
		}
		return MemberPage{}, err
	}

	// 3. Fetch the page and the post-filter total.
	offset := (page - 1) * limit
	members, total, err := s.Store.Members().ListMembers(ctx, communityID, filter, offset, limit)
	if err != nil {
		log.Error("failed to list members",
			slog.String("community_id", communityID),
			slog.Any("error", err),
		)
		return MemberPage{}, err
	}

	totalPages := (total + limit - 1) / limit

	return MemberPage{
		Members: members,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			Limit:       limit,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1 && total > 0,
		},
	}, nil
}

// RemoveMember removes a user's community association. Community
// administrators are protected; removing them requires user management, not
// this API. A second concurrent removal observes ErrMemberNotFound, never a
// second success.
func (s *MembershipService) RemoveMember(
	ctx context.Context,
	caller domain.Caller,
	communityID string,
	memberID string,
) (RemovedMember, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorization first; an unauthorized caller learns nothing about
	// who is or is not a member.
	if !CanManageMembership(caller, communityID) {
		log.Warn("member removal refused",
			slog.String("community_id", communityID),
			slog.String("caller_id", caller.UserID),
			slog.String("caller_role", string(caller.Role)),
		)
		return RemovedMember{}, ErrNotPermitted
	}

	now := time.Now().UTC()

	var removed RemovedMember
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. Member must exist in this community.
		member, err := tx.Members().GetMember(ctx, communityID, memberID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		// 3. Designated admins cannot be removed through this API.
		if IsProtectedMember(member) {
			return ErrProtectedMember
		}

		// 4. Delete the association. Zero rows here means a concurrent
		// removal beat us; report not-found rather than double-success.
		if err := tx.Members().RemoveMember(ctx, communityID, memberID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		removed = RemovedMember{
			ID:        member.ID,
			Name:      member.Name(),
			Email:     member.Email,
			RemovedAt: now,
		}
		return nil
	})
	if err != nil {
		return RemovedMember{}, err
	}

	membersRemovedMetric.Inc()
	log.Info("member removed",
		slog.String("community_id", communityID),
		slog.String("member_id", removed.ID),
		slog.String("removed_by", caller.UserID),
	)

	return removed, nil
}
