package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/pkg/idx"
	"github.com/stretchr/testify/require"
)

// seedRoster creates a community with one admin and four plain members joined
// a day apart, oldest first.
func seedRoster(t *testing.T, st store.Store) (domain.Community, []domain.User) {
	t.Helper()

	com := seedCommunity(t, st, "Brewers Collective")
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	users := []domain.User{
		seedUser(t, st, "Ada", "Stone", "ada@example.com", domain.UserTypeCommunityAdmin),
		seedUser(t, st, "Banjo", "Reid", "banjo@example.com", domain.UserTypeMember),
		seedUser(t, st, "Clancy", "Banks", "clancy@example.com", domain.UserTypeMember),
		seedUser(t, st, "Dara", "Wren", "dara@example.com", domain.UserTypeMember),
		seedUser(t, st, "Edie", "Stonor", "edie@example.com", domain.UserTypeMember),
	}
	for i, u := range users {
		joinCommunity(t, st, com.ID, u.ID, base.AddDate(0, 0, i))
	}
	return com, users
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("pages are disjoint and the count is stable", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		seen := map[string]int{}
		for page := 1; page <= 3; page++ {
			result, err := svc.ListMembers(ctx, com.ID, store.MemberFilter{}, page, 2)
			require.NoError(t, err)
			require.Equal(t, 5, result.Pagination.TotalCount)
			require.Equal(t, 3, result.Pagination.TotalPages)
			require.Equal(t, page, result.Pagination.CurrentPage)
			require.Equal(t, page > 1, result.Pagination.HasPrevPage)
			require.Equal(t, page < 3, result.Pagination.HasNextPage)

			for _, m := range result.Members {
				seen[m.ID]++
			}
		}

		require.Len(t, seen, 5)
		for id, count := range seen {
			require.Equal(t, 1, count, "member %s appeared on more than one page", id)
		}
	})

	t.Run("page beyond the end is empty but well-formed", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		result, err := svc.ListMembers(ctx, com.ID, store.MemberFilter{}, 4, 2)
		require.NoError(t, err)
		require.Empty(t, result.Members)
		require.Equal(t, 5, result.Pagination.TotalCount)
		require.False(t, result.Pagination.HasNextPage)
		require.True(t, result.Pagination.HasPrevPage)
	})

	t.Run("name filter matches first or last name case-insensitively", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		// "ban" hits Banjo (first) and Banks (last).
		result, err := svc.ListMembers(ctx, com.ID, store.MemberFilter{Name: "BAN"}, 1, 10)
		require.NoError(t, err)
		require.Equal(t, 2, result.Pagination.TotalCount)
	})

	t.Run("filters combine conjunctively", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		// Stone and Stonor both match the name; only Edie matches the email.
		result, err := svc.ListMembers(ctx, com.ID,
			store.MemberFilter{Name: "ston", Email: "edie"}, 1, 10)
		require.NoError(t, err)
		require.Equal(t, 1, result.Pagination.TotalCount)
		require.Equal(t, "edie@example.com", result.Members[0].Email)
	})

	t.Run("join date bounds are inclusive", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		from := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
		result, err := svc.ListMembers(ctx, com.ID,
			store.MemberFilter{JoinedFrom: &from, JoinedTo: &to}, 1, 10)
		require.NoError(t, err)
		require.Equal(t, 3, result.Pagination.TotalCount)
		for _, m := range result.Members {
			require.False(t, m.CreatedAt.Before(from))
			require.False(t, m.CreatedAt.After(to))
		}
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		for _, tc := range []struct{ page, limit int }{
			{0, 10}, {-1, 10}, {1, 0}, {1, 101},
		} {
			_, err := svc.ListMembers(ctx, com.ID, store.MemberFilter{}, tc.page, tc.limit)
			require.ErrorIs(t, err, ErrInvalidListRequest,
				fmt.Sprintf("page=%d limit=%d", tc.page, tc.limit))
		}

		// Bounds themselves are fine.
		_, err := svc.ListMembers(ctx, com.ID, store.MemberFilter{}, 1, 1)
		require.NoError(t, err)
		_, err = svc.ListMembers(ctx, com.ID, store.MemberFilter{}, 1, 100)
		require.NoError(t, err)
	})

	t.Run("rejects an inverted join date range", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)

		from := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.ListMembers(ctx, com.ID,
			store.MemberFilter{JoinedFrom: &from, JoinedTo: &to}, 1, 10)
		require.ErrorIs(t, err, ErrInvalidListRequest)
	})

	t.Run("unknown community is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}

		_, err := svc.ListMembers(ctx, idx.New().String(), store.MemberFilter{}, 1, 10)
		require.ErrorIs(t, err, ErrCommunityNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("removes a plain member and returns a snapshot", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, users := seedRoster(t, st)
		target := users[1] // Banjo Reid

		removed, err := svc.RemoveMember(ctx, communityAdmin(com.ID), com.ID, target.ID)
		require.NoError(t, err)
		require.Equal(t, target.ID, removed.ID)
		require.Equal(t, "Banjo Reid", removed.Name)
		require.Equal(t, target.Email, removed.Email)
		require.WithinDuration(t, time.Now(), removed.RemovedAt, time.Minute)

		_, err = st.Members().GetMember(ctx, com.ID, target.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("second removal observes not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, users := seedRoster(t, st)
		admin := platformAdmin()

		_, err := svc.RemoveMember(ctx, admin, com.ID, users[2].ID)
		require.NoError(t, err)

		_, err = svc.RemoveMember(ctx, admin, com.ID, users[2].ID)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("community administrators are protected", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, users := seedRoster(t, st)

		_, err := svc.RemoveMember(ctx, platformAdmin(), com.ID, users[0].ID)
		require.ErrorIs(t, err, ErrProtectedMember)

		// Still a member afterwards.
		_, err = st.Members().GetMember(ctx, com.ID, users[0].ID)
		require.NoError(t, err)
	})

	t.Run("requires management rights", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, users := seedRoster(t, st)

		_, err := svc.RemoveMember(ctx, plainMember(), com.ID, users[1].ID)
		require.ErrorIs(t, err, ErrNotPermitted)

		_, err = svc.RemoveMember(ctx, communityAdmin("another-community"), com.ID, users[1].ID)
		require.ErrorIs(t, err, ErrNotPermitted)
	})

	t.Run("user who never joined is not found", func(t *testing.T) {
		st := newTestStore(t)
		svc := &MembershipService{Store: st}
		com, _ := seedRoster(t, st)
		outsider := seedUser(t, st, "Flick", "Moss", "flick@example.com", domain.UserTypeMember)

		_, err := svc.RemoveMember(ctx, platformAdmin(), com.ID, outsider.ID)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})
}
