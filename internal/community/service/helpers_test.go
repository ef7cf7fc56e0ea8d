package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
	"github.com/aussiebroadwan/huddle/internal/community/store/drivers/sqlite"
	"github.com/aussiebroadwan/huddle/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore spins up the real sqlite driver against an in-memory database
// with migrations applied, so service tests exercise the same SQL as
// production.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func seedCommunity(t *testing.T, st store.Store, name string) domain.Community {
	t.Helper()

	c := domain.Community{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Communities().CreateCommunity(context.Background(), c))
	return c
}

func seedUser(t *testing.T, st store.Store, first, last, email string, userType domain.UserType) domain.User {
	t.Helper()

	u := domain.User{
		ID:        idx.New().String(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		UserType:  userType,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func joinCommunity(t *testing.T, st store.Store, communityID, userID string, at time.Time) {
	t.Helper()
	require.NoError(t, st.Members().AddMember(context.Background(), communityID, userID, at))
}

func platformAdmin() domain.Caller {
	return domain.Caller{UserID: idx.New().String(), Role: domain.UserTypePlatformAdmin}
}

func communityAdmin(communityIDs ...string) domain.Caller {
	return domain.Caller{
		UserID:      idx.New().String(),
		Role:        domain.UserTypeCommunityAdmin,
		Communities: communityIDs,
	}
}

func plainMember() domain.Caller {
	return domain.Caller{UserID: idx.New().String(), Role: domain.UserTypeMember}
}
