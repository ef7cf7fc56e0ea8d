package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
	"github.com/aussiebroadwan/huddle/internal/community/store"
)

// Fixture identifiers for dev and end-to-end environments. Account and
// community provisioning is owned by other platform services in production;
// seeding stands in for them when HUDDLE_SEED_FIXTURES is set.
const (
	FixtureCommunityID = "fixture-community"
	FixtureAdminID     = "fixture-admin"
	FixtureMemberID    = "fixture-member"
	FixtureInviteeID   = "fixture-invitee"

	FixtureAdminEmail   = "admin@fixtures.huddle.dev"
	FixtureMemberEmail  = "member@fixtures.huddle.dev"
	FixtureInviteeEmail = "invitee@fixtures.huddle.dev"
)

// seedFixtures provisions the fixture community, its admin, one plain member
// and one user with no membership. Re-running against an already seeded
// database is a no-op.
func (app *Application) seedFixtures(ctx context.Context) error {
	now := time.Now().UTC()

	community := domain.Community{
		ID:        FixtureCommunityID,
		Name:      "Fixture Community",
		CreatedAt: now,
	}
	if err := app.db.Communities().CreateCommunity(ctx, community); err != nil {
		if !errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("seed community: %w", err)
		}
		app.logger.Info("fixtures already seeded, skipping")
		return nil
	}

	users := []domain.User{
		{
			ID:        FixtureAdminID,
			FirstName: "Avery",
			LastName:  "Admin",
			Email:     FixtureAdminEmail,
			UserType:  domain.UserTypeCommunityAdmin,
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        FixtureMemberID,
			FirstName: "Morgan",
			LastName:  "Member",
			Email:     FixtureMemberEmail,
			UserType:  domain.UserTypeMember,
			IsActive:  true,
			CreatedAt: now,
		},
		{
			ID:        FixtureInviteeID,
			FirstName: "Indira",
			LastName:  "Invitee",
			Email:     FixtureInviteeEmail,
			UserType:  domain.UserTypeMember,
			IsActive:  true,
			CreatedAt: now,
		},
	}
	for _, u := range users {
		if err := app.db.Users().CreateUser(ctx, u); err != nil &&
			!errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	// The invitee deliberately has no membership; invite acceptance tests
	// grant it.
	memberships := []string{FixtureAdminID, FixtureMemberID}
	for _, userID := range memberships {
		if err := app.db.Members().AddMember(ctx, FixtureCommunityID, userID, now); err != nil &&
			!errors.Is(err, store.ErrAlreadyExists) {
			return fmt.Errorf("seed membership %s: %w", userID, err)
		}
	}

	app.logger.Info("fixture data seeded",
		"community_id", FixtureCommunityID,
		"users", len(users),
	)
	return nil
}
