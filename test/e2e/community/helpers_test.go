package community_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/app"
	"github.com/aussiebroadwan/huddle/pkg/communitysdk"
	"github.com/aussiebroadwan/huddle/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for community service end-to-end
 * tests. This includes container setup, token minting, and assertions.
 */

const (
	testImageName = "huddle-community-test:latest"

	jwtSecret   = "test-jwt-secret-0123456789abcdef"
	tokenIssuer = "huddle-auth"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Community Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Community Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/community/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupCommunityContainer starts the community service in a container with
// fixture data seeded and returns the base URL.
func setupCommunityContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"HUDDLE_DATABASE_FILE": "/tmp/huddle.db",
			"HUDDLE_JWT_SECRET":    jwtSecret,
			"HUDDLE_TOKEN_ISSUER":  tokenIssuer,
			"HUDDLE_SEED_FIXTURES": "true",
			"ENV":                  "test",
			"LOG_LEVEL":            "info",
			"LOG_FORMAT":           "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// mintToken signs a token the way the platform identity service would. The
// service only checks the signature, issuer and expiry, so locally minted
// tokens are indistinguishable from production ones.
func mintToken(t *testing.T, subject, role string, communities ...string) string {
	t.Helper()

	token, err := jwtx.Sign([]byte(jwtSecret), tokenIssuer, subject, role, communities, time.Hour)
	require.NoError(t, err)
	return token
}

// adminSession returns a session authenticated as the fixture community's
// admin.
func adminSession(t *testing.T, client *communitysdk.SDKClient) *communitysdk.Session {
	t.Helper()
	return client.WithToken(mintToken(t, app.FixtureAdminID, "community_admin", app.FixtureCommunityID))
}

// memberSession returns a session authenticated as the fixture plain member.
func memberSession(t *testing.T, client *communitysdk.SDKClient) *communitysdk.Session {
	t.Helper()
	return client.WithToken(mintToken(t, app.FixtureMemberID, "member"))
}

// inviteeSession returns a session authenticated as the fixture user with no
// membership.
func inviteeSession(t *testing.T, client *communitysdk.SDKClient) *communitysdk.Session {
	t.Helper()
	return client.WithToken(mintToken(t, app.FixtureInviteeID, "member"))
}

// requireAPIError asserts err is an *APIError with the given status and code.
func requireAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*communitysdk.APIError)
	require.True(t, ok, "expected *communitysdk.APIError, got %T: %v", err, err)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
