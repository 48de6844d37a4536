//go:build e2e

package chat_test

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/bartabchat/pkg/chatsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for chat service end-to-end tests.
 * This includes container setup, account helpers and assertions.
 */

const (
	testImageName = "bartab-chat-test:latest"

	bootstrapToken = "test-bootstrap-token-12345"
	adminEmail     = "admin@example.com"
	adminName      = "Administrator"
	userPassword   = "Passw0rd!"
)

// TestMain builds the Docker image once before all tests and removes it
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Chat Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Chat Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/chat/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// relaxedLimits lifts the rate limits so tests can make rapid requests.
var relaxedLimits = map[string]string{
	"RATELIMIT_STRICT_REQUESTS":   "1000",
	"RATELIMIT_STRICT_BURST":      "1000",
	"RATELIMIT_MODERATE_REQUESTS": "1000",
	"RATELIMIT_MODERATE_BURST":    "1000",
	"RATELIMIT_LENIENT_REQUESTS":  "1000",
	"RATELIMIT_LENIENT_BURST":     "1000",
}

// setupChatContainer starts the chat service with relaxed rate limits and
// returns an SDK client pointed at it.
func setupChatContainer(t *testing.T) *chatsdk.SDKClient {
	t.Helper()
	return startContainer(t, relaxedLimits)
}

// setupChatContainerWithDefaultRateLimits keeps the production limits, for
// tests that exercise rate limiting itself.
func setupChatContainerWithDefaultRateLimits(t *testing.T) *chatsdk.SDKClient {
	t.Helper()
	return startContainer(t, nil)
}

func startContainer(t *testing.T, extraEnv map[string]string) *chatsdk.SDKClient {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"APP_SECRET":              "e2e-secret",
		"BOOTSTRAP_TOKEN":         bootstrapToken,
		"CHAT_INVITE_VALID_HOURS": "24",
		"ENV":                     "test",
		"LOG_LEVEL":               "info",
		"LOG_FORMAT":              "json",
	}
	maps.Copy(env, extraEnv)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return chatsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// bootstrapAdmin creates the superuser and returns its session.
func bootstrapAdmin(t *testing.T, client *chatsdk.SDKClient) *chatsdk.Session {
	t.Helper()

	session, err := client.Bootstrap(t.Context(), chatsdk.BootstrapRequest{
		Token:    bootstrapToken,
		Email:    adminEmail,
		Name:     adminName,
		Password: userPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.True(t, session.User().IsSuperuser)

	return session
}

// registerUser creates an account named name with an email derived from it.
func registerUser(t *testing.T, client *chatsdk.SDKClient, name string) *chatsdk.Session {
	t.Helper()

	session, err := client.Register(t.Context(), chatsdk.RegistrationRequest{
		Email:    strings.ToLower(name) + "@example.com",
		Name:     name,
		Password: userPassword,
	})
	require.NoError(t, err, "Registration of %s should succeed", name)

	return session
}

// assertStatus checks that err is an API error with the given status code.
func assertStatus(t *testing.T, err error, status int, context string) {
	t.Helper()
	require.Error(t, err, context)

	var apiErr *chatsdk.APIError
	require.True(t, errors.As(err, &apiErr), "%s - expected an API error, got: %v", context, err)
	require.Equal(t, status, apiErr.StatusCode, "%s - got: %s", context, apiErr.Error())
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *chatsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
