package academy_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for academy backend end-to-end tests.
 * This includes container setup, sign-in helpers and assertions.
 */

const (
	testImageName = "prestige-academy-test:latest"

	adminEmail    = "ops@prestige.test"
	adminPassword = "Admin123!"

	// validPhone is accepted by the simulated gateway.
	validPhone = "0712345678"
	// declinedPhone is always declined by the simulated gateway.
	declinedPhone = "254700000000"
)

// TestMain builds the Docker image once before all tests and cleans it up
// after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building academy backend Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up academy backend Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/academy/Dockerfile",
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

func baseEnv() map[string]string {
	return map[string]string{
		"ACADEMY_ISSUER":         "academy-e2e",
		"ACADEMY_IDENTITY_MODE":  "dev",
		"ACADEMY_ADMIN_EMAIL":    adminEmail,
		"ACADEMY_ADMIN_PASSWORD": adminPassword,
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
	}
}

// setupAcademyContainer starts the backend with relaxed rate limits and
// returns its base URL. extra overrides individual variables.
func setupAcademyContainer(t *testing.T, extra map[string]string) (string, func()) {
	t.Helper()

	env := baseEnv()
	// Tests make many rapid requests which would otherwise hit the production limits
	for _, profile := range []string{"LOGIN", "PAYMENT", "STUDENT"} {
		env["RATELIMIT_"+profile+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+profile+"_WINDOW_SEC"] = "60"
		env["RATELIMIT_"+profile+"_BURST"] = "1000"
	}
	for k, v := range extra {
		env[k] = v
	}
	return startContainer(t, env)
}

// setupAcademyContainerWithDefaultRateLimits is for tests that check rate
// limiting itself.
func setupAcademyContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

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

// adminSession signs in as the seeded admin.
func adminSession(t *testing.T, client *academysdk.SDKClient) *academysdk.Session {
	t.Helper()

	token, user, err := client.AdminLogin(t.Context(), academysdk.AdminLoginRequest{
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err, "Admin login should succeed")
	require.Equal(t, adminEmail, user.Email)

	return client.NewSession(token)
}

// studentSession signs a student in through the dev identity provider.
func studentSession(t *testing.T, client *academysdk.SDKClient, email string) *academysdk.Session {
	t.Helper()

	token, user, err := client.ExchangeIdentity(t.Context(), "dev:"+email)
	require.NoError(t, err, "Student sign-in should succeed")
	require.Equal(t, email, user.Email)

	return client.NewSession(token)
}

// publishCourse creates a published course with the given modules.
func publishCourse(t *testing.T, admin *academysdk.Session, price float64, modules ...string) *academysdk.Course {
	t.Helper()
	ctx := t.Context()

	course, err := admin.CreateCourse(ctx, academysdk.CourseInput{
		Title:    "Performance Reviews",
		Price:    price,
		Category: "management",
		Level:    academysdk.LevelIntermediate,
		Status:   academysdk.CoursePublished,
	})
	require.NoError(t, err)

	for _, title := range modules {
		_, err := admin.CreateModule(ctx, course.ID, academysdk.ModuleInput{
			Title:           title,
			VideoURL:        "https://videos.example.com/" + title + ".mp4",
			DurationMinutes: 10,
		})
		require.NoError(t, err)
	}
	return course
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *academysdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

// assertStatus verifies err is a ServerError with the given status code.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var srvErr *academysdk.ServerError
	require.ErrorAs(t, err, &srvErr, "expected a server error, got: %v", err)
	require.Equal(t, status, srvErr.StatusCode, srvErr.Message)
}

// assertUnauthorized verifies err is an authentication rejection.
func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var authErr *academysdk.AuthenticationError
	require.ErrorAs(t, err, &authErr, "expected an authentication error, got: %v", err)
}
