package app_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/app"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ACADEMY_IDENTITY_MODE", "")
	t.Setenv("ACADEMY_GOOGLE_CLIENT_ID", "client-123.apps.googleusercontent.com")
	t.Setenv("ACADEMY_ISSUER", "")
	t.Setenv("HOUSEKEEPING_INTERVAL", "")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "prestige-academy", cfg.Issuer)
	require.Equal(t, app.IdentityGoogle, cfg.IdentityMode)
	require.Equal(t, time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 15*time.Minute, cfg.PaymentMaxPendingAge)
	require.Zero(t, cfg.PaymentConfirmDelay)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "google mode needs a client id",
			env:  map[string]string{"ACADEMY_IDENTITY_MODE": "google", "ACADEMY_GOOGLE_CLIENT_ID": ""},
		},
		{
			name: "dev mode refused in prod",
			env:  map[string]string{"ACADEMY_IDENTITY_MODE": "dev", "ENV": "prod"},
		},
		{
			name: "unknown identity mode",
			env:  map[string]string{"ACADEMY_IDENTITY_MODE": "saml"},
		},
		{
			name: "admin without password",
			env: map[string]string{
				"ACADEMY_IDENTITY_MODE":  "dev",
				"ENV":                    "dev",
				"ACADEMY_ADMIN_EMAIL":    "ops@example.com",
				"ACADEMY_ADMIN_PASSWORD": "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := app.LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"ACADEMY_IDENTITY_MODE=dev\n"+
			"ACADEMY_ISSUER=from-file\n"+
			"ACADEMY_PAYMENT_CONFIRM_DELAY=5s\n",
	), 0o600))

	// Variables already in the environment win over the file.
	t.Setenv("ACADEMY_ISSUER", "from-env")
	t.Setenv("ENV", "dev")
	for _, k := range []string{"ACADEMY_IDENTITY_MODE", "ACADEMY_PAYMENT_CONFIRM_DELAY"} {
		prev, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, prev)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}

	cfg, err := app.LoadConfig(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, app.IdentityDev, cfg.IdentityMode)
	require.Equal(t, "from-env", cfg.Issuer)
	require.Equal(t, 5*time.Second, cfg.PaymentConfirmDelay)
}

func TestApplicationWiring(t *testing.T) {
	dir := t.TempDir()
	cfg := app.Config{
		Issuer:               "academy-test",
		DatabaseFile:         filepath.Join(dir, "academy.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		SigningKeyFile:       filepath.Join(dir, "keys", "signing.pem"),
		TokenTTL:             time.Hour,
		AdminEmail:           "ops@example.com",
		AdminPassword:        "S3cret!pass",
		IdentityMode:         app.IdentityDev,
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Minute,
	}

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	require.FileExists(t, cfg.SigningKeyFile)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := academysdk.NewSDKClient(srv.URL)

	adminToken, _, err := client.AdminLogin(ctx, academysdk.AdminLoginRequest{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	require.NoError(t, err)

	course, err := client.NewSession(adminToken).CreateCourse(ctx, academysdk.CourseInput{
		Title:  "Onboarding Done Right",
		Price:  1200,
		Level:  academysdk.LevelBeginner,
		Status: academysdk.CoursePublished,
	})
	require.NoError(t, err)

	studentToken, _, err := client.ExchangeIdentity(ctx, "dev:learner@example.com")
	require.NoError(t, err)

	resp, err := client.NewSession(studentToken).InitiatePayment(ctx, academysdk.PaymentRequest{
		CourseID:    course.ID,
		PhoneNumber: "0712345678",
		Amount:      1200,
	})
	require.NoError(t, err)
	require.Equal(t, academysdk.PaymentCompleted, resp.Status)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}
