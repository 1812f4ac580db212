package academy_test

import (
	"testing"

	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
)

// TestAdminLogin verifies the seeded admin can sign in and verify.
func TestAdminLogin(t *testing.T) {
	baseURL, cleanup := setupAcademyContainer(t, nil)
	defer cleanup()

	client := academysdk.NewSDKClient(baseURL)
	admin := adminSession(t, client)

	user, err := admin.VerifyAdmin(t.Context())
	require.NoError(t, err)
	require.Equal(t, adminEmail, user.Email)

	_, _, err = client.AdminLogin(t.Context(), academysdk.AdminLoginRequest{
		Email:    adminEmail,
		Password: "wrong-password",
	})
	assertUnauthorized(t, err)
}

// TestStudentSignIn verifies the identity exchange creates a student once.
func TestStudentSignIn(t *testing.T) {
	baseURL, cleanup := setupAcademyContainer(t, nil)
	defer cleanup()

	client := academysdk.NewSDKClient(baseURL)
	ctx := t.Context()

	first := studentSession(t, client, "learner@example.com")
	second := studentSession(t, client, "learner@example.com")

	a, err := first.VerifyStudent(ctx)
	require.NoError(t, err)
	b, err := second.VerifyStudent(ctx)
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID, "Signing in twice should reuse the student")

	_, _, err = client.ExchangeIdentity(ctx, "not-a-credential")
	assertUnauthorized(t, err)
}

// TestTokensAreScopedToPrincipal verifies admin and student tokens are not
// accepted on each other's routes.
func TestTokensAreScopedToPrincipal(t *testing.T) {
	baseURL, cleanup := setupAcademyContainer(t, nil)
	defer cleanup()

	client := academysdk.NewSDKClient(baseURL)
	ctx := t.Context()

	admin := adminSession(t, client)
	student := studentSession(t, client, "learner@example.com")

	_, err := admin.VerifyStudent(ctx)
	assertUnauthorized(t, err)

	_, err = student.VerifyAdmin(ctx)
	assertUnauthorized(t, err)

	_, err = student.CreateCourse(ctx, academysdk.CourseInput{Title: "Nope", Level: academysdk.LevelBeginner})
	assertUnauthorized(t, err)
}
