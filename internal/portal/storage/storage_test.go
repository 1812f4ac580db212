package storage_test

import (
	"testing"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/stretchr/testify/require"
)

func TestPrincipalKeys(t *testing.T) {
	require.Equal(t, "admin_token", storage.PrincipalAdmin.Key())
	require.Equal(t, "student_token", storage.PrincipalStudent.Key())
	require.True(t, storage.PrincipalAdmin.Valid())
	require.False(t, storage.Principal("guest").Valid())
}

func TestAttemptKeys(t *testing.T) {
	require.Equal(t, "course:c1", storage.CourseAttemptKey("c1"))
	require.Equal(t, "job:j1", storage.JobAttemptKey("j1"))
}
