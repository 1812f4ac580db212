package service_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/internal/academy/store/drivers/sqlite"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "academy-test"

type fixture struct {
	store    *sqlite.Store
	keys     *jwtx.KeyRing
	tokens   *service.TokenService
	metrics  *service.Metrics
	catalog  *service.CatalogService
	students *service.StudentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	keys, err := jwtx.NewEphemeralKeyRing(testIssuer)
	require.NoError(t, err)

	tokens := &service.TokenService{Signer: keys.Signer, Issuer: testIssuer, TTL: time.Hour}
	metrics := service.NewMetrics()

	return &fixture{
		store:    s,
		keys:     keys,
		tokens:   tokens,
		metrics:  metrics,
		catalog:  &service.CatalogService{Store: s},
		students: &service.StudentService{Store: s, Identity: service.DevIdentityVerifier{}, Tokens: tokens, Metrics: metrics},
	}
}

func (f *fixture) course(t *testing.T, price float64, status domain.CourseStatus, modules ...string) domain.Course {
	t.Helper()
	ctx := context.Background()

	c, err := f.catalog.CreateCourse(ctx, service.CourseInput{
		Title:  "Payroll Essentials",
		Price:  price,
		Level:  domain.LevelIntermediate,
		Status: status,
	})
	require.NoError(t, err)

	for _, title := range modules {
		_, err := f.catalog.CreateModule(ctx, c.ID, service.ModuleInput{
			Title:    title,
			VideoURL: "https://video.example/" + title,
		})
		require.NoError(t, err)
	}
	return c
}

func (f *fixture) student(t *testing.T, email string) domain.Student {
	t.Helper()
	_, st, err := f.students.Exchange(context.Background(), "dev:"+email)
	require.NoError(t, err)
	return st
}

func (f *fixture) enroll(t *testing.T, studentID, courseID string) {
	t.Helper()
	require.NoError(t, f.store.Enrollments().CreateEnrollment(context.Background(), domain.Enrollment{
		ID: "enr-" + studentID + courseID, StudentID: studentID, CourseID: courseID,
	}))
}

func discardLogger() *slog.Logger { return slogx.Discard() }
