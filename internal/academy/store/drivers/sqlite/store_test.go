package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/internal/academy/store/drivers/sqlite"
	"github.com/prestige-strategies/academy/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore("file::memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCourse(t *testing.T, s store.Store, status domain.CourseStatus) domain.Course {
	t.Helper()
	c := domain.Course{
		ID:       idx.New().String(),
		Title:    "Employment Law Basics",
		Price:    1500,
		Currency: "KES",
		Level:    domain.LevelBeginner,
		Status:   status,
	}
	require.NoError(t, s.Courses().CreateCourse(context.Background(), c))
	return c
}

func seedStudent(t *testing.T, s store.Store) domain.Student {
	t.Helper()
	st := domain.Student{
		ID:       idx.New().String(),
		GoogleID: "google-" + idx.New().String(),
		Email:    "learner@example.com",
		Name:     "Learner",
	}
	require.NoError(t, s.Students().CreateStudent(context.Background(), st))
	return st
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestAdminsUpsert(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.Admins().GetAdminByEmail(ctx, "ops@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Admins().UpsertAdmin(ctx, domain.Admin{
		ID: "a1", Email: "ops@example.com", PasswordHash: "h1",
	}))

	secret := "JBSWY3DPEHPK3PXP"
	require.NoError(t, s.Admins().UpsertAdmin(ctx, domain.Admin{
		ID: "a2", Email: "OPS@example.com", PasswordHash: "h2", TOTPSecret: &secret,
	}))

	got, err := s.Admins().GetAdminByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	require.Equal(t, "a1", got.ID, "upsert keeps the original id")
	require.Equal(t, "h2", got.PasswordHash)
	require.NotNil(t, got.TOTPSecret)
	require.Equal(t, secret, *got.TOTPSecret)
}

func TestStudents(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	st := seedStudent(t, s)

	err := s.Students().CreateStudent(ctx, domain.Student{ID: "other", GoogleID: st.GoogleID, Email: "x@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	st.Name = "Renamed"
	require.NoError(t, s.Students().UpdateProfile(ctx, st))

	got, err := s.Students().GetStudentByGoogleID(ctx, st.GoogleID)
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Name)

	require.ErrorIs(t, s.Students().UpdateProfile(ctx, domain.Student{ID: "missing"}), store.ErrNotFound)
}

func TestCoursesAndModules(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	published := seedCourse(t, s, domain.CoursePublished)
	seedCourse(t, s, domain.CourseDraft)

	list, err := s.Courses().ListCourses(ctx, domain.CoursePublished)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, published.ID, list[0].ID)

	all, err := s.Courses().ListCourses(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	for i, title := range []string{"Intro", "Contracts", "Disputes"} {
		require.NoError(t, s.Modules().CreateModule(ctx, domain.Module{
			ID: idx.New().String(), CourseID: published.ID, Title: title,
			VideoURL: "https://video.example/" + title, OrderIndex: 2 - i,
		}))
	}

	mods, err := s.Modules().ListModules(ctx, published.ID)
	require.NoError(t, err)
	require.Len(t, mods, 3)
	require.Equal(t, []string{"Disputes", "Contracts", "Intro"}, []string{mods[0].Title, mods[1].Title, mods[2].Title})

	n, err := s.Modules().CountModules(ctx, published.ID)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	dup := domain.Module{ID: idx.New().String(), CourseID: published.ID, Title: "Dup", VideoURL: "v", OrderIndex: 0}
	require.ErrorIs(t, s.Modules().CreateModule(ctx, dup), store.ErrAlreadyExists)
}

func TestEnrollmentAndProgress(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCourse(t, s, domain.CoursePublished)
	st := seedStudent(t, s)

	ok, err := s.Enrollments().IsEnrolled(ctx, st.ID, c.ID)
	require.NoError(t, err)
	require.False(t, ok)

	e := domain.Enrollment{ID: idx.New().String(), StudentID: st.ID, CourseID: c.ID}
	require.NoError(t, s.Enrollments().CreateEnrollment(ctx, e))
	e.ID = idx.New().String()
	require.ErrorIs(t, s.Enrollments().CreateEnrollment(ctx, e), store.ErrAlreadyExists)

	ok, err = s.Enrollments().IsEnrolled(ctx, st.ID, c.ID)
	require.NoError(t, err)
	require.True(t, ok)

	m := domain.Module{ID: idx.New().String(), CourseID: c.ID, Title: "Intro", VideoURL: "v"}
	require.NoError(t, s.Modules().CreateModule(ctx, m))

	done, err := s.Progress().ListCompleted(ctx, st.ID, c.ID)
	require.NoError(t, err)
	require.Empty(t, done)
	require.NotNil(t, done)

	mark := domain.ModuleCompletion{StudentID: st.ID, ModuleID: m.ID, CourseID: c.ID}
	require.NoError(t, s.Progress().MarkComplete(ctx, mark))
	require.NoError(t, s.Progress().MarkComplete(ctx, mark))

	done, err = s.Progress().ListCompleted(ctx, st.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, []string{m.ID}, done)
}

func TestPayments(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCourse(t, s, domain.CoursePublished)
	st := seedStudent(t, s)

	old := time.Now().UTC().Add(-2 * time.Hour)
	p := domain.Payment{
		ID: idx.New().String(), StudentID: st.ID, CourseID: c.ID,
		PhoneNumber: "254712345678", Amount: c.Price, Currency: c.Currency,
		IdempotencyKey: "key-1", CheckoutRequestID: "ws_CO_1",
		Status: domain.PaymentPending, TestMode: true, CreatedAt: old,
	}
	require.NoError(t, s.Payments().CreatePayment(ctx, p))

	dup := p
	dup.ID, dup.CheckoutRequestID = idx.New().String(), "ws_CO_2"
	require.ErrorIs(t, s.Payments().CreatePayment(ctx, dup), store.ErrAlreadyExists)

	got, err := s.Payments().GetPaymentByIdempotencyKey(ctx, st.ID, "key-1")
	require.NoError(t, err)
	require.Equal(t, "ws_CO_1", got.CheckoutRequestID)
	require.True(t, got.TestMode)

	_, err = s.Payments().GetPaymentByIdempotencyKey(ctx, st.ID, "")
	require.ErrorIs(t, err, store.ErrNotFound)

	n, err := s.Payments().ExpirePendingPayments(ctx, time.Now().UTC().Add(-time.Hour), "expired")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err = s.Payments().GetPaymentByCheckoutID(ctx, "ws_CO_1")
	require.NoError(t, err)
	require.Equal(t, domain.PaymentCancelled, got.Status)
	require.Equal(t, "expired", got.Message)

	err = s.Payments().UpdatePaymentStatus(ctx, p.ID, domain.PaymentCompleted, "")
	require.ErrorIs(t, err, store.ErrNotFound, "only pending payments move")
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c := seedCourse(t, s, domain.CourseDraft)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Modules().CreateModule(ctx, domain.Module{
			ID: idx.New().String(), CourseID: c.ID, Title: "Lost", VideoURL: "v",
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := s.Modules().CountModules(ctx, c.ID)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now().UTC()

	past := now.Add(-48 * time.Hour)
	require.NoError(t, s.Catalog().CreateEvent(ctx, domain.Event{ID: "e-past", Title: "Past", StartsAt: past}))
	require.NoError(t, s.Catalog().CreateEvent(ctx, domain.Event{ID: "e-next", Title: "Next", StartsAt: now.Add(time.Hour)}))
	require.NoError(t, s.Catalog().CreateJob(ctx, domain.Job{ID: "j1", Title: "HR Officer", Company: "Acme"}))
	require.NoError(t, s.Catalog().CreateResource(ctx, domain.Resource{ID: "r1", Title: "Template", URL: "https://r.example"}))

	events, err := s.Catalog().ListUpcomingEvents(ctx, now)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "e-next", events[0].ID)

	jobs, err := s.Catalog().ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Nil(t, jobs[0].Deadline)

	res, err := s.Catalog().ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, res, 1)
}
