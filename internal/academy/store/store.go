package store

import (
	"context"
	"errors"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx-scoped store can hand out the same repos
// without nesting transactions.
type Store interface {
	Admins() Admins
	Students() Students
	Courses() Courses
	Modules() Modules
	Enrollments() Enrollments
	Payments() Payments
	Progress() Progress
	Catalog() Catalog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil
	// and rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Admins interface {
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)
	GetAdminByID(ctx context.Context, id string) (domain.Admin, error)

	// UpsertAdmin creates the admin or replaces its password hash and TOTP
	// secret when the email already exists.
	UpsertAdmin(ctx context.Context, a domain.Admin) error
}

type Students interface {
	GetStudentByID(ctx context.Context, id string) (domain.Student, error)
	GetStudentByGoogleID(ctx context.Context, googleID string) (domain.Student, error)
	CreateStudent(ctx context.Context, s domain.Student) error

	// UpdateProfile refreshes email, name and picture from the latest
	// identity token.
	UpdateProfile(ctx context.Context, s domain.Student) error
}

type Courses interface {
	GetCourse(ctx context.Context, id string) (domain.Course, error)

	// ListCourses returns courses with the given status, newest first. An
	// empty status lists every course.
	ListCourses(ctx context.Context, status domain.CourseStatus) ([]domain.Course, error)

	CreateCourse(ctx context.Context, c domain.Course) error
	UpdateCourse(ctx context.Context, c domain.Course) error
}

type Modules interface {
	GetModule(ctx context.Context, id string) (domain.Module, error)

	// ListModules returns the modules of a course ordered by order_index.
	ListModules(ctx context.Context, courseID string) ([]domain.Module, error)

	// CountModules is the next free order index of a course.
	CountModules(ctx context.Context, courseID string) (int, error)

	CreateModule(ctx context.Context, m domain.Module) error
}

type Enrollments interface {
	// CreateEnrollment returns ErrAlreadyExists when the student already
	// owns the course.
	CreateEnrollment(ctx context.Context, e domain.Enrollment) error
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}

type Payments interface {
	CreatePayment(ctx context.Context, p domain.Payment) error
	GetPaymentByCheckoutID(ctx context.Context, checkoutRequestID string) (domain.Payment, error)

	// GetPaymentByIdempotencyKey scopes the key to one student.
	GetPaymentByIdempotencyKey(ctx context.Context, studentID, key string) (domain.Payment, error)

	// UpdatePaymentStatus moves a pending payment to status. It returns
	// ErrNotFound when the payment is missing or no longer pending.
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, message string) error

	// ExpirePendingPayments cancels pending payments created before cutoff
	// and reports how many it touched.
	ExpirePendingPayments(ctx context.Context, cutoff time.Time, message string) (int64, error)
}

type Progress interface {
	// MarkComplete is idempotent: a repeated mark keeps the first timestamp.
	MarkComplete(ctx context.Context, c domain.ModuleCompletion) error
	ListCompleted(ctx context.Context, studentID, courseID string) ([]string, error)
}

// Catalog covers the read-mostly job board, events calendar and resource
// library.
type Catalog interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
	ListUpcomingEvents(ctx context.Context, now time.Time) ([]domain.Event, error)
	ListResources(ctx context.Context) ([]domain.Resource, error)

	CreateJob(ctx context.Context, j domain.Job) error
	CreateEvent(ctx context.Context, e domain.Event) error
	CreateResource(ctx context.Context, r domain.Resource) error
}
