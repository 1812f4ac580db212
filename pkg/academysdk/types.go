package academysdk

import "time"

// ============================================================================
// Principals
// ============================================================================

// AdminUser is the signed-in back-office user.
type AdminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// StudentUser is a learner signed in through the external identity provider.
type StudentUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Picture  string `json:"picture,omitempty"`
	GoogleID string `json:"google_id"`
}

// AdminLoginRequest is the body of POST /api/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code,omitempty"`
}

// IdentityExchangeRequest is the body of POST /api/auth/google.
type IdentityExchangeRequest struct {
	IDToken string `json:"id_token"`
}

// AuthResponse is returned by login, exchange and verify endpoints. Token is
// empty on verify.
type AuthResponse[U any] struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *U     `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Catalog
// ============================================================================

// Level is a course difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// CourseStatus is the publication state of a course.
type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// Course is a read-only snapshot of a catalog entry.
type Course struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Price         float64      `json:"price"`
	Currency      string       `json:"currency"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	Category      string       `json:"category"`
	Level         Level        `json:"level"`
	DurationHours float64      `json:"duration_hours"`
	Status        CourseStatus `json:"status"`
}

// Module is one sequential video unit within a course. Completed is merged in
// client-side from the progress endpoint.
type Module struct {
	ID              string `json:"id"`
	CourseID        string `json:"course_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	OrderIndex      int    `json:"order_index"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed,omitempty"`
}

// CourseFilter narrows ListCourses. Filters apply client-side.
type CourseFilter struct {
	Category string
	Level    Level
}

// CourseInput is the admin payload for creating or updating a course.
type CourseInput struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Price         float64      `json:"price"`
	Currency      string       `json:"currency"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	Category      string       `json:"category"`
	Level         Level        `json:"level"`
	DurationHours float64      `json:"duration_hours"`
	Status        CourseStatus `json:"status"`
}

// ModuleInput is the admin payload for appending a module to a course.
type ModuleInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Job is a job board listing.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	PostedAt    time.Time `json:"posted_at"`
	Deadline    time.Time `json:"deadline,omitzero"`
}

// Event is an entry of the events calendar.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at,omitzero"`
}

// Resource is an item of the resource library.
type Resource struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// DataEnvelope wraps list and item reads: {data: ...}.
type DataEnvelope[T any] struct {
	Data T `json:"data"`
}

// ============================================================================
// Learning
// ============================================================================

// EnrollmentResponse is returned by the enrollment check.
type EnrollmentResponse struct {
	Enrolled bool `json:"enrolled"`
}

// ProgressResponse lists the modules a student completed in one course.
type ProgressResponse struct {
	CompletedModules []string `json:"completed_modules"`
}

// MarkCompleteRequest is the body of POST /api/progress/complete.
type MarkCompleteRequest struct {
	ModuleID string `json:"module_id"`
}

// SuccessResponse is the generic {success, error|message} acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Payments
// ============================================================================

// PaymentStatus is the lifecycle of a checkout on the backend.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Terminal reports whether no further transition will happen.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentCancelled
}

// PaymentRequest is the body of POST /api/payments/initiate.
type PaymentRequest struct {
	CourseID    string  `json:"course_id"`
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
}

// PaymentResponse is returned by payment initiation. CheckoutRequestID and
// Status are set when the backend confirms asynchronously.
type PaymentResponse struct {
	Success           bool          `json:"success"`
	TestMode          bool          `json:"test_mode,omitempty"`
	CheckoutRequestID string        `json:"checkout_request_id,omitempty"`
	Status            PaymentStatus `json:"status,omitempty"`
	Message           string        `json:"message,omitempty"`
	Error             string        `json:"error,omitempty"`
}

// PaymentStatusResponse is returned by GET /api/payments/{id}.
type PaymentStatusResponse struct {
	CheckoutRequestID string        `json:"checkout_request_id"`
	Status            PaymentStatus `json:"status"`
	Message           string        `json:"message,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime,omitempty"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
