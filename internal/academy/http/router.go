package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/httpx"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/prestige-strategies/academy/api/academy" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	Metrics           *service.Metrics
	AdminService      *service.AdminService
	StudentService    *service.StudentService
	CatalogService    *service.CatalogService
	EnrollmentService *service.EnrollmentService
	PaymentService    *service.PaymentService
	ProgressService   *service.ProgressService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCatalog()
	r.registerLearning()
	r.registerPayments()
	r.registerAdminCourses()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Prestige Academy API
//	@version		0.1.0
//	@description	Backend of the Prestige Academy e-learning portal: catalog, student sign-in, enrollment, mobile-money checkout and course progress.
//	@description
//	@description				Admin and student tokens are independent EdDSA-signed JWTs; a token of one principal is rejected on the other's routes.
//
//	@contact.name				Prestige Strategies
//	@contact.url				https://github.com/prestige-strategies/academy
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) student(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, jwtx.PrincipalStudent),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) admin(h http.Handler) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier, jwtx.PrincipalAdmin),
		httpx.RateLimitByUser(httpx.StudentLimit),
	)
}

func (r *Router) registerAuth() {
	adminH := &AdminAuthHandler{AdminService: r.AdminService}
	studentH := &StudentAuthHandler{StudentService: r.StudentService}

	// Login attempts are limited by IP plus the submitted email to slow
	// down password guessing.
	r.Mux.Handle("POST /api/admin/login",
		httpx.Chain(http.HandlerFunc(adminH.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.LoginLimit, "email"),
		),
	)
	r.Mux.Handle("GET /api/admin/verify", r.admin(http.HandlerFunc(adminH.HandleVerify)))

	r.Mux.Handle("POST /api/auth/google",
		httpx.Chain(http.HandlerFunc(studentH.HandleExchange),
			httpx.RateLimitByIP(httpx.LoginLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/verify", r.student(http.HandlerFunc(studentH.HandleVerify), httpx.StudentLimit))
}

func (r *Router) registerCatalog() {
	h := &CatalogHandler{CatalogService: r.CatalogService}
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(httpx.PublicLimit))
	}

	r.Mux.Handle("GET /api/courses", public(h.HandleListCourses))
	r.Mux.Handle("GET /api/courses/{id}", public(h.HandleGetCourse))
	r.Mux.Handle("GET /api/jobs", public(h.HandleListJobs))
	r.Mux.Handle("GET /api/events", public(h.HandleListEvents))
	r.Mux.Handle("GET /api/resources", public(h.HandleListResources))
}

func (r *Router) registerLearning() {
	h := &LearningHandler{
		EnrollmentService: r.EnrollmentService,
		ProgressService:   r.ProgressService,
	}

	r.Mux.Handle("GET /api/enrollments/check", r.student(http.HandlerFunc(h.HandleCheckEnrollment), httpx.StudentLimit))
	r.Mux.Handle("GET /api/courses/{id}/modules", r.student(http.HandlerFunc(h.HandleListModules), httpx.StudentLimit))
	r.Mux.Handle("GET /api/progress", r.student(http.HandlerFunc(h.HandleGetProgress), httpx.StudentLimit))
	r.Mux.Handle("POST /api/progress/complete", r.student(http.HandlerFunc(h.HandleMarkComplete), httpx.StudentLimit))
}

func (r *Router) registerPayments() {
	h := &PaymentHandler{PaymentService: r.PaymentService}

	// Initiation pushes a prompt to a phone, so it gets the tightest limit.
	r.Mux.Handle("POST /api/payments/initiate", r.student(http.HandlerFunc(h.HandleInitiate), httpx.PaymentLimit))
	r.Mux.Handle("GET /api/payments/{id}", r.student(http.HandlerFunc(h.HandleStatus), httpx.StudentLimit))
}

func (r *Router) registerAdminCourses() {
	h := &AdminCourseHandler{CatalogService: r.CatalogService}

	r.Mux.Handle("POST /api/admin/courses", r.admin(http.HandlerFunc(h.HandleCreateCourse)))
	r.Mux.Handle("PUT /api/admin/courses/{id}", r.admin(http.HandlerFunc(h.HandleUpdateCourse)))
	r.Mux.Handle("POST /api/admin/courses/{id}/modules", r.admin(http.HandlerFunc(h.HandleCreateModule)))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	if r.Metrics != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}
