// Package enrollment decides what happens when a visitor asks to enroll in a
// course: sign in first, pay, or go straight to the player.
package enrollment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// ErrDisposed is returned by Enroll after Dispose.
var ErrDisposed = errors.New("enrollment: gate disposed")

// Decision is the next UI step the gate took.
type Decision int

const (
	// DecisionDisabled means auth has not settled; the enroll control is inert.
	DecisionDisabled Decision = iota
	DecisionSignInPrompted
	DecisionRedirectToPlayer
	DecisionPaymentOpened
)

func (d Decision) String() string {
	switch d {
	case DecisionSignInPrompted:
		return "sign-in-prompted"
	case DecisionRedirectToPlayer:
		return "redirect-to-player"
	case DecisionPaymentOpened:
		return "payment-opened"
	default:
		return "disabled"
	}
}

// Auth is the part of the student session the gate reads.
type Auth interface {
	State() session.StudentState
	Subscribe(fn func(session.StudentState)) (unsubscribe func())
}

// EnrollmentChecker asks the backend whether the signed-in student owns a
// course. *academysdk.Session satisfies it.
type EnrollmentChecker interface {
	CheckEnrollment(ctx context.Context, courseID string) (bool, error)
}

// Navigator opens the course player.
type Navigator interface {
	OpenPlayer(courseID string)
}

// SignInPrompter shows the sign-in widget. onSuccess runs after the student
// is signed in.
type SignInPrompter interface {
	PromptSignIn(ctx context.Context, onSuccess func()) error
}

// PaymentOpener opens the checkout for a course.
type PaymentOpener interface {
	OpenPayment(courseID string)
}

// Deps are the gate's collaborators. All are required.
type Deps struct {
	Auth     Auth
	Checker  EnrollmentChecker
	Navigate Navigator
	SignIn   SignInPrompter
	Payment  PaymentOpener
	Logger   *slog.Logger
}

// Gate is bound to one course detail view.
type Gate struct {
	courseID string
	deps     Deps
	log      *slog.Logger

	checks   singleflight.Group
	disposed atomic.Bool
	// redirected is set once the player has been opened; the view is gone
	// after that, so later decisions do not navigate again.
	redirected atomic.Bool

	// pending counts proactive checks still running.
	pending sync.WaitGroup

	mu      sync.Mutex
	unwatch []func()
}

// New builds a Gate for courseID.
func New(courseID string, deps Deps) *Gate {
	log := deps.Logger
	if log == nil {
		log = slogx.Discard()
	}
	return &Gate{
		courseID: courseID,
		deps:     deps,
		log:      log.With("course_id", courseID),
	}
}

// CourseID is the course this gate decides for.
func (g *Gate) CourseID() string { return g.courseID }

// Enroll runs the enroll action against the current auth state.
func (g *Gate) Enroll(ctx context.Context) (Decision, error) {
	if g.disposed.Load() {
		return DecisionDisabled, ErrDisposed
	}

	st := g.deps.Auth.State()
	switch st.Status {
	case session.StatusSignedIn:
		return g.decide(ctx)
	case session.StatusSignedOut:
		err := g.deps.SignIn.PromptSignIn(ctx, func() { g.afterSignIn(ctx) })
		return DecisionSignInPrompted, err
	default:
		g.log.Debug("enroll ignored, auth not settled")
		return DecisionDisabled, nil
	}
}

// afterSignIn resumes the enroll action once the widget reports success.
func (g *Gate) afterSignIn(ctx context.Context) {
	if g.disposed.Load() {
		return
	}
	if g.deps.Auth.State().Status != session.StatusSignedIn {
		return
	}
	if _, err := g.decide(ctx); err != nil && !errors.Is(err, ErrDisposed) {
		g.log.Warn("enroll after sign-in", "err", err)
	}
}

// decide checks enrollment and routes to the player or the checkout. A
// failed check opens the checkout.
func (g *Gate) decide(ctx context.Context) (Decision, error) {
	enrolled, err := g.check(ctx)
	if g.disposed.Load() {
		return DecisionDisabled, ErrDisposed
	}

	switch {
	case err != nil && g.deps.Auth.State().Status == session.StatusSignedOut:
		// The session ended while checking, usually an expired token.
		g.log.Debug("signed out during enrollment check, prompting sign-in")
		return DecisionSignInPrompted, g.deps.SignIn.PromptSignIn(ctx, func() { g.afterSignIn(ctx) })
	case err != nil:
		g.log.Warn("enrollment check failed, opening payment", "err", err)
		g.deps.Payment.OpenPayment(g.courseID)
		return DecisionPaymentOpened, nil
	case enrolled:
		g.redirect()
		return DecisionRedirectToPlayer, nil
	default:
		g.log.Debug("not enrolled, opening payment")
		g.deps.Payment.OpenPayment(g.courseID)
		return DecisionPaymentOpened, nil
	}
}

// check coalesces concurrent checks for the course into one request.
func (g *Gate) check(ctx context.Context) (bool, error) {
	v, err, _ := g.checks.Do(g.courseID, func() (any, error) {
		return g.deps.Checker.CheckEnrollment(ctx, g.courseID)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (g *Gate) redirect() {
	if g.redirected.Swap(true) {
		return
	}
	g.log.Debug("already enrolled, opening player")
	g.deps.Navigate.OpenPlayer(g.courseID)
}

// Watch runs the enrollment check whenever the student becomes signed in,
// including right away if they already are, and opens the player for an
// owned course. Failed or negative checks leave the view alone. The returned
// stop func unsubscribes.
func (g *Gate) Watch(ctx context.Context) (stop func()) {
	var (
		mu   sync.Mutex
		prev = g.deps.Auth.State().Status
	)

	unsubscribe := g.deps.Auth.Subscribe(func(st session.StudentState) {
		mu.Lock()
		entered := prev != session.StatusSignedIn && st.Status == session.StatusSignedIn
		prev = st.Status
		mu.Unlock()
		if entered {
			g.startProactiveCheck(ctx)
		}
	})

	if prev == session.StatusSignedIn {
		g.startProactiveCheck(ctx)
	}

	g.mu.Lock()
	g.unwatch = append(g.unwatch, unsubscribe)
	g.mu.Unlock()
	return unsubscribe
}

// Wait blocks until every proactive check started so far has finished. Views
// without an event loop call it before reading where the gate navigated.
func (g *Gate) Wait() { g.pending.Wait() }

func (g *Gate) startProactiveCheck(ctx context.Context) {
	g.pending.Add(1)
	go func() {
		defer g.pending.Done()
		g.proactiveCheck(ctx)
	}()
}

func (g *Gate) proactiveCheck(ctx context.Context) {
	if g.disposed.Load() {
		return
	}
	enrolled, err := g.check(ctx)
	if g.disposed.Load() {
		return
	}
	if err != nil {
		g.log.Warn("proactive enrollment check failed", "err", err)
		return
	}
	if enrolled {
		g.redirect()
	}
}

// Dispose detaches the gate from its view. Checks still in flight finish
// but their results are dropped.
func (g *Gate) Dispose() {
	if g.disposed.Swap(true) {
		return
	}
	g.mu.Lock()
	fns := g.unwatch
	g.unwatch = nil
	g.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
