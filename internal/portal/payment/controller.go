// Package payment drives the mobile-money checkout modal: collect a phone
// number, initiate, wait for confirmation, then succeed or fail.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

const (
	// DefaultSuccessDelay is how long Success stays on screen before the
	// completion callback runs.
	DefaultSuccessDelay = 2 * time.Second

	// DefaultPollInterval spaces confirmation polls.
	DefaultPollInterval = 3 * time.Second

	// maxPollFailures consecutive failed polls end the attempt in Error.
	maxPollFailures = 3
)

// NotCompletedMessage is used when the backend reports a failed checkout
// without saying why.
const NotCompletedMessage = "Payment was not completed. Please try again."

var (
	// ErrCloseWhileProcessing is returned by Close while a payment is in flight.
	ErrCloseWhileProcessing = errors.New("payment: cannot close while processing")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("payment: controller closed")
)

// Initiator is the backend side of a checkout. *academysdk.Session
// satisfies it. The backend answers a repeated idempotency key with the
// original attempt.
type Initiator interface {
	InitiatePaymentWithKey(ctx context.Context, key string, req academysdk.PaymentRequest) (*academysdk.PaymentResponse, error)
	PaymentStatus(ctx context.Context, checkoutRequestID string) (*academysdk.PaymentStatusResponse, error)
}

// Snapshot is what the modal renders.
type Snapshot struct {
	State State
	// Message is the error text in StateError, or the confirmation text in
	// StateSuccess.
	Message string
	// FieldError is the phone validation message while in StateInput.
	FieldError string
	// Phone is the normalized number of the current attempt.
	Phone             string
	TestMode          bool
	CheckoutRequestID string
}

// Config describes one checkout.
type Config struct {
	CourseID string
	Amount   float64
	// ThrottleKey defaults to storage.CourseAttemptKey(CourseID).
	ThrottleKey string

	Initiator Initiator
	// Throttle may be nil to disable the local duplicate guard.
	Throttle *Throttle

	SuccessDelay time.Duration
	PollInterval time.Duration

	// OnComplete runs once, SuccessDelay after reaching StateSuccess, unless
	// the controller was closed first.
	OnComplete func()
	// OnChange runs after every state change.
	OnChange func(Snapshot)

	Logger *slog.Logger
}

// Controller is one checkout modal instance.
type Controller struct {
	cfg Config
	log *slog.Logger

	mu     sync.Mutex
	snap   Snapshot
	closed bool
	timer  *time.Timer
	cancel context.CancelFunc

	// attemptKey is reused while the outcome of the attempt for attemptPhone
	// is unknown, so resubmitting after a lost response cannot charge twice.
	attemptKey   string
	attemptPhone string

	notifyMu sync.Mutex
}

// New builds a Controller in StateInput.
func New(cfg Config) *Controller {
	if cfg.ThrottleKey == "" {
		cfg.ThrottleKey = storage.CourseAttemptKey(cfg.CourseID)
	}
	if cfg.SuccessDelay <= 0 {
		cfg.SuccessDelay = DefaultSuccessDelay
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	log := cfg.Logger
	if log == nil {
		log = slogx.Discard()
	}
	return &Controller{
		cfg:  cfg,
		log:  log.With("course_id", cfg.CourseID),
		snap: Snapshot{State: StateInput},
	}
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Submit validates phone and starts a checkout. Local rejections (bad
// number, throttled, wrong state) are returned and leave the state alone.
// Once the request is sent every outcome is reported through the state
// machine; Submit returns nil and the result is read from Snapshot.
func (c *Controller) Submit(ctx context.Context, phone string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := checkTransition(c.snap.State, StateProcessing); err != nil {
		c.mu.Unlock()
		return err
	}

	normalized, err := NormalizePhone(phone)
	if err != nil {
		var verr *academysdk.ValidationError
		if errors.As(err, &verr) {
			c.snap.FieldError = verr.Message
		}
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.mu.Unlock()

	if c.cfg.Throttle != nil {
		switch err := c.cfg.Throttle.Check(ctx, c.cfg.ThrottleKey); {
		case errors.Is(err, ErrThrottled):
			c.mu.Lock()
			c.snap.FieldError = ThrottleMessage
			c.mu.Unlock()
			c.notify()
			return err
		case err != nil:
			c.log.Warn("throttle unavailable, allowing attempt", "err", err)
		}
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := checkTransition(c.snap.State, StateProcessing); err != nil {
		c.mu.Unlock()
		return err
	}
	c.snap = Snapshot{State: StateProcessing, Phone: normalized}
	if c.attemptKey == "" || c.attemptPhone != normalized {
		c.attemptKey = uuid.NewString()
		c.attemptPhone = normalized
	}
	key := c.attemptKey
	c.mu.Unlock()
	c.notify()
	c.log.Debug("payment processing")

	resp, err := c.cfg.Initiator.InitiatePaymentWithKey(ctx, key, academysdk.PaymentRequest{
		CourseID:    c.cfg.CourseID,
		PhoneNumber: normalized,
		Amount:      c.cfg.Amount,
	})

	var netErr *academysdk.NetworkError
	if !errors.As(err, &netErr) {
		// The backend answered; the next submission is a new attempt.
		c.mu.Lock()
		c.attemptKey = ""
		c.mu.Unlock()
	}
	if err != nil {
		c.fail(academysdk.UserMessage(err), err)
		return nil
	}

	if c.cfg.Throttle != nil {
		if err := c.cfg.Throttle.Record(ctx, c.cfg.ThrottleKey); err != nil {
			c.log.Warn("record payment attempt", "err", err)
		}
	}

	c.mu.Lock()
	c.snap.TestMode = resp.TestMode
	c.snap.CheckoutRequestID = resp.CheckoutRequestID
	c.mu.Unlock()

	if resp.CheckoutRequestID != "" && resp.Status == academysdk.PaymentPending {
		c.startPolling(ctx, resp.CheckoutRequestID)
		return nil
	}

	c.succeed(resp.Message)
	return nil
}

// Retry returns from StateError to StateInput. No request is made.
func (c *Controller) Retry() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err := checkTransition(c.snap.State, StateInput); err != nil {
		c.mu.Unlock()
		return err
	}
	c.snap = Snapshot{State: StateInput}
	c.mu.Unlock()

	c.notify()
	return nil
}

// Close dismisses the modal. It is refused while processing; otherwise any
// pending completion callback is dropped. Closing twice is a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if c.snap.State == StateProcessing {
		c.mu.Unlock()
		return ErrCloseWhileProcessing
	}
	c.mu.Unlock()

	c.Dispose()
	return nil
}

// Dispose tears the controller down regardless of state. In-flight requests
// are not aborted but their results are ignored; polling stops.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller) startPolling(ctx context.Context, checkoutID string) {
	pollCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return
	}
	c.cancel = cancel
	c.mu.Unlock()

	go c.poll(pollCtx, checkoutID)
}

func (c *Controller) poll(ctx context.Context, checkoutID string) {
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		st, err := c.cfg.Initiator.PaymentStatus(ctx, checkoutID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			failures++
			c.log.Debug("payment status poll failed", "attempt", failures, "err", err)
			if failures >= maxPollFailures {
				c.fail(academysdk.UserMessage(err), err)
				return
			}
			continue
		}
		failures = 0

		switch st.Status {
		case academysdk.PaymentCompleted:
			c.succeed(st.Message)
			return
		case academysdk.PaymentFailed, academysdk.PaymentCancelled:
			msg := st.Message
			if msg == "" {
				msg = NotCompletedMessage
			}
			c.fail(msg, nil)
			return
		}
	}
}

func (c *Controller) succeed(message string) {
	c.mu.Lock()
	if c.closed || c.snap.State != StateProcessing {
		c.mu.Unlock()
		return
	}
	c.snap.State = StateSuccess
	c.snap.Message = message
	c.timer = time.AfterFunc(c.cfg.SuccessDelay, c.complete)
	c.mu.Unlock()

	c.log.Debug("payment succeeded")
	c.notify()
}

func (c *Controller) complete() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed || c.cfg.OnComplete == nil {
		return
	}
	c.cfg.OnComplete()
}

func (c *Controller) fail(message string, cause error) {
	c.mu.Lock()
	if c.closed || c.snap.State != StateProcessing {
		c.mu.Unlock()
		return
	}
	c.snap.State = StateError
	c.snap.Message = message
	c.mu.Unlock()

	c.log.Info("payment failed", "message", message, "err", cause)
	c.notify()
}

func (c *Controller) notify() {
	if c.cfg.OnChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.cfg.OnChange(c.Snapshot())
}
