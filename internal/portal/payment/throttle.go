package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/storage"
)

// ThrottleWindow is how long a recorded attempt blocks another one for the
// same course or job.
const ThrottleWindow = time.Hour

// ThrottleMessage is shown when a submission is rejected by the throttle.
const ThrottleMessage = "You already started this payment recently. Please check your phone or try again later."

// ErrThrottled is returned when an attempt for the key happened within the
// window.
var ErrThrottled = errors.New("payment: attempted too recently")

// Throttle is a best-effort local guard against duplicate submissions. It is
// advisory: it does not coordinate across devices.
type Throttle struct {
	Guard  storage.AttemptGuard
	Window time.Duration
	Now    func() time.Time
}

// NewThrottle returns a Throttle with ThrottleWindow over guard.
func NewThrottle(guard storage.AttemptGuard) *Throttle {
	return &Throttle{Guard: guard, Window: ThrottleWindow, Now: time.Now}
}

func (t *Throttle) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

func (t *Throttle) window() time.Duration {
	if t.Window <= 0 {
		return ThrottleWindow
	}
	return t.Window
}

// Check returns ErrThrottled if key was attempted within the window. Other
// errors come from the guard itself.
func (t *Throttle) Check(ctx context.Context, key string) error {
	last, ok, err := t.Guard.LastAttempt(ctx, key)
	if err != nil {
		return fmt.Errorf("read last attempt: %w", err)
	}
	if ok && t.now().Sub(last) < t.window() {
		return ErrThrottled
	}
	return nil
}

// Record stamps key with the current time.
func (t *Throttle) Record(ctx context.Context, key string) error {
	if err := t.Guard.RecordAttempt(ctx, key, t.now()); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}
