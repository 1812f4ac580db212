package payment_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/payment"
	"github.com/prestige-strategies/academy/internal/portal/portaltest"
	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/internal/portal/storage/drivers/memory"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
)

type fakeInitiator struct {
	initCalls atomic.Int32
	pollCalls atomic.Int32

	mu       sync.Mutex
	requests []academysdk.PaymentRequest
	keys     []string
	resp     *academysdk.PaymentResponse
	err      error
	statuses []statusResult
	release  chan struct{}
}

type statusResult struct {
	resp *academysdk.PaymentStatusResponse
	err  error
}

func (f *fakeInitiator) InitiatePaymentWithKey(_ context.Context, key string, req academysdk.PaymentRequest) (*academysdk.PaymentResponse, error) {
	f.initCalls.Add(1)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.keys = append(f.keys, key)
	release := f.release
	err := f.err
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &academysdk.PaymentResponse{Success: true, TestMode: true}, nil
}

func (f *fakeInitiator) PaymentStatus(_ context.Context, _ string) (*academysdk.PaymentStatusResponse, error) {
	n := int(f.pollCalls.Add(1))
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > len(f.statuses) {
		return &academysdk.PaymentStatusResponse{Status: academysdk.PaymentPending}, nil
	}
	r := f.statuses[n-1]
	return r.resp, r.err
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newController(init *fakeInitiator, throttle *payment.Throttle, complete chan struct{}) *payment.Controller {
	return payment.New(payment.Config{
		CourseID:     "c1",
		Amount:       2500,
		Initiator:    init,
		Throttle:     throttle,
		SuccessDelay: 10 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
		OnComplete: func() {
			if complete != nil {
				complete <- struct{}{}
			}
		},
	})
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{}
	complete := make(chan struct{}, 1)

	var (
		mu     sync.Mutex
		states []payment.State
	)
	c := payment.New(payment.Config{
		CourseID:     "c1",
		Amount:       2500,
		Initiator:    init,
		SuccessDelay: 10 * time.Millisecond,
		OnComplete:   func() { complete <- struct{}{} },
		OnChange: func(s payment.Snapshot) {
			mu.Lock()
			states = append(states, s.State)
			mu.Unlock()
		},
	})

	require.NoError(t, c.Submit(context.Background(), "0712 345 678"))

	snap := c.Snapshot()
	require.Equal(t, payment.StateSuccess, snap.State)
	require.True(t, snap.TestMode)
	require.Equal(t, "254712345678", snap.Phone)
	require.Equal(t, []academysdk.PaymentRequest{{CourseID: "c1", PhoneNumber: "254712345678", Amount: 2500}}, init.requests)

	portaltest.Eventually(t, complete)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []payment.State{payment.StateProcessing, payment.StateSuccess}, states)
}

func TestSubmitInvalidPhoneMakesNoCall(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{}
	c := newController(init, nil, nil)

	err := c.Submit(context.Background(), "0812345678")
	var verr *academysdk.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Zero(t, init.initCalls.Load())

	snap := c.Snapshot()
	require.Equal(t, payment.StateInput, snap.State)
	require.Equal(t, payment.PhoneMessage, snap.FieldError)
}

func TestThrottleWithinWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	clk := &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	throttle := &payment.Throttle{Guard: store.Attempts(), Window: payment.ThrottleWindow, Now: clk.Now}

	init := &fakeInitiator{}
	first := newController(init, throttle, nil)
	require.NoError(t, first.Submit(ctx, "0712345678"))
	require.Equal(t, int32(1), init.initCalls.Load())

	last, ok, err := store.Attempts().LastAttempt(ctx, storage.CourseAttemptKey("c1"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, clk.Now(), last)

	clk.Advance(3600000*time.Millisecond - time.Millisecond)
	second := newController(init, throttle, nil)
	require.ErrorIs(t, second.Submit(ctx, "0712345678"), payment.ErrThrottled)
	require.Equal(t, int32(1), init.initCalls.Load(), "throttled submit makes no network call")
	require.Equal(t, payment.StateInput, second.Snapshot().State)
	require.Equal(t, payment.ThrottleMessage, second.Snapshot().FieldError)

	clk.Advance(time.Millisecond)
	third := newController(init, throttle, nil)
	require.NoError(t, third.Submit(ctx, "0712345678"))
	require.Equal(t, int32(2), init.initCalls.Load())
}

func TestThrottleKeysAreIndependent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	throttle := payment.NewThrottle(memory.NewStore().Attempts())
	require.NoError(t, throttle.Record(ctx, storage.CourseAttemptKey("c1")))
	require.ErrorIs(t, throttle.Check(ctx, storage.CourseAttemptKey("c1")), payment.ErrThrottled)
	require.NoError(t, throttle.Check(ctx, storage.CourseAttemptKey("c2")))
	require.NoError(t, throttle.Check(ctx, storage.JobAttemptKey("c1")))
}

func TestFailedInitiationDoesNotThrottle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	throttle := payment.NewThrottle(memory.NewStore().Attempts())
	init := &fakeInitiator{err: &academysdk.ServerError{StatusCode: 400, Message: "Course not found"}}
	c := newController(init, throttle, nil)

	require.NoError(t, c.Submit(ctx, "0712345678"))
	require.Equal(t, payment.StateError, c.Snapshot().State)
	require.Equal(t, "Course not found", c.Snapshot().Message)
	require.NoError(t, throttle.Check(ctx, storage.CourseAttemptKey("c1")))
}

func TestErrorRetryMakesNoCall(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{err: &academysdk.NetworkError{Op: "POST", Err: errors.New("dial tcp: refused")}}
	c := newController(init, nil, nil)

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	snap := c.Snapshot()
	require.Equal(t, payment.StateError, snap.State)
	require.Equal(t, academysdk.GenericErrorMessage, snap.Message)

	require.NoError(t, c.Retry())
	require.Equal(t, payment.StateInput, c.Snapshot().State)
	require.Empty(t, c.Snapshot().Message)
	require.Equal(t, int32(1), init.initCalls.Load())

	require.ErrorIs(t, c.Retry(), payment.ErrIllegalTransition)
}

func TestResubmitReusesKeyUntilBackendAnswers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	init := &fakeInitiator{err: &academysdk.NetworkError{Op: "POST", Err: errors.New("read: connection reset")}}
	c := newController(init, nil, nil)

	// Lost response: the second submission replays the first attempt.
	require.NoError(t, c.Submit(ctx, "0712345678"))
	require.NoError(t, c.Retry())
	init.mu.Lock()
	init.err = &academysdk.ServerError{StatusCode: 502, Message: "Gateway unavailable"}
	init.mu.Unlock()
	require.NoError(t, c.Submit(ctx, "0712345678"))

	// The backend answered, so the third submission is a new attempt.
	require.NoError(t, c.Retry())
	require.NoError(t, c.Submit(ctx, "0712345678"))

	init.mu.Lock()
	keys := append([]string(nil), init.keys...)
	init.mu.Unlock()
	require.Len(t, keys, 3)
	require.NotEmpty(t, keys[0])
	require.Equal(t, keys[0], keys[1])
	require.NotEqual(t, keys[1], keys[2])
}

func TestResubmitWithNewPhoneUsesNewKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	init := &fakeInitiator{err: &academysdk.NetworkError{Op: "POST", Err: errors.New("timeout")}}
	c := newController(init, nil, nil)

	require.NoError(t, c.Submit(ctx, "0712345678"))
	require.NoError(t, c.Retry())
	require.NoError(t, c.Submit(ctx, "0798765432"))

	init.mu.Lock()
	defer init.mu.Unlock()
	require.Len(t, init.keys, 2)
	require.NotEqual(t, init.keys[0], init.keys[1])
}

func TestMissingTokenEndsInError(t *testing.T) {
	t.Parallel()

	c := newController(&fakeInitiator{err: academysdk.ErrNoToken}, nil, nil)
	require.NoError(t, c.Submit(context.Background(), "254712345678"))
	require.Equal(t, payment.StateError, c.Snapshot().State)
	require.Equal(t, academysdk.SignInRequiredMessage, c.Snapshot().Message)
}

func TestCloseWhileProcessingIsRejected(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{release: make(chan struct{})}
	complete := make(chan struct{}, 1)
	c := newController(init, nil, complete)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "0712345678") }()
	require.Eventually(t, func() bool { return c.Snapshot().State == payment.StateProcessing }, time.Second, time.Millisecond)

	require.ErrorIs(t, c.Close(), payment.ErrCloseWhileProcessing)
	require.Equal(t, payment.StateProcessing, c.Snapshot().State)
	require.ErrorIs(t, c.Submit(context.Background(), "0712345678"), payment.ErrIllegalTransition)

	close(init.release)
	require.NoError(t, portaltest.Eventually(t, done))
	require.Equal(t, payment.StateSuccess, c.Snapshot().State)
	portaltest.Eventually(t, complete)
}

func TestCloseFromSuccessDropsCompletion(t *testing.T) {
	t.Parallel()

	complete := make(chan struct{}, 1)
	c := payment.New(payment.Config{
		CourseID:     "c1",
		Initiator:    &fakeInitiator{},
		SuccessDelay: 30 * time.Millisecond,
		OnComplete:   func() { complete <- struct{}{} },
	})

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	require.Equal(t, payment.StateSuccess, c.Snapshot().State)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	portaltest.Never(t, complete)
	require.ErrorIs(t, c.Submit(context.Background(), "0712345678"), payment.ErrClosed)
}

func TestPollingUntilCompleted(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{
		resp: &academysdk.PaymentResponse{Success: true, CheckoutRequestID: "ws_1", Status: academysdk.PaymentPending},
		statuses: []statusResult{
			{resp: &academysdk.PaymentStatusResponse{Status: academysdk.PaymentPending}},
			{err: &academysdk.NetworkError{Op: "GET", Err: errors.New("timeout")}},
			{resp: &academysdk.PaymentStatusResponse{Status: academysdk.PaymentCompleted, Message: "Payment received"}},
		},
	}
	complete := make(chan struct{}, 1)
	c := newController(init, nil, complete)

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	require.Equal(t, payment.StateProcessing, c.Snapshot().State)
	require.Equal(t, "ws_1", c.Snapshot().CheckoutRequestID)

	portaltest.Eventually(t, complete)
	snap := c.Snapshot()
	require.Equal(t, payment.StateSuccess, snap.State)
	require.Equal(t, "Payment received", snap.Message)
	require.Equal(t, int32(3), init.pollCalls.Load())
}

func TestPollingFailedStatus(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{
		resp: &academysdk.PaymentResponse{Success: true, CheckoutRequestID: "ws_2", Status: academysdk.PaymentPending},
		statuses: []statusResult{
			{resp: &academysdk.PaymentStatusResponse{Status: academysdk.PaymentCancelled}},
		},
	}
	c := newController(init, nil, nil)

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	require.Eventually(t, func() bool { return c.Snapshot().State == payment.StateError }, time.Second, time.Millisecond)
	require.Equal(t, payment.NotCompletedMessage, c.Snapshot().Message)
}

func TestPollingGivesUpAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	netErr := &academysdk.NetworkError{Op: "GET", Err: errors.New("unreachable")}
	init := &fakeInitiator{
		resp:     &academysdk.PaymentResponse{Success: true, CheckoutRequestID: "ws_3", Status: academysdk.PaymentPending},
		statuses: []statusResult{{err: netErr}, {err: netErr}, {err: netErr}},
	}
	c := newController(init, nil, nil)

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	require.Eventually(t, func() bool { return c.Snapshot().State == payment.StateError }, time.Second, time.Millisecond)
	require.Equal(t, academysdk.GenericErrorMessage, c.Snapshot().Message)
	require.Equal(t, int32(3), init.pollCalls.Load())
}

func TestDisposeStopsPolling(t *testing.T) {
	t.Parallel()

	init := &fakeInitiator{
		resp: &academysdk.PaymentResponse{Success: true, CheckoutRequestID: "ws_4", Status: academysdk.PaymentPending},
	}
	c := newController(init, nil, nil)

	require.NoError(t, c.Submit(context.Background(), "0712345678"))
	require.Eventually(t, func() bool { return init.pollCalls.Load() >= 1 }, time.Second, time.Millisecond)

	c.Dispose()
	time.Sleep(20 * time.Millisecond)
	calls := init.pollCalls.Load()
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, calls, init.pollCalls.Load())
	require.Equal(t, payment.StateProcessing, c.Snapshot().State)
}

func TestTransitionTable(t *testing.T) {
	t.Parallel()

	allowed := map[[2]payment.State]bool{
		{payment.StateInput, payment.StateProcessing}:   true,
		{payment.StateProcessing, payment.StateSuccess}: true,
		{payment.StateProcessing, payment.StateError}:   true,
		{payment.StateError, payment.StateInput}:        true,
	}
	all := []payment.State{payment.StateInput, payment.StateProcessing, payment.StateSuccess, payment.StateError}
	for _, from := range all {
		for _, to := range all {
			require.Equal(t, allowed[[2]payment.State{from, to}], payment.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
