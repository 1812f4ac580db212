// Package session owns "who is signed in" for one principal: it rehydrates a
// stored token on startup, performs login and logout, and tells subscribers
// about every change.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// ErrSignedOut is returned by Token when no user is signed in.
var ErrSignedOut = errors.New("session: signed out")

// Status is the coarse auth state a view gates on.
type Status int

const (
	// StatusUnknown holds until Initialize settles.
	StatusUnknown Status = iota
	StatusSignedOut
	StatusSignedIn
)

func (s Status) String() string {
	switch s {
	case StatusSignedOut:
		return "signed-out"
	case StatusSignedIn:
		return "signed-in"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session. User is set iff Status is StatusSignedIn.
type State[U any] struct {
	Status Status
	User   *U
}

// Authenticator is the backend side of one principal.
type Authenticator[C, U any] interface {
	Login(ctx context.Context, credential C) (token string, user *U, err error)
	Verify(ctx context.Context, token string) (*U, error)
}

// Options tune a Manager. The zero value is usable.
type Options struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// Manager is the single source of truth for one principal's signed-in user.
// Admin and student each get their own Manager and token slot.
type Manager[C, U any] struct {
	principal storage.Principal
	tokens    storage.TokenStore
	auth      Authenticator[C, U]
	log       *slog.Logger
	now       func() time.Time

	initOnce sync.Once

	mu    sync.RWMutex
	state State[U]
	token string
	// gen increments on every state change so a slow verify cannot overwrite
	// a login that finished first.
	gen uint64

	subMu   sync.Mutex
	subs    map[int]func(State[U])
	nextSub int
}

// NewManager builds a Manager in StatusUnknown.
func NewManager[C, U any](
	principal storage.Principal,
	store storage.Store,
	auth Authenticator[C, U],
	opts Options,
) *Manager[C, U] {
	log := opts.Logger
	if log == nil {
		log = slogx.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager[C, U]{
		principal: principal,
		tokens:    store.Tokens(principal),
		auth:      auth,
		log:       log.With("principal", string(principal)),
		now:       now,
		subs:      make(map[int]func(State[U])),
	}
}

// Initialize rehydrates the stored token. It runs once; later calls return
// immediately. Auth failures never surface: they end in StatusSignedOut.
func (m *Manager[C, U]) Initialize(ctx context.Context) {
	m.initOnce.Do(func() { m.initialize(ctx) })
}

func (m *Manager[C, U]) initialize(ctx context.Context) {
	startGen := m.generation()

	token, err := m.tokens.Get(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNoToken) {
			m.log.Warn("read stored token", "err", err)
		}
		m.settleSignedOut(ctx, startGen, false)
		return
	}

	if jwtx.ExpiredAt(token, m.now()) {
		m.log.Debug("stored token expired, discarding")
		m.settleSignedOut(ctx, startGen, true)
		return
	}

	user, err := m.auth.Verify(ctx, token)
	if err != nil {
		m.log.Debug("stored token rejected, discarding", "err", err)
		m.settleSignedOut(ctx, startGen, true)
		return
	}

	m.mu.Lock()
	if m.gen != startGen {
		m.mu.Unlock()
		return
	}
	m.gen++
	m.token = token
	m.state = State[U]{Status: StatusSignedIn, User: user}
	st := m.state
	m.mu.Unlock()

	m.log.Debug("session restored")
	m.publish(st)
}

// Login exchanges a credential for a token. On success the token is stored
// and any previous user is replaced. Failures leave the state untouched.
func (m *Manager[C, U]) Login(ctx context.Context, credential C) (*U, error) {
	token, user, err := m.auth.Login(ctx, credential)
	if err != nil {
		return nil, err
	}

	if err := m.tokens.Set(ctx, token); err != nil {
		// The in-memory session still works; it just will not survive a restart.
		m.log.Warn("persist token", "err", err)
	}

	m.mu.Lock()
	m.gen++
	m.token = token
	m.state = State[U]{Status: StatusSignedIn, User: user}
	st := m.state
	m.mu.Unlock()

	m.log.Debug("signed in")
	m.publish(st)
	return user, nil
}

// Logout clears the stored token and the in-memory user. There is no server
// round trip; the token stays valid server-side until it expires.
func (m *Manager[C, U]) Logout(ctx context.Context) error {
	err := m.tokens.Clear(ctx)

	m.mu.Lock()
	m.gen++
	m.token = ""
	m.state = State[U]{Status: StatusSignedOut}
	st := m.state
	m.mu.Unlock()

	m.log.Debug("signed out")
	m.publish(st)

	if err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}

// State returns the current snapshot. A signed-in user whose token has
// expired is signed out first.
func (m *Manager[C, U]) State() State[U] {
	m.expireIfStale(context.Background())

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Principal reports which identity domain this manager owns.
func (m *Manager[C, U]) Principal() storage.Principal { return m.principal }

// Token returns the bearer token of the signed-in user. An expired token is
// discarded and reported as ErrSignedOut; it is never handed out.
func (m *Manager[C, U]) Token(ctx context.Context) (string, error) {
	m.expireIfStale(ctx)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Status != StatusSignedIn || m.token == "" {
		return "", ErrSignedOut
	}
	return m.token, nil
}

// Subscribe registers fn for every state change. Callbacks run synchronously
// on the goroutine that caused the change, in registration order.
func (m *Manager[C, U]) Subscribe(fn func(State[U])) (unsubscribe func()) {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

func (m *Manager[C, U]) publish(st State[U]) {
	m.subMu.Lock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(State[U]), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, m.subs[id])
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func (m *Manager[C, U]) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

// expireIfStale signs out a user whose token's decoded expiry has passed and
// drops the token from storage.
func (m *Manager[C, U]) expireIfStale(ctx context.Context) {
	m.mu.Lock()
	if m.state.Status != StatusSignedIn || !jwtx.ExpiredAt(m.token, m.now()) {
		m.mu.Unlock()
		return
	}
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Warn("discard expired token", "err", err)
	}
	m.gen++
	m.token = ""
	m.state = State[U]{Status: StatusSignedOut}
	st := m.state
	m.mu.Unlock()

	m.log.Debug("token expired, signed out")
	m.publish(st)
}

// settleSignedOut finishes Initialize unless a login or logout already
// decided the state. The stored token is only discarded in that case too.
func (m *Manager[C, U]) settleSignedOut(ctx context.Context, startGen uint64, discard bool) {
	m.mu.Lock()
	if m.gen != startGen {
		m.mu.Unlock()
		return
	}
	if discard {
		if err := m.tokens.Clear(ctx); err != nil {
			m.log.Warn("discard stored token", "err", err)
		}
	}
	m.gen++
	m.token = ""
	m.state = State[U]{Status: StatusSignedOut}
	st := m.state
	m.mu.Unlock()

	m.publish(st)
}
