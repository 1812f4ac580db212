// Package player holds the course player's state: the ordered module list,
// per-module completion and the current-module cursor.
package player

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

var (
	// ErrNotEnrolled is returned by Load after redirecting a student who does
	// not own the course.
	ErrNotEnrolled = errors.New("player: not enrolled")

	// ErrIndexOutOfRange is returned by Select for an index outside the list.
	ErrIndexOutOfRange = errors.New("player: module index out of range")

	// ErrNoModules is returned by MarkCurrentComplete on an empty course.
	ErrNoModules = errors.New("player: course has no modules")

	// ErrDisposed is returned when the player was torn down mid-operation.
	ErrDisposed = errors.New("player: disposed")
)

// Learning is the enrolled-student API the player needs.
// *academysdk.Session satisfies it.
type Learning interface {
	CheckEnrollment(ctx context.Context, courseID string) (bool, error)
	ListModules(ctx context.Context, courseID string) ([]academysdk.Module, error)
	GetProgress(ctx context.Context, courseID string) ([]string, error)
	MarkModuleComplete(ctx context.Context, moduleID string) error
}

// Redirector sends the student back to the course detail page.
type Redirector interface {
	RedirectToCourse(courseID string)
}

// Player is the state of one course player view.
type Player struct {
	courseID string
	learning Learning
	redirect Redirector
	log      *slog.Logger

	mu       sync.RWMutex
	modules  []academysdk.Module
	cursor   int
	disposed bool
}

// New builds an empty Player for courseID.
func New(courseID string, learning Learning, redirect Redirector, log *slog.Logger) *Player {
	if log == nil {
		log = slogx.Discard()
	}
	return &Player{
		courseID: courseID,
		learning: learning,
		redirect: redirect,
		log:      log.With("course_id", courseID),
	}
}

// Load re-checks enrollment, then fetches modules and completion and places
// the cursor on the first incomplete module. A failed enrollment check is
// returned as is; only a definite "not enrolled" redirects.
func (p *Player) Load(ctx context.Context) error {
	enrolled, err := p.learning.CheckEnrollment(ctx, p.courseID)
	if err != nil {
		// No redirect: the student may well own the course, and the caller can retry.
		return fmt.Errorf("check enrollment: %w", err)
	}
	if !enrolled {
		if !p.isDisposed() {
			p.log.Debug("not enrolled, redirecting to course")
			p.redirect.RedirectToCourse(p.courseID)
		}
		return ErrNotEnrolled
	}

	modules, err := p.learning.ListModules(ctx, p.courseID)
	if err != nil {
		return fmt.Errorf("list modules: %w", err)
	}
	completed, err := p.learning.GetProgress(ctx, p.courseID)
	if err != nil {
		return fmt.Errorf("get progress: %w", err)
	}

	merged := merge(modules, completed)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return ErrDisposed
	}
	p.modules = merged
	p.cursor = firstIncomplete(merged)
	p.log.Debug("player loaded", "modules", len(merged), "cursor", p.cursor)
	return nil
}

// merge orders modules by OrderIndex and sets Completed from the progress
// set. The input slice is not modified.
func merge(modules []academysdk.Module, completed []string) []academysdk.Module {
	done := make(map[string]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}

	out := slices.Clone(modules)
	slices.SortStableFunc(out, func(a, b academysdk.Module) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	for i := range out {
		_, ok := done[out[i].ID]
		out[i].Completed = ok
	}
	return out
}

func firstIncomplete(modules []academysdk.Module) int {
	if i := slices.IndexFunc(modules, func(m academysdk.Module) bool { return !m.Completed }); i >= 0 {
		return i
	}
	return 0
}

// Select moves the cursor to index. Any module may be selected.
func (p *Player) Select(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.modules) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(p.modules))
	}
	p.cursor = index
	return nil
}

// MarkCurrentComplete records completion of the current module and advances
// to the next one. Already completed modules are a no-op. On failure the
// state is unchanged and the error is returned for display.
func (p *Player) MarkCurrentComplete(ctx context.Context) error {
	p.mu.RLock()
	if len(p.modules) == 0 {
		p.mu.RUnlock()
		return ErrNoModules
	}
	cursor := p.cursor
	current := p.modules[cursor]
	p.mu.RUnlock()

	if current.Completed {
		return nil
	}

	if err := p.learning.MarkModuleComplete(ctx, current.ID); err != nil {
		p.log.Info("mark module complete failed", "module_id", current.ID, "err", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return ErrDisposed
	}
	i := slices.IndexFunc(p.modules, func(m academysdk.Module) bool { return m.ID == current.ID })
	if i < 0 {
		return nil
	}
	p.modules[i].Completed = true
	// Advance only if the student has not moved on while the call ran.
	if p.cursor == cursor && cursor+1 < len(p.modules) {
		p.cursor++
	}
	return nil
}

// Progress is the rounded percentage of completed modules, 0 for none.
func (p *Player) Progress() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.modules) == 0 {
		return 0
	}
	done := 0
	for _, m := range p.modules {
		if m.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(p.modules)) * 100))
}

// Current returns the module under the cursor. ok is false before Load or
// for a course without modules.
func (p *Player) Current() (m academysdk.Module, index int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.modules) == 0 {
		return academysdk.Module{}, 0, false
	}
	return p.modules[p.cursor], p.cursor, true
}

// Modules returns a copy of the ordered module list.
func (p *Player) Modules() []academysdk.Module {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.modules)
}

// Dispose detaches the player from its view; late results are dropped.
func (p *Player) Dispose() {
	p.mu.Lock()
	p.disposed = true
	p.mu.Unlock()
}

func (p *Player) isDisposed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.disposed
}
