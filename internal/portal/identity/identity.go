// Package identity connects the third-party sign-in widget to the student
// session. The widget only ever hands over an opaque credential string.
package identity

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// Widget is the narrow contract with an external sign-in button.
type Widget interface {
	// Render draws the button into container.
	Render(container string) error
	// OnCredential registers the callback the widget fires after the user
	// signs in. Only the latest callback is kept.
	OnCredential(fn func(credential string))
}

// ErrEmptyCredential is returned when the widget produced nothing usable.
var ErrEmptyCredential = errors.New("identity: empty credential")

// StubWidget is a Widget driven by test code through Emit.
type StubWidget struct {
	mu        sync.Mutex
	fn        func(string)
	Rendered  []string
	RenderErr error
}

func (w *StubWidget) Render(container string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.RenderErr != nil {
		return w.RenderErr
	}
	w.Rendered = append(w.Rendered, container)
	return nil
}

func (w *StubWidget) OnCredential(fn func(string)) {
	w.mu.Lock()
	w.fn = fn
	w.mu.Unlock()
}

// Emit simulates the widget firing its callback. It reports whether a
// callback was registered.
func (w *StubWidget) Emit(credential string) bool {
	w.mu.Lock()
	fn := w.fn
	w.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(credential)
	return true
}

// PromptWidget is a terminal stand-in for the sign-in button: Render prints
// a prompt and reads one credential line, then fires the callback. Pass a
// *bufio.Reader as In when other prompts share the same input.
type PromptWidget struct {
	In  io.Reader
	Out io.Writer

	mu sync.Mutex
	fn func(string)
	r  *bufio.Reader
}

func (w *PromptWidget) Render(container string) error {
	w.mu.Lock()
	if w.r == nil {
		if br, ok := w.In.(*bufio.Reader); ok {
			w.r = br
		} else {
			w.r = bufio.NewReader(w.In)
		}
	}
	r, fn := w.r, w.fn
	w.mu.Unlock()

	fmt.Fprintf(w.Out, "[%s] paste your Google ID token: ", container)
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read credential: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return ErrEmptyCredential
	}
	if fn != nil {
		fn(line)
	}
	return nil
}

func (w *PromptWidget) OnCredential(fn func(string)) {
	w.mu.Lock()
	w.fn = fn
	w.mu.Unlock()
}

// Prompter opens the sign-in widget and logs the student in with whatever
// credential it produces.
type Prompter struct {
	widget    Widget
	student   *session.Student
	container string
	log       *slog.Logger

	mu      sync.Mutex
	lastErr error
}

// NewPrompter binds widget to the student session. container names where
// the widget renders.
func NewPrompter(widget Widget, student *session.Student, container string, log *slog.Logger) *Prompter {
	if log == nil {
		log = slogx.Discard()
	}
	return &Prompter{widget: widget, student: student, container: container, log: log}
}

// PromptSignIn renders the widget. onSuccess runs once the credential has
// been exchanged and the student is signed in; a rejected exchange is kept
// for Err and onSuccess is not called.
func (p *Prompter) PromptSignIn(ctx context.Context, onSuccess func()) error {
	p.widget.OnCredential(func(credential string) {
		if credential == "" {
			p.setErr(ErrEmptyCredential)
			return
		}
		if _, err := p.student.Login(ctx, session.StudentCredential{IDToken: credential}); err != nil {
			p.log.Info("identity exchange failed", "err", err)
			p.setErr(err)
			return
		}
		p.setErr(nil)
		if onSuccess != nil {
			onSuccess()
		}
	})
	return p.widget.Render(p.container)
}

// Err returns the failure of the latest sign-in attempt, if any.
func (p *Prompter) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Message is the user-facing text for Err.
func (p *Prompter) Message() string {
	return academysdk.UserMessage(p.Err())
}

func (p *Prompter) setErr(err error) {
	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()
}
