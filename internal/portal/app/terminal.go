package app

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// RouteKind is a view the portal can move to.
type RouteKind int

const (
	RouteCourse RouteKind = iota
	RoutePlayer
	RoutePayment
)

func (k RouteKind) String() string {
	switch k {
	case RoutePlayer:
		return "player"
	case RoutePayment:
		return "payment"
	default:
		return "course"
	}
}

// Route is a navigation request raised by a component.
type Route struct {
	Kind     RouteKind
	CourseID string
}

// Terminal queues navigation requests from the gate, checkout and player
// so the command loop can act on them in order. It implements
// enrollment.Navigator, enrollment.PaymentOpener and player.Redirector.
type Terminal struct {
	out io.Writer

	mu     sync.Mutex
	routes []Route
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) OpenPlayer(courseID string)       { t.push(RoutePlayer, courseID) }
func (t *Terminal) OpenPayment(courseID string)      { t.push(RoutePayment, courseID) }
func (t *Terminal) RedirectToCourse(courseID string) { t.push(RouteCourse, courseID) }

func (t *Terminal) push(kind RouteKind, courseID string) {
	t.mu.Lock()
	t.routes = append(t.routes, Route{Kind: kind, CourseID: courseID})
	t.mu.Unlock()
	fmt.Fprintf(t.out, "-> %s %s\n", kind, courseID)
}

// Next pops the oldest pending route.
func (t *Terminal) Next() (Route, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.routes) == 0 {
		return Route{}, false
	}
	r := t.routes[0]
	t.routes = t.routes[1:]
	return r, true
}

func trimLine(s string) string {
	return strings.TrimSpace(s)
}
