package player_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prestige-strategies/academy/internal/portal/player"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
)

type fakeLearning struct {
	enrolled  bool
	checkErr  error
	modules   []academysdk.Module
	completed []string
	markErr   error

	mu        sync.Mutex
	marked    []string
	listCalls atomic.Int32
}

func (f *fakeLearning) CheckEnrollment(context.Context, string) (bool, error) {
	return f.enrolled, f.checkErr
}

func (f *fakeLearning) ListModules(context.Context, string) ([]academysdk.Module, error) {
	f.listCalls.Add(1)
	return f.modules, nil
}

func (f *fakeLearning) GetProgress(context.Context, string) ([]string, error) {
	return f.completed, nil
}

func (f *fakeLearning) MarkModuleComplete(_ context.Context, moduleID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.mu.Lock()
	f.marked = append(f.marked, moduleID)
	f.mu.Unlock()
	return nil
}

type redirects struct{ courses []string }

func (r *redirects) RedirectToCourse(courseID string) { r.courses = append(r.courses, courseID) }

// abc returns modules A, B, C deliberately out of order.
func abc() []academysdk.Module {
	return []academysdk.Module{
		{ID: "C", Title: "Offers", OrderIndex: 2},
		{ID: "A", Title: "Sourcing", OrderIndex: 0},
		{ID: "B", Title: "Interviews", OrderIndex: 1},
	}
}

func ids(ms []academysdk.Module) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestLoadOrdersAndMerges(t *testing.T) {
	t.Parallel()

	p := player.New("c1", &fakeLearning{enrolled: true, modules: abc(), completed: []string{"B"}}, &redirects{}, nil)
	require.NoError(t, p.Load(context.Background()))

	ms := p.Modules()
	require.Equal(t, []string{"A", "B", "C"}, ids(ms))
	require.Equal(t, []bool{false, true, false}, []bool{ms[0].Completed, ms[1].Completed, ms[2].Completed})
	require.Equal(t, 33, p.Progress())

	cur, idx, ok := p.Current()
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.Equal(t, "A", cur.ID)
}

func TestMarkCompleteAdvancesAndRecomputes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	learning := &fakeLearning{enrolled: true, modules: abc(), completed: []string{"B"}}
	p := player.New("c1", learning, &redirects{}, nil)
	require.NoError(t, p.Load(ctx))

	require.NoError(t, p.MarkCurrentComplete(ctx))
	require.Equal(t, []string{"A"}, learning.marked)
	require.Equal(t, 67, p.Progress())

	cur, idx, _ := p.Current()
	require.Equal(t, 1, idx)
	require.Equal(t, "B", cur.ID)

	// B is already complete: no call, no move.
	require.NoError(t, p.MarkCurrentComplete(ctx))
	require.Equal(t, []string{"A"}, learning.marked)
	_, idx, _ = p.Current()
	require.Equal(t, 1, idx)

	require.NoError(t, p.Select(2))
	require.NoError(t, p.MarkCurrentComplete(ctx))
	require.Equal(t, 100, p.Progress())
	_, idx, _ = p.Current()
	require.Equal(t, 2, idx, "last module stays selected")
}

func TestCursorStartsAtFirstIncomplete(t *testing.T) {
	t.Parallel()

	p := player.New("c1", &fakeLearning{enrolled: true, modules: abc(), completed: []string{"A", "B"}}, &redirects{}, nil)
	require.NoError(t, p.Load(context.Background()))
	_, idx, _ := p.Current()
	require.Equal(t, 2, idx)

	all := player.New("c1", &fakeLearning{enrolled: true, modules: abc(), completed: []string{"A", "B", "C"}}, &redirects{}, nil)
	require.NoError(t, all.Load(context.Background()))
	_, idx, _ = all.Current()
	require.Equal(t, 0, idx)
	require.Equal(t, 100, all.Progress())
}

func TestMarkFailureLeavesState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	learning := &fakeLearning{enrolled: true, modules: abc()}
	p := player.New("c1", learning, &redirects{}, nil)
	require.NoError(t, p.Load(ctx))

	learning.markErr = &academysdk.ServerError{StatusCode: 500, Message: "Failed to save progress"}
	err := p.MarkCurrentComplete(ctx)
	require.Equal(t, "Failed to save progress", academysdk.UserMessage(err))
	require.Equal(t, 0, p.Progress())
	_, idx, _ := p.Current()
	require.Equal(t, 0, idx)
}

func TestLoadNotEnrolledRedirects(t *testing.T) {
	t.Parallel()

	r := &redirects{}
	learning := &fakeLearning{modules: abc()}
	p := player.New("c1", learning, r, nil)

	require.ErrorIs(t, p.Load(context.Background()), player.ErrNotEnrolled)
	require.Equal(t, []string{"c1"}, r.courses)
	require.Zero(t, learning.listCalls.Load())
	require.Empty(t, p.Modules())
}

func TestLoadCheckFailureDoesNotRedirect(t *testing.T) {
	t.Parallel()

	r := &redirects{}
	p := player.New("c1", &fakeLearning{checkErr: errors.New("offline")}, r, nil)

	err := p.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, player.ErrNotEnrolled)
	require.Empty(t, r.courses)
}

func TestEmptyCourse(t *testing.T) {
	t.Parallel()

	p := player.New("c1", &fakeLearning{enrolled: true}, &redirects{}, nil)
	require.NoError(t, p.Load(context.Background()))

	require.Equal(t, 0, p.Progress())
	_, _, ok := p.Current()
	require.False(t, ok)
	require.ErrorIs(t, p.MarkCurrentComplete(context.Background()), player.ErrNoModules)
	require.ErrorIs(t, p.Select(0), player.ErrIndexOutOfRange)
}

func TestSelectBounds(t *testing.T) {
	t.Parallel()

	p := player.New("c1", &fakeLearning{enrolled: true, modules: abc()}, &redirects{}, nil)
	require.NoError(t, p.Load(context.Background()))

	require.NoError(t, p.Select(2))
	require.ErrorIs(t, p.Select(3), player.ErrIndexOutOfRange)
	require.ErrorIs(t, p.Select(-1), player.ErrIndexOutOfRange)
	_, idx, _ := p.Current()
	require.Equal(t, 2, idx)
}

func TestDisposeDropsLoad(t *testing.T) {
	t.Parallel()

	p := player.New("c1", &fakeLearning{enrolled: true, modules: abc()}, &redirects{}, nil)
	p.Dispose()
	require.ErrorIs(t, p.Load(context.Background()), player.ErrDisposed)
	require.Empty(t, p.Modules())
}
