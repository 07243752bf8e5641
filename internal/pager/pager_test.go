package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backingFetcher serves windows over a fixed list of total records.
type backingFetcher struct {
	mu      sync.Mutex
	total   int
	windows []model.Window
	failAt  map[int]error
}

func (f *backingFetcher) FetchMatches(_ context.Context, w model.Window) (model.MatchesPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows = append(f.windows, w)
	if err := f.failAt[w.Offset]; err != nil {
		return model.MatchesPage{}, err
	}
	data := []model.MatchedUser{}
	for i := w.Offset; i < w.Offset+w.Limit && i < f.total; i++ {
		data = append(data, model.MatchedUser{ID: fmt.Sprintf("u%d", i)})
	}
	return model.MatchesPage{Data: data, Pagination: model.Pagination{Total: f.total, Limit: w.Limit, Offset: w.Offset}}, nil
}

func (f *backingFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.windows)
}

func discard() zerolog.Logger { return zerolog.New(io.Discard) }

func ids(items []model.MatchedUser) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFetchFirstPage_SmallResult(t *testing.T) {
	f := &backingFetcher{total: 3}
	p := New(f, 20, discard())

	require.NoError(t, p.FetchFirstPage(context.Background()))
	assert.Equal(t, []string{"u0", "u1", "u2"}, ids(p.Items()))
	assert.False(t, p.HasNextPage())
	assert.Equal(t, model.Window{Limit: 20, Offset: 0}, f.windows[0])

	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, 1, f.calls())
}

func TestLoadMore_AppendsInOrder(t *testing.T) {
	f := &backingFetcher{total: 10}
	p := New(f, 1, discard())

	require.NoError(t, p.FetchFirstPage(context.Background()))
	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	require.True(t, loaded)

	assert.Equal(t, []string{"u0", "u1"}, ids(p.Items()))
	require.Len(t, f.windows, 2)
	assert.Equal(t, f.windows[0].Offset+f.windows[0].Limit, f.windows[1].Offset)
	assert.True(t, p.HasNextPage())
}

func TestLoadMore_NoPaginationIsNoop(t *testing.T) {
	f := &backingFetcher{total: 10}
	p := New(f, 5, discard())

	loaded, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Zero(t, f.calls())
}

func TestLoadMore_StopsAtTotal(t *testing.T) {
	f := &backingFetcher{total: 4}
	p := New(f, 2, discard())
	ctx := context.Background()

	require.NoError(t, p.FetchFirstPage(ctx))
	loaded, _ := p.LoadMore(ctx)
	require.True(t, loaded)
	assert.False(t, p.HasNextPage())

	loaded, err := p.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, 2, f.calls())
}

func TestLoadMore_FailureKeepsItems(t *testing.T) {
	boom := errors.New("network down")
	f := &backingFetcher{total: 10, failAt: map[int]error{2: boom}}
	p := New(f, 2, discard())
	ctx := context.Background()

	require.NoError(t, p.FetchFirstPage(ctx))
	before := p.Items()

	loaded, err := p.LoadMore(ctx)
	assert.False(t, loaded)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, p.Items())

	st := p.State()
	assert.ErrorIs(t, st.LoadMoreErr, boom)
	assert.Equal(t, ErrorNone, st.ErrKind)
	assert.False(t, st.IsLoadingMore)

	// manual retry goes to the same offset
	delete(f.failAt, 2)
	loaded, err = p.LoadMore(ctx)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []string{"u0", "u1", "u2", "u3"}, ids(p.Items()))
}

func TestFetchFirstPage_Errors(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{service.ErrIncompleteProfile, ErrorNoLocation},
		{fmt.Errorf("wrapped: %w", service.ErrIncompleteProfile), ErrorNoLocation},
		{errors.New("boom"), ErrorGeneric},
	}
	for _, tc := range cases {
		f := &backingFetcher{total: 5}
		p := New(f, 2, discard())
		require.NoError(t, p.FetchFirstPage(context.Background()))
		require.NotEmpty(t, p.Items())

		f.failAt = map[int]error{0: tc.err}
		err := p.FetchFirstPage(context.Background())
		assert.ErrorIs(t, err, tc.err)

		st := p.State()
		assert.Equal(t, tc.kind, st.ErrKind)
		assert.Empty(t, st.Items)
		assert.Nil(t, st.Pagination)

		loaded, _ := p.LoadMore(context.Background())
		assert.False(t, loaded)
	}
}

// gatedFetcher blocks each call until the test answers it.
type gatedFetcher struct {
	calls chan call
}

type call struct {
	w       model.Window
	release chan result
}

type result struct {
	page model.MatchesPage
	err  error
}

func newGated() *gatedFetcher { return &gatedFetcher{calls: make(chan call)} }

func (g *gatedFetcher) FetchMatches(_ context.Context, w model.Window) (model.MatchesPage, error) {
	c := call{w: w, release: make(chan result)}
	g.calls <- c
	r := <-c.release
	return r.page, r.err
}

func pageOf(total, offset int, idList ...string) result {
	data := make([]model.MatchedUser, len(idList))
	for i, id := range idList {
		data[i] = model.MatchedUser{ID: id}
	}
	return result{page: model.MatchesPage{Data: data, Pagination: model.Pagination{Total: total, Limit: len(idList), Offset: offset}}}
}

func TestFetchFirstPage_StaleResponseDiscarded(t *testing.T) {
	g := newGated()
	p := New(g, 1, discard())
	ctx := context.Background()

	firstDone := make(chan error)
	go func() { firstDone <- p.FetchFirstPage(ctx) }()
	first := <-g.calls

	secondDone := make(chan error)
	go func() { secondDone <- p.FetchFirstPage(ctx) }()
	second := <-g.calls

	// newer request resolves first, older one afterwards
	second.release <- pageOf(1, 0, "new")
	require.NoError(t, <-secondDone)
	first.release <- pageOf(1, 0, "old")
	require.NoError(t, <-firstDone)

	assert.Equal(t, []string{"new"}, ids(p.Items()))
	assert.False(t, p.State().IsLoadingInitial)
}

func TestLoadMore_InFlightGuardAndStaleAfterRestart(t *testing.T) {
	g := newGated()
	p := New(g, 1, discard())
	ctx := context.Background()

	initDone := make(chan error)
	go func() { initDone <- p.FetchFirstPage(ctx) }()
	(<-g.calls).release <- pageOf(5, 0, "a")
	require.NoError(t, <-initDone)

	moreDone := make(chan bool)
	go func() {
		loaded, _ := p.LoadMore(ctx)
		moreDone <- loaded
	}()
	more := <-g.calls
	assert.Equal(t, 1, more.w.Offset)
	assert.True(t, p.State().IsLoadingMore)

	// a second load-more while one is running does nothing
	loaded, err := p.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, loaded)

	// restart while the load-more is still pending
	restartDone := make(chan error)
	go func() { restartDone <- p.FetchFirstPage(ctx) }()
	(<-g.calls).release <- pageOf(5, 0, "fresh")
	require.NoError(t, <-restartDone)

	more.release <- pageOf(5, 1, "b")
	assert.False(t, <-moreDone)
	assert.Equal(t, []string{"fresh"}, ids(p.Items()))
}

func TestReset(t *testing.T) {
	f := &backingFetcher{total: 3}
	p := New(f, 2, discard())
	require.NoError(t, p.FetchFirstPage(context.Background()))

	p.Reset()
	st := p.State()
	assert.Empty(t, st.Items)
	assert.Nil(t, st.Pagination)
	assert.False(t, p.HasNextPage())
}

func TestNew_DefaultPageSize(t *testing.T) {
	f := &backingFetcher{total: 100}
	p := New(f, 0, discard())
	require.NoError(t, p.FetchFirstPage(context.Background()))
	assert.Equal(t, service.DefaultLimit, f.windows[0].Limit)
}
