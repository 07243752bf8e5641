// Package pager accumulates pages of matches for one client session.
package pager

import (
	"context"
	"errors"
	"sync"

	"github.com/maxviazov/buddyfinder-service/internal/model"
	"github.com/maxviazov/buddyfinder-service/internal/service"
	"github.com/rs/zerolog"
)

// Fetcher loads one window of matches, typically over HTTP.
type Fetcher interface {
	FetchMatches(ctx context.Context, w model.Window) (model.MatchesPage, error)
}

// ErrorKind classifies a failed initial fetch.
type ErrorKind string

const (
	ErrorNone       ErrorKind = ""
	ErrorNoLocation ErrorKind = "no_location"
	ErrorGeneric    ErrorKind = "generic"
)

// State is a snapshot of the pager.
type State struct {
	Items            []model.MatchedUser
	Pagination       *model.Pagination
	IsLoadingInitial bool
	IsLoadingMore    bool
	ErrKind          ErrorKind
	Err              error
	LoadMoreErr      error
}

// Pager owns the accumulated list. Every initial fetch takes a new generation token;
// responses carrying an older token are dropped, so the newest trigger always wins.
type Pager struct {
	fetcher  Fetcher
	pageSize int
	log      zerolog.Logger

	mu             sync.Mutex
	generation     uint64
	items          []model.MatchedUser
	pagination     *model.Pagination
	loadingInitial bool
	loadingMore    bool
	errKind        ErrorKind
	err            error
	loadMoreErr    error
}

func New(f Fetcher, pageSize int, logger zerolog.Logger) *Pager {
	if pageSize < 1 {
		pageSize = service.DefaultLimit
	}
	return &Pager{
		fetcher:  f,
		pageSize: pageSize,
		log:      logger.With().Str("module", "pager").Logger(),
	}
}

// FetchFirstPage (re)starts the session from offset 0 and replaces the list.
// A failure clears items and pagination and is returned as well as recorded.
func (p *Pager) FetchFirstPage(ctx context.Context) error {
	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.loadingInitial = true
	p.loadingMore = false
	w := model.Window{Limit: p.pageSize, Offset: 0}
	p.mu.Unlock()

	page, err := p.fetcher.FetchMatches(ctx, w)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.log.Debug().Uint64("generation", gen).Msg("discarding superseded initial page")
		return nil
	}
	p.loadingInitial = false
	p.loadMoreErr = nil
	if err != nil {
		p.items = nil
		p.pagination = nil
		p.err = err
		p.errKind = classify(err)
		return err
	}
	p.items = append(make([]model.MatchedUser, 0, len(page.Data)), page.Data...)
	pg := page.Pagination
	p.pagination = &pg
	p.err = nil
	p.errKind = ErrorNone
	return nil
}

// LoadMore appends the next window. It reports false without fetching when there is no
// pagination yet, a fetch is already running, or the next offset reaches the total.
// A failed fetch leaves the accumulated items untouched.
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.pagination == nil || p.loadingMore || p.loadingInitial {
		p.mu.Unlock()
		return false, nil
	}
	next := p.pagination.NextOffset()
	if next >= p.pagination.Total {
		p.mu.Unlock()
		return false, nil
	}
	p.loadingMore = true
	gen := p.generation
	w := model.Window{Limit: p.pagination.Limit, Offset: next}
	p.mu.Unlock()

	page, err := p.fetcher.FetchMatches(ctx, w)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		p.log.Debug().Int("offset", w.Offset).Msg("discarding page from a previous session")
		return false, nil
	}
	p.loadingMore = false
	if err != nil {
		p.loadMoreErr = err
		p.log.Error().Err(err).Int("offset", w.Offset).Int("limit", w.Limit).Msg("load more failed")
		return false, err
	}
	p.items = append(p.items, page.Data...)
	pg := page.Pagination
	p.pagination = &pg
	p.loadMoreErr = nil
	return true, nil
}

// HasNextPage is derived from the latest pagination window.
func (p *Pager) HasNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pagination != nil && p.pagination.HasNextPage()
}

// Items returns a copy of the accumulated records.
func (p *Pager) Items() []model.MatchedUser {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.MatchedUser(nil), p.items...)
}

func (p *Pager) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := State{
		Items:            append([]model.MatchedUser(nil), p.items...),
		IsLoadingInitial: p.loadingInitial,
		IsLoadingMore:    p.loadingMore,
		ErrKind:          p.errKind,
		Err:              p.err,
		LoadMoreErr:      p.loadMoreErr,
	}
	if p.pagination != nil {
		pg := *p.pagination
		s.Pagination = &pg
	}
	return s
}

// Reset returns the pager to idle and invalidates every in-flight request.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.items = nil
	p.pagination = nil
	p.loadingInitial = false
	p.loadingMore = false
	p.errKind = ErrorNone
	p.err = nil
	p.loadMoreErr = nil
}

func classify(err error) ErrorKind {
	if errors.Is(err, service.ErrIncompleteProfile) {
		return ErrorNoLocation
	}
	return ErrorGeneric
}
