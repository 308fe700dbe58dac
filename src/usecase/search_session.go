package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"go.uber.org/zap"
)

var ErrSuperseded = errors.New("search superseded by a newer query")

// SearchSession owns the displayed search results. Every Submit cancels
// the search still in flight, and only the latest submission may replace
// the results.
type SearchSession struct {
	search *SearchPokemon
	sugar  *zap.SugaredLogger

	mu       sync.Mutex
	sequence uint64
	cancel   context.CancelFunc
	query    string
	results  []pokemon.Summary
}

func NewSearchSession(search *SearchPokemon, sugar *zap.SugaredLogger) *SearchSession {
	return &SearchSession{
		search:  search,
		sugar:   sugar,
		results: []pokemon.Summary{},
	}
}

// PendingSearch is a submission whose place in the session is already
// reserved. Wait runs the search and commits its results unless a later
// submission arrived first.
type PendingSearch struct {
	session  *SearchSession
	ctx      context.Context
	cancel   context.CancelFunc
	sequence uint64
	query    string
	blank    bool
}

// Begin cancels the search in flight and reserves the next place for
// query. Calls to Begin order the submissions; Wait may run on any
// goroutine afterwards and must be called exactly once.
func (s *SearchSession) Begin(ctx context.Context, query string) *PendingSearch {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.sequence++
	s.cancel = cancel
	s.query = query
	pending := &PendingSearch{
		session:  s,
		ctx:      ctx,
		cancel:   cancel,
		sequence: s.sequence,
		query:    query,
	}
	if strings.TrimSpace(query) == "" {
		s.results = []pokemon.Summary{}
		s.cancel = nil
		pending.blank = true
	}
	return pending
}

func (p *PendingSearch) Wait() error {
	defer p.cancel()
	if p.blank {
		return nil
	}
	s := p.session
	results, err := s.search.Execute(p.ctx, p.query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.sequence != s.sequence {
		s.sugar.Debugf("Discarding stale search results for %q", p.query)
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		if ctxErr := p.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.sugar.Errorf("Search for %q failed: %s", p.query, err)
		s.results = []pokemon.Summary{}
		return err
	}
	s.results = results
	return nil
}

func (s *SearchSession) Submit(ctx context.Context, query string) error {
	return s.Begin(ctx, query).Wait()
}

// Cancel aborts the search in flight, leaving the current results intact.
func (s *SearchSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.sequence++
}

func (s *SearchSession) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *SearchSession) Results() []pokemon.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]pokemon.Summary, len(s.results))
	copy(results, s.results)
	return results
}
