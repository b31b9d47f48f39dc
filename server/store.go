// Package server implements an optional stateless HTTP front end over the
// cfgkit core: a handful of JSON routes that run the same CNF/CYK/PDA
// operations the CLI runs, split across server.go/handlers.go/store.go
// (SPEC_FULL.md §11's cmd/cfgkitd supplement).
package server

import (
	"sync"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfgfile"
	"github.com/google/uuid"
)

// GrammarStore holds parsed grammars in memory, keyed by a uuid minted when
// the grammar is uploaded. There is no persistence across process restarts;
// this toolkit's HTTP front end is single-user and stateless per
// SPEC_FULL.md §11 ("no accounts or saved game state").
type GrammarStore struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*cfg.Grammar
}

// NewGrammarStore creates an empty GrammarStore.
func NewGrammarStore() *GrammarStore {
	return &GrammarStore{data: make(map[uuid.UUID]*cfg.Grammar)}
}

// Put parses body using the named format (spec.md §6's char/spaced/spaced!
// word parsers) and stores the resulting grammar under a freshly minted id.
func (s *GrammarStore) Put(body, format string) (uuid.UUID, error) {
	wordParser, err := cfgfile.ParserFor(format)
	if err != nil {
		return uuid.UUID{}, err
	}

	parseLines, _ := cfgfile.SplitLines(body)
	g, err := cfgfile.ParseGrammar(parseLines, wordParser)
	if err != nil {
		return uuid.UUID{}, err
	}

	id := uuid.New()
	s.mu.Lock()
	s.data[id] = g
	s.mu.Unlock()
	return id, nil
}

// Get retrieves the grammar stored under id.
func (s *GrammarStore) Get(id uuid.UUID) (*cfg.Grammar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.data[id]
	return g, ok
}
