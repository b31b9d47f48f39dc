package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dekarrin/cfgkit/internal/cfg"
	"github.com/dekarrin/cfgkit/internal/cfg/cnf"
	"github.com/dekarrin/cfgkit/internal/cfgfile"
	"github.com/dekarrin/cfgkit/internal/cyk"
	"github.com/dekarrin/cfgkit/internal/pda"
	"github.com/dekarrin/cfgkit/server/result"
	"github.com/dekarrin/cfgkit/server/serr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleCreateGrammar backs POST /grammars: it parses the uploaded body with
// the requested surface format and hands back the id later routes reference.
func (s *Server) handleCreateGrammar(w http.ResponseWriter, r *http.Request) {
	var req CreateGrammarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.BadRequest(fmt.Sprintf("could not decode request body: %v", err)).WriteResponse(w)
		return
	}

	id, err := s.grammars.Put(req.Body, req.Format)
	if err != nil {
		result.BadRequest(err.Error()).WriteResponse(w)
		return
	}

	result.Created(CreateGrammarResponse{ID: id.String()}).
		WithHeader("Location", "/grammars/"+id.String()).
		WriteResponse(w)
}

// handleCNF backs POST /grammars/{id}/cnf, running the same five-phase
// normalization the CLI's "cnf" action runs.
func (s *Server) handleCNF(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGrammar(r)
	if err != nil {
		writeLookupErr(w, err)
		return
	}
	if _, ok := g.StartVariable(); !ok {
		result.BadRequest("grammar has no start variable").WriteResponse(w)
		return
	}

	final, trace := cnf.Normalize(g)

	traceOut := make([]string, len(trace))
	for i, snap := range trace {
		traceOut[i] = snap.Phase + "\n" + snap.Grammar.ToFormat(snap.Grammar.MinFormat())
	}

	resp := CNFResponse{
		Grammar: final.ToFormat(final.MinFormat()),
		Trace:   traceOut,
	}
	result.OK(resp).WriteResponse(w)
}

// handleCYK backs POST /grammars/{id}/cyk: it fills the CYK table for the
// given word and, when the word is accepted, reconstructs its parse tree.
func (s *Server) handleCYK(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGrammar(r)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	var req CYKRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		result.BadRequest(fmt.Sprintf("could not decode request body: %v", err)).WriteResponse(w)
		return
	}

	word, err := cfgfile.SpacedExclaimWordParser(req.Word)
	if err != nil {
		result.BadRequest(fmt.Sprintf("could not parse word: %v", err)).WriteResponse(w)
		return
	}

	table := cyk.Fill(g, word)
	resp := CYKResponse{Table: table.String()}

	if cyk.Accepts(table, g) {
		resp.Accepted = true
		tree := cyk.Witness(table, g)
		resp.Tree = tree.Show()
	}

	result.OK(resp).WriteResponse(w)
}

// handlePDA backs POST /grammars/{id}/pda.
func (s *Server) handlePDA(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGrammar(r)
	if err != nil {
		writeLookupErr(w, err)
		return
	}

	p, err := pda.Compile(g)
	if err != nil {
		result.BadRequest(err.Error()).WriteResponse(w)
		return
	}

	resp := PDAResponse{
		Transitions: p.String(),
		Table:       p.Table(),
	}
	result.OK(resp).WriteResponse(w)
}

// lookupGrammar resolves the {id} URL parameter against the store.
func (s *Server) lookupGrammar(r *http.Request) (*cfg.Grammar, error) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, serr.New("bad grammar id", serr.ErrBadArgument)
	}

	g, ok := s.grammars.Get(id)
	if !ok {
		return nil, serr.New("no such grammar", serr.ErrNotFound)
	}
	return g, nil
}

func writeLookupErr(w http.ResponseWriter, err error) {
	if errors.Is(err, serr.ErrNotFound) {
		result.NotFound(err.Error()).WriteResponse(w)
		return
	}
	result.BadRequest(err.Error()).WriteResponse(w)
}
