package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the optional stateless HTTP front end: an in-memory
// GrammarStore plus the chi router wired to it.
type Server struct {
	grammars *GrammarStore
	router   chi.Router
}

// New builds a Server with a fresh, empty GrammarStore and all routes
// registered.
func New() *Server {
	s := &Server{grammars: NewGrammarStore()}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/grammars", s.handleCreateGrammar)
	r.Post("/grammars/{id}/cnf", s.handleCNF)
	r.Post("/grammars/{id}/cyk", s.handleCYK)
	r.Post("/grammars/{id}/pda", s.handlePDA)

	s.router = r
	return s
}

// ServeHTTP makes Server usable directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
