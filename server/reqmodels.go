package server

// CreateGrammarRequest is the body of POST /grammars: a grammar written in
// one of spec.md §6's three rule-line surface syntaxes.
type CreateGrammarRequest struct {
	Format string `json:"format"`
	Body   string `json:"body"`
}

// CreateGrammarResponse names the id a later route must reference.
type CreateGrammarResponse struct {
	ID string `json:"id"`
}

// CNFResponse is the body of POST /grammars/{id}/cnf: the final grammar in
// its own minimal format, plus the per-phase trace spec.md §6 names as the
// `_cnf_process.txt` file.
type CNFResponse struct {
	Grammar string   `json:"grammar"`
	Trace   []string `json:"trace"`
}

// CYKRequest is the body of POST /grammars/{id}/cyk: the candidate word,
// written in the "spaced!" surface syntax (cfgfile.SpacedExclaimWordParser).
type CYKRequest struct {
	Word string `json:"word"`
}

// CYKResponse is the body of POST /grammars/{id}/cyk.
type CYKResponse struct {
	Accepted bool   `json:"accepted"`
	Table    string `json:"table"`
	Tree     string `json:"tree,omitempty"`
}

// PDAResponse is the body of POST /grammars/{id}/pda.
type PDAResponse struct {
	Transitions string `json:"transitions"`
	Table       string `json:"table"`
}
