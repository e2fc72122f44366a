// Package session holds the mutable application state for one analysis
// session: the parsed dataset, the confirmed brand terms, the business
// context and the setup-completion flag. The analysis engine itself never
// touches this; the HTTP shell reads a snapshot and passes explicit
// arguments down.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MarcinG1922/gsc-analyzer/analysis"
	"github.com/MarcinG1922/gsc-analyzer/gsc"
)

// Session is safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	data       *gsc.ParsedData
	brandTerms []string
	business   analysis.BusinessContext
	setupDone  bool
}

// New creates an empty session with the given default business context.
func New(business analysis.BusinessContext) *Session {
	return &Session{business: business}
}

// SetData replaces the parsed dataset and resets brand classification
// state, since confirmed terms belong to the previous upload.
func (s *Session) SetData(data *gsc.ParsedData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.brandTerms = nil
	s.setupDone = false
}

// Data returns the current dataset, or nil before any upload.
func (s *Session) Data() *gsc.ParsedData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// ConfirmBrandTerms stores the user-confirmed term list and stamps every
// query row with its brand flag, in place of the unclassified rows. This
// is the only write to row identity anywhere; the stamped rows are copies.
func (s *Session) ConfirmBrandTerms(terms []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brandTerms = append([]string{}, terms...)
	if s.data != nil {
		s.data.Queries = analysis.StampBrandTerms(s.data.Queries, s.brandTerms)
	}
	s.setupDone = true
}

// BrandTerms returns a copy of the confirmed term list.
func (s *Session) BrandTerms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.brandTerms...)
}

// SetBusinessContext replaces the business context.
func (s *Session) SetBusinessContext(ctx analysis.BusinessContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.business = ctx
}

// BusinessContext returns the current business context.
func (s *Session) BusinessContext() analysis.BusinessContext {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.business
}

// SetupComplete reports whether data is loaded and brand terms confirmed.
func (s *Session) SetupComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setupDone && s.data != nil
}

// Reset clears everything except the business context.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.brandTerms = nil
	s.setupDone = false
}

// NewRunID mints the identifier attached to one analysis invocation, for
// logs and response envelopes.
func NewRunID() string {
	return uuid.NewString()
}
