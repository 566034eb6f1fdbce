package verification

import (
	"log/slog"
	"sync"

	"vetgate/internal/domain"
	domainerrors "vetgate/pkg/domain-errors"
)

// ErrBusy is returned when an operation is attempted while another is still
// in flight for the same case. Callers are expected to disable triggers, but
// the engine guards re-entrancy itself.
var ErrBusy = domainerrors.New(domainerrors.CodeBusy, "another operation is in flight for this case")

// CaseSession owns one verification case for the lifetime of a hosting view.
// The case is mutated exclusively through the controller; at most one
// operation may be in flight at a time, and results that settle after the
// session closes are discarded via the generation check.
type CaseSession struct {
	mu         sync.Mutex
	subjectID  string
	c          *domain.VerificationCase
	busy       bool
	generation uint64
	closed     bool

	orchestrator *Orchestrator
}

func newCaseSession(subjectID string, c *domain.VerificationCase) *CaseSession {
	return &CaseSession{subjectID: subjectID, c: c}
}

// SubjectID returns the subject this session reviews.
func (s *CaseSession) SubjectID() string {
	return s.subjectID
}

// Snapshot returns a copy of the current case for read-only consumers.
func (s *CaseSession) Snapshot() domain.VerificationCase {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.c
	cp.Documents = append([]domain.DocumentRecord(nil), s.c.Documents...)
	return cp
}

// begin acquires the in-flight slot and returns the generation tag the
// operation must present when applying its result.
func (s *CaseSession) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, domainerrors.New(domainerrors.CodeNotFound, "case view is closed")
	}
	if s.busy {
		return 0, ErrBusy
	}
	s.busy = true
	return s.generation, nil
}

// end releases the in-flight slot.
func (s *CaseSession) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// apply runs fn against the case if the session is still the one the
// operation started against. Returns false when the result is stale and was
// discarded.
func (s *CaseSession) apply(generation uint64, fn func(*domain.VerificationCase)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || generation != s.generation {
		return false
	}
	fn(s.c)
	return true
}

// replace swaps in a freshly mapped case under the same staleness rules.
func (s *CaseSession) replace(generation uint64, c *domain.VerificationCase) bool {
	return s.apply(generation, func(old *domain.VerificationCase) {
		*old = *c
	})
}

// Orchestrator returns the per-view action state machine, creating it on
// first use.
func (s *CaseSession) Orchestrator(controller *Controller, logger *slog.Logger) *Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orchestrator == nil {
		s.orchestrator = newOrchestrator(controller, s, logger)
	}
	return s.orchestrator
}

// Close tears the session down. Any in-flight operation's late result will
// fail the generation check and be discarded.
func (s *CaseSession) Close() {
	s.mu.Lock()
	s.closed = true
	s.generation++
	s.mu.Unlock()
}

// Sessions is the registry of live case sessions, one per hosting view.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*CaseSession
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]*CaseSession{}}
}

// Get returns the live session for a subject, if any.
func (r *Sessions) Get(subjectID string) (*CaseSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[subjectID]
	return s, ok
}

// GetOrCreate returns the live session for a subject, constructing the case
// via build on first use.
func (r *Sessions) GetOrCreate(subjectID string, build func() *domain.VerificationCase) *CaseSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byID[subjectID]; ok {
		return s
	}
	s := newCaseSession(subjectID, build())
	r.byID[subjectID] = s
	return s
}

// Close removes and closes the session for a subject, if present.
func (r *Sessions) Close(subjectID string) {
	r.mu.Lock()
	s, ok := r.byID[subjectID]
	delete(r.byID, subjectID)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}
