package usecase

import (
	"sync"

	"github.com/IdiotCoffee/jobforge/internal/model"
)

// Action is a kind of external call a session can have in flight.
type Action string

const (
	ActionSave    Action = "save"
	ActionImprove Action = "improve"
	ActionExport  Action = "export"
)

// SessionView is what a client sees of an editing session.
type SessionView struct {
	Document       DocumentState     `json:"document"`
	Draft          model.ResumeDraft `json:"draft"`
	PendingDiscard bool              `json:"pendingDiscard"`
}

// Session is one user's open editor. Events are applied one at a time in
// arrival order; external calls never hold the event lock.
type Session struct {
	mu  sync.Mutex
	rec *Reconciler

	flightMu sync.Mutex
	inFlight map[Action]bool
}

func newSession(author, stored string) *Session {
	return &Session{
		rec:      NewReconciler(author, stored),
		inFlight: map[Action]bool{},
	}
}

// begin marks a as in flight. The returned func releases it.
func (s *Session) begin(a Action) (func(), error) {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	if s.inFlight[a] {
		return nil, ErrInFlight
	}
	s.inFlight[a] = true
	return func() {
		s.flightMu.Lock()
		delete(s.inFlight, a)
		s.flightMu.Unlock()
	}, nil
}

// Busy reports whether a is currently in flight.
func (s *Session) Busy(a Action) bool {
	s.flightMu.Lock()
	defer s.flightMu.Unlock()
	return s.inFlight[a]
}

func (s *Session) viewLocked() SessionView {
	return SessionView{
		Document:       s.rec.State(),
		Draft:          s.rec.Draft().Clone(),
		PendingDiscard: s.rec.PendingDiscard(),
	}
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) Apply(e Event) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Apply(e)
	return s.viewLocked()
}

// Toggle flips the mode. Leaving manual mode with edits that the draft
// cannot reproduce requires confirm.
func (s *Session) Toggle(confirm bool) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rec.PendingDiscard() && !confirm {
		return s.viewLocked(), ErrConfirmDiscard
	}
	s.rec.OnModeToggle()
	return s.viewLocked(), nil
}

// update applies fn to the current draft and feeds the result back as a
// DraftChanged event. Nothing changes when fn fails.
func (s *Session) update(fn func(model.ResumeDraft) (model.ResumeDraft, error)) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.rec.Draft())
	if err != nil {
		return s.viewLocked(), err
	}
	s.rec.OnDraftChanged(next)
	return s.viewLocked(), nil
}

// Text returns the visible document.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.State().Text
}

// Sessions holds the open session of every user.
type Sessions struct {
	mu    sync.Mutex
	byKey map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{byKey: map[string]*Session{}}
}

// Open returns the user's session, creating it from the stored document when
// none is open yet. The bool reports whether a new session was created.
func (r *Sessions) Open(key, author, stored string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byKey[key]; ok {
		return s, false
	}
	s := newSession(author, stored)
	r.byKey[key] = s
	return s, true
}

func (r *Sessions) Get(key string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byKey[key]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

func (r *Sessions) Close(key string) {
	r.mu.Lock()
	delete(r.byKey, key)
	r.mu.Unlock()
}
