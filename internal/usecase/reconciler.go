package usecase

import (
	"encoding/json"

	"github.com/IdiotCoffee/jobforge/internal/model"
)

// Mode says whether the document follows the draft or is under direct
// user control.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "auto"
}

func (m Mode) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// Tabs of the builder UI.
const (
	TabEdit    = "edit"
	TabPreview = "preview"
)

// DocumentState is the visible document plus the bookkeeping the UI needs.
// Stale is set when the draft changed while the document was frozen.
type DocumentState struct {
	Mode  Mode   `json:"mode"`
	Text  string `json:"text"`
	Stale bool   `json:"stale"`
	Tab   string `json:"tab"`
}

// Event is one input to the reconciler.
type Event interface{ event() }

type DraftChanged struct{ Draft model.ResumeDraft }
type ManualEdit struct{ Text string }
type ModeToggle struct{}
type TabFocus struct{ Tab string }

func (DraftChanged) event() {}
func (ManualEdit) event()   {}
func (ModeToggle) event()   {}
func (TabFocus) event()     {}

// editorState is everything the transition function reads and writes.
type editorState struct {
	doc      DocumentState
	draft    model.ResumeDraft
	baseline string
}

// transition is the single place where document state changes. It never
// mutates its input.
func transition(s editorState, e Event, author string) editorState {
	switch ev := e.(type) {
	case DraftChanged:
		s.draft = ev.Draft
		assembled := Assemble(ev.Draft, author)
		if s.doc.Mode == ModeAuto {
			s.doc.Text = assembled
		} else {
			s.doc.Stale = true
		}
	case ManualEdit:
		s.doc.Text = ev.Text
	case ModeToggle:
		if s.doc.Mode == ModeAuto {
			s.doc.Mode = ModeManual
			s.baseline = s.doc.Text
		} else {
			s.doc.Mode = ModeAuto
			s.doc.Text = Assemble(s.draft, author)
			s.doc.Stale = false
			s.baseline = ""
		}
	case TabFocus:
		// switching tabs never touches the text
		s.doc.Tab = ev.Tab
	}
	return s
}

// Reconciler keeps the visible document in sync with the draft. It is not
// safe for concurrent use; Session serialises access.
type Reconciler struct {
	author string
	state  editorState
}

// NewReconciler opens a reconciler. A previously stored document cannot be
// derived from an empty draft, so it opens frozen in manual mode; without
// one the reconciler starts in auto mode.
func NewReconciler(author, stored string) *Reconciler {
	r := &Reconciler{author: author}
	r.state.doc.Tab = TabEdit
	if stored != "" {
		r.state.doc.Mode = ModeManual
		r.state.doc.Text = stored
		r.state.doc.Tab = TabPreview
		r.state.baseline = stored
	} else {
		r.state.doc.Text = Assemble(r.state.draft, author)
	}
	return r
}

func (r *Reconciler) Apply(e Event) DocumentState {
	r.state = transition(r.state, e, r.author)
	return r.state.doc
}

func (r *Reconciler) OnDraftChanged(d model.ResumeDraft) DocumentState {
	return r.Apply(DraftChanged{Draft: d})
}

func (r *Reconciler) OnManualEdit(text string) DocumentState {
	return r.Apply(ManualEdit{Text: text})
}

func (r *Reconciler) OnModeToggle() DocumentState { return r.Apply(ModeToggle{}) }

func (r *Reconciler) OnTabFocus(tab string) DocumentState { return r.Apply(TabFocus{Tab: tab}) }

func (r *Reconciler) State() DocumentState { return r.state.doc }

func (r *Reconciler) Draft() model.ResumeDraft { return r.state.draft }

// Baseline is the text captured when manual mode was entered.
func (r *Reconciler) Baseline() string { return r.state.baseline }

// PendingDiscard reports whether toggling now would throw away text that
// cannot be rebuilt from the draft.
func (r *Reconciler) PendingDiscard() bool {
	if r.state.doc.Mode != ModeManual {
		return false
	}
	return r.state.doc.Text != Assemble(r.state.draft, r.author)
}
