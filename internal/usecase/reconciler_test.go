package usecase

import (
	"testing"

	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithSummary(s string) model.ResumeDraft {
	d := fullDraft()
	d.Summary = s
	return d
}

func TestReconcilerStartsInAutoWithoutStoredText(t *testing.T) {
	r := NewReconciler("Ada", "")

	st := r.State()
	assert.Equal(t, ModeAuto, st.Mode)
	assert.Equal(t, TabEdit, st.Tab)
	assert.Equal(t, "", st.Text)
}

func TestReconcilerOpensStoredTextInManual(t *testing.T) {
	r := NewReconciler("Ada", "# stored")

	st := r.State()
	assert.Equal(t, ModeManual, st.Mode)
	assert.Equal(t, "# stored", st.Text)
	assert.Equal(t, "# stored", r.Baseline())
}

func TestAutoModeFollowsDraft(t *testing.T) {
	r := NewReconciler("Ada", "")
	for _, s := range []string{"one", "two", "three"} {
		d := draftWithSummary(s)
		st := r.OnDraftChanged(d)
		assert.Equal(t, Assemble(d, "Ada"), st.Text)
		assert.False(t, st.Stale)
	}
}

func TestManualEditSurvivesDraftChanges(t *testing.T) {
	r := NewReconciler("Ada", "")
	r.OnDraftChanged(draftWithSummary("one"))
	r.OnModeToggle()
	r.OnManualEdit("my own text")

	st := r.OnDraftChanged(draftWithSummary("two"))

	assert.Equal(t, ModeManual, st.Mode)
	assert.Equal(t, "my own text", st.Text)
	assert.True(t, st.Stale)
	assert.Equal(t, "two", r.Draft().Summary)
}

func TestManualEditDoesNotChangeMode(t *testing.T) {
	r := NewReconciler("Ada", "")
	st := r.OnManualEdit("typed in auto")

	assert.Equal(t, ModeAuto, st.Mode)
	assert.Equal(t, "typed in auto", st.Text)
}

func TestToggleToManualSnapshotsText(t *testing.T) {
	r := NewReconciler("Ada", "")
	d := draftWithSummary("one")
	r.OnDraftChanged(d)

	st := r.OnModeToggle()

	assert.Equal(t, ModeManual, st.Mode)
	assert.Equal(t, Assemble(d, "Ada"), st.Text)
	assert.Equal(t, st.Text, r.Baseline())
	assert.False(t, r.PendingDiscard())
}

func TestToggleBackToAutoDiscardsManualText(t *testing.T) {
	r := NewReconciler("Ada", "")
	r.OnModeToggle()
	r.OnManualEdit("hand written")
	d := draftWithSummary("latest")
	r.OnDraftChanged(d)
	require.True(t, r.PendingDiscard())

	st := r.OnModeToggle()

	assert.Equal(t, ModeAuto, st.Mode)
	assert.Equal(t, Assemble(d, "Ada"), st.Text)
	assert.False(t, st.Stale)
	assert.Empty(t, r.Baseline())
	assert.NotContains(t, st.Text, "hand written")
}

func TestTabFocusNeverTouchesText(t *testing.T) {
	r := NewReconciler("Ada", "")
	r.OnModeToggle()
	r.OnManualEdit("manual")

	for _, tab := range []string{TabEdit, TabPreview, TabEdit} {
		st := r.OnTabFocus(tab)
		assert.Equal(t, "manual", st.Text)
		assert.Equal(t, ModeManual, st.Mode)
		assert.Equal(t, tab, st.Tab)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	events := []Event{
		DraftChanged{Draft: draftWithSummary("a")},
		ModeToggle{},
		ManualEdit{Text: "edited"},
		TabFocus{Tab: TabEdit},
		DraftChanged{Draft: draftWithSummary("b")},
		ModeToggle{},
		DraftChanged{Draft: draftWithSummary("c")},
		ModeToggle{},
		ManualEdit{Text: "final"},
	}
	run := func() DocumentState {
		r := NewReconciler("Ada", "")
		var st DocumentState
		for _, e := range events {
			st = r.Apply(e)
		}
		return st
	}

	first := run()
	assert.Equal(t, "final", first.Text)
	assert.Equal(t, first, run())
}

func TestTransitionDoesNotMutateInput(t *testing.T) {
	in := editorState{doc: DocumentState{Mode: ModeManual, Text: "x"}}
	out := transition(in, ModeToggle{}, "Ada")

	assert.Equal(t, ModeManual, in.doc.Mode)
	assert.Equal(t, "x", in.doc.Text)
	assert.Equal(t, ModeAuto, out.doc.Mode)
}

func TestModeMarshalJSON(t *testing.T) {
	b, err := ModeManual.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"manual"`, string(b))
}
