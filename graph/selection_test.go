package graph

import "testing"

func TestSelection_Transitions(t *testing.T) {
	var s Selection

	steps := []struct {
		name       string
		apply      func() SelectionState
		want       SelectionState
		transition string
	}{
		{"focus from unselected", func() SelectionState { return s.Focus("C") }, SelectionState{Selected: true, ID: "C"}, "selected"},
		{"focus another replaces", func() SelectionState { return s.Focus("A") }, SelectionState{Selected: true, ID: "A"}, "replaced"},
		{"focus same toggles off", func() SelectionState { return s.Focus("A") }, SelectionState{}, "cleared"},
		{"focus outside while unselected", func() SelectionState { return s.FocusOutside() }, SelectionState{}, "noop"},
		{"focus again", func() SelectionState { return s.Focus("D") }, SelectionState{Selected: true, ID: "D"}, "selected"},
		{"focus outside clears", func() SelectionState { return s.FocusOutside() }, SelectionState{}, "cleared"},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			prev := s.State()
			got := step.apply()
			if got != step.want {
				t.Errorf("state = %+v, want %+v", got, step.want)
			}
			if s.State() != got {
				t.Errorf("State() = %+v disagrees with returned %+v", s.State(), got)
			}
			if tr := transitionName(prev, got); tr != step.transition {
				t.Errorf("transition = %q, want %q", tr, step.transition)
			}
		})
	}
}

func TestSelection_DoubleFocusRestores(t *testing.T) {
	for _, start := range []SelectionState{{}, {Selected: true, ID: "B"}} {
		s := Selection{state: start}
		s.Focus("X")
		s.Focus("X")
		if s.State().Selected {
			t.Errorf("from %+v: focus(X) twice should leave nothing selected, got %+v", start, s.State())
		}
	}
}
