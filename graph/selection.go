package graph

// SelectionState is the state of the focus state machine.
type SelectionState struct {
	// Selected is false in the Unselected state.
	Selected bool

	// ID is the focused course when Selected is true.
	ID string
}

// Selection tracks which course, if any, is focused.
//
// Transitions:
//
//	Unselected   --Focus(id)-->    Selected(id)
//	Selected(id) --Focus(id)-->    Unselected
//	Selected(id) --Focus(other)--> Selected(other)
//	Selected(_)  --FocusOutside--> Unselected
//
// Selection is independent of completion: toggling a course never changes
// the focus. The zero value is Unselected.
type Selection struct {
	state SelectionState
}

// Focus applies a focus event for id and returns the resulting state.
// Focusing the selected course again clears the selection. Focusing a
// different course replaces it directly.
func (s *Selection) Focus(id string) SelectionState {
	if s.state.Selected && s.state.ID == id {
		s.state = SelectionState{}
	} else {
		s.state = SelectionState{Selected: true, ID: id}
	}
	return s.state
}

// FocusOutside clears the selection.
func (s *Selection) FocusOutside() SelectionState {
	s.state = SelectionState{}
	return s.state
}

// State returns the current state.
func (s *Selection) State() SelectionState {
	return s.state
}

// transitionName labels a focus transition for metrics and events.
func transitionName(prev, next SelectionState) string {
	switch {
	case !next.Selected && prev.Selected:
		return "cleared"
	case !next.Selected:
		return "noop"
	case !prev.Selected:
		return "selected"
	default:
		return "replaced"
	}
}
