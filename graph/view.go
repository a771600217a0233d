package graph

// View class names applied to a rendered course.
const (
	ClassCompleted             = "completed"
	ClassAvailable             = "available"
	ClassSelected              = "selected"
	ClassPrerequisiteHighlight = "prerequisite-highlight"
	ClassDependentHighlight    = "dependent-highlight"
)

// CourseView is the render state of one course at a point in time.
type CourseView struct {
	ID            string
	Prerequisites []string

	Completed bool
	Available bool
	Selected  bool

	// PrerequisiteHighlight marks a direct prerequisite of the selected course.
	PrerequisiteHighlight bool

	// DependentHighlight marks a direct dependent of the selected course.
	DependentHighlight bool
}

// Classes returns the view classes for v in a fixed order.
func (v CourseView) Classes() []string {
	var out []string
	if v.Completed {
		out = append(out, ClassCompleted)
	}
	if v.Available {
		out = append(out, ClassAvailable)
	}
	if v.Selected {
		out = append(out, ClassSelected)
	}
	if v.PrerequisiteHighlight {
		out = append(out, ClassPrerequisiteHighlight)
	}
	if v.DependentHighlight {
		out = append(out, ClassDependentHighlight)
	}
	return out
}

func buildSnapshot(g *CourseGraph, available IDSet, sel SelectionState) []CourseView {
	var prereqs, deps IDSet
	if sel.Selected {
		rel := FocusRelations(g, sel.ID)
		prereqs = NewIDSet(rel.PrerequisiteIDs()...)
		deps = NewIDSet(rel.DependentIDs()...)
	}

	views := make([]CourseView, 0, g.Len())
	for _, id := range g.order {
		c := g.courses[id]
		views = append(views, CourseView{
			ID:                    id,
			Prerequisites:         append([]string(nil), c.Prerequisites...),
			Completed:             c.Completed,
			Available:             available.Has(id),
			Selected:              sel.Selected && sel.ID == id,
			PrerequisiteHighlight: prereqs.Has(id),
			DependentHighlight:    deps.Has(id),
		})
	}
	return views
}
