package graph

import "sort"

// IDSet is an unordered set of course ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids in the set.
func (s IDSet) Len() int {
	return len(s)
}

// Sorted returns the ids in lexical order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same ids.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Relations are the direct neighbours of a focused course.
type Relations struct {
	// Focus is the id the relations were computed for.
	Focus string

	// Prerequisites that resolve to real courses, in declared order.
	Prerequisites []Course

	// Dependents that list Focus as a prerequisite, in declaration order.
	Dependents []Course
}

// IsAvailable reports whether a course may be taken: it is not completed and
// every one of its prerequisites resolves to a completed course. A course
// with no prerequisites is available until completed. A prerequisite id that
// names no course can never be satisfied.
func IsAvailable(g *CourseGraph, id string) bool {
	c, ok := g.courses[id]
	if !ok || c.Completed {
		return false
	}
	for _, p := range c.Prerequisites {
		pc, ok := g.courses[p]
		if !ok || !pc.Completed {
			return false
		}
	}
	return true
}

// ComputeAvailable returns the set of available courses. It is a pure
// function of the graph and its completed-set.
func ComputeAvailable(g *CourseGraph) IDSet {
	out := make(IDSet)
	for _, id := range g.order {
		if IsAvailable(g, id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// DirectPrerequisitesOf returns the courses listed as prerequisites of id.
// Unresolved ids are skipped and repeated ids are reported once, at their
// first position. An unknown id has no prerequisites.
func DirectPrerequisitesOf(g *CourseGraph, id string) []Course {
	c, ok := g.courses[id]
	if !ok {
		return nil
	}

	var out []Course
	seen := make(map[string]bool, len(c.Prerequisites))
	for _, p := range c.Prerequisites {
		if seen[p] {
			continue
		}
		seen[p] = true
		if pc, ok := g.courses[p]; ok {
			out = append(out, pc.clone())
		}
	}
	return out
}

// DirectDependentsOf returns every course that lists id as a prerequisite.
// id need not exist in the graph: dependents of a missing course are still
// reported, since they are exactly the courses it blocks.
func DirectDependentsOf(g *CourseGraph, id string) []Course {
	ids := g.dependents[id]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Course, 0, len(ids))
	for _, d := range ids {
		out = append(out, g.courses[d].clone())
	}
	return out
}

// FocusRelations computes both directions of direct relations for id.
func FocusRelations(g *CourseGraph, id string) Relations {
	return Relations{
		Focus:         id,
		Prerequisites: DirectPrerequisitesOf(g, id),
		Dependents:    DirectDependentsOf(g, id),
	}
}

// PrerequisiteIDs returns the ids of r.Prerequisites.
func (r Relations) PrerequisiteIDs() []string {
	return courseIDs(r.Prerequisites)
}

// DependentIDs returns the ids of r.Dependents.
func (r Relations) DependentIDs() []string {
	return courseIDs(r.Dependents)
}

func courseIDs(cs []Course) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
