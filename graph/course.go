package graph

// CourseSpec is the static description of one course as it appears in the
// catalog: an id and the ids of its direct prerequisites in declared order.
type CourseSpec struct {
	ID            string   `json:"id" yaml:"id"`
	Prerequisites []string `json:"prerequisites" yaml:"prerequisites"`
}

// Course is a node in the curriculum graph.
//
// Prerequisites may reference ids that do not exist in the graph; such a
// reference can never be satisfied. Availability is derived from the
// completed-set and is never stored on the course.
type Course struct {
	ID            string
	Prerequisites []string
	Completed     bool
}

func (c Course) clone() Course {
	out := c
	if c.Prerequisites != nil {
		out.Prerequisites = append([]string(nil), c.Prerequisites...)
	}
	return out
}

// CourseGraph holds the courses of a curriculum and their prerequisite edges.
//
// The structure is fixed at construction. Only the completed flag of each
// course mutates, and only through ToggleCompleted and SetCompletedIDs.
// A reverse index from prerequisite id to dependents is built once so that
// dependent lookups do not scan the whole graph.
//
// CourseGraph is not safe for concurrent mutation. Tracker serialises access.
type CourseGraph struct {
	order      []string
	courses    map[string]*Course
	dependents map[string][]string
}

// NewCourseGraph builds a graph from the static course list.
//
// Input order is retained and used wherever ids are reported. An empty id or
// a repeated id is rejected with a *CurriculumError. Dangling, duplicate and
// self-referencing prerequisites are accepted; see Validate for diagnostics.
func NewCourseGraph(specs []CourseSpec) (*CourseGraph, error) {
	g := &CourseGraph{
		order:      make([]string, 0, len(specs)),
		courses:    make(map[string]*Course, len(specs)),
		dependents: make(map[string][]string),
	}

	for _, spec := range specs {
		if spec.ID == "" {
			return nil, &CurriculumError{
				Message: "course id cannot be empty",
				Code:    "EMPTY_COURSE_ID",
			}
		}
		if _, exists := g.courses[spec.ID]; exists {
			return nil, &CurriculumError{
				Message:  "duplicate course id",
				Code:     "DUPLICATE_COURSE",
				CourseID: spec.ID,
			}
		}

		var prereqs []string
		if len(spec.Prerequisites) > 0 {
			prereqs = append([]string(nil), spec.Prerequisites...)
		}
		g.courses[spec.ID] = &Course{ID: spec.ID, Prerequisites: prereqs}
		g.order = append(g.order, spec.ID)
	}

	// Walk in declaration order so each dependents list is ordered too.
	for _, id := range g.order {
		seen := make(map[string]bool, len(g.courses[id].Prerequisites))
		for _, p := range g.courses[id].Prerequisites {
			if seen[p] {
				continue
			}
			seen[p] = true
			g.dependents[p] = append(g.dependents[p], id)
		}
	}

	return g, nil
}

// Len returns the number of courses.
func (g *CourseGraph) Len() int {
	return len(g.order)
}

// Has reports whether id names a course in the graph.
func (g *CourseGraph) Has(id string) bool {
	_, ok := g.courses[id]
	return ok
}

// Course returns a copy of the course with the given id.
func (g *CourseGraph) Course(id string) (Course, bool) {
	c, ok := g.courses[id]
	if !ok {
		return Course{}, false
	}
	return c.clone(), true
}

// Courses returns copies of all courses in declaration order.
func (g *CourseGraph) Courses() []Course {
	out := make([]Course, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.courses[id].clone())
	}
	return out
}

// IsCompleted reports whether the course is completed. Unknown ids are not.
func (g *CourseGraph) IsCompleted(id string) bool {
	c, ok := g.courses[id]
	return ok && c.Completed
}

// ToggleCompleted flips the completed flag of one course and returns the new
// value. No other course changes. An unknown id leaves the graph untouched and
// returns ErrUnknownCourse.
func (g *CourseGraph) ToggleCompleted(id string) (bool, error) {
	c, ok := g.courses[id]
	if !ok {
		return false, ErrUnknownCourse
	}
	c.Completed = !c.Completed
	return c.Completed, nil
}

// CompletedIDs returns the ids of all completed courses in declaration order.
func (g *CourseGraph) CompletedIDs() []string {
	ids := make([]string, 0)
	for _, id := range g.order {
		if g.courses[id].Completed {
			ids = append(ids, id)
		}
	}
	return ids
}

// SetCompletedIDs replaces the completed-set. Every flag is cleared first,
// then each known id is marked completed. Unknown ids are ignored and their
// count is returned for diagnostics.
func (g *CourseGraph) SetCompletedIDs(ids []string) int {
	for _, c := range g.courses {
		c.Completed = false
	}

	ignored := 0
	for _, id := range ids {
		c, ok := g.courses[id]
		if !ok {
			ignored++
			continue
		}
		c.Completed = true
	}
	return ignored
}
