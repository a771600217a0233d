package graph

import (
	"fmt"
	"strings"
)

// IssueKind classifies a structural problem in a curriculum.
type IssueKind string

const (
	// IssueDangling is a prerequisite id that names no course.
	IssueDangling IssueKind = "dangling_prerequisite"

	// IssueSelfReference is a course listing itself as a prerequisite.
	IssueSelfReference IssueKind = "self_reference"

	// IssueDuplicate is a prerequisite listed more than once by one course.
	IssueDuplicate IssueKind = "duplicate_prerequisite"

	// IssueCycle is a chain of prerequisites leading back to its start.
	IssueCycle IssueKind = "cycle"
)

// Issue is one diagnostic reported by Validate.
type Issue struct {
	Kind     IssueKind
	CourseID string

	// Prerequisite is the offending id for dangling, self and duplicate
	// issues.
	Prerequisite string

	// Path lists the cycle members for IssueCycle, starting and ending with
	// the same id.
	Path []string
}

func (i Issue) String() string {
	if i.Kind == IssueCycle {
		return fmt.Sprintf("%s: %s", i.Kind, strings.Join(i.Path, " -> "))
	}
	return fmt.Sprintf("%s: course %s prerequisite %s", i.Kind, i.CourseID, i.Prerequisite)
}

// Validate reports structural issues without rejecting the graph. Each of
// them makes some course permanently unavailable: a dangling or
// self-referencing prerequisite can never be satisfied, and neither can any
// course on a cycle. Issues are reported in declaration order.
func Validate(g *CourseGraph) []Issue {
	var issues []Issue

	for _, id := range g.order {
		seen := make(map[string]bool)
		for _, p := range g.courses[id].Prerequisites {
			switch {
			case seen[p]:
				issues = append(issues, Issue{Kind: IssueDuplicate, CourseID: id, Prerequisite: p})
				continue
			case p == id:
				issues = append(issues, Issue{Kind: IssueSelfReference, CourseID: id, Prerequisite: p})
			case !g.Has(p):
				issues = append(issues, Issue{Kind: IssueDangling, CourseID: id, Prerequisite: p})
			}
			seen[p] = true
		}
	}

	return append(issues, findCycles(g)...)
}

const (
	unvisited = iota
	onStack
	done
)

// findCycles walks prerequisite edges depth-first and reports each back edge
// as one cycle. Self-loops are left to the self_reference check.
func findCycles(g *CourseGraph) []Issue {
	var issues []Issue
	state := make(map[string]int, g.Len())
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		state[id] = onStack
		stack = append(stack, id)

		seen := make(map[string]bool)
		for _, p := range g.courses[id].Prerequisites {
			if p == id || seen[p] || !g.Has(p) {
				continue
			}
			seen[p] = true

			switch state[p] {
			case unvisited:
				visit(p)
			case onStack:
				start := len(stack) - 1
				for stack[start] != p {
					start--
				}
				path := append([]string(nil), stack[start:]...)
				path = append(path, p)
				issues = append(issues, Issue{Kind: IssueCycle, CourseID: p, Path: path})
			}
		}

		stack = stack[:len(stack)-1]
		state[id] = done
	}

	for _, id := range g.order {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return issues
}
