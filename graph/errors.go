// Package graph provides the curriculum dependency-graph state engine.
package graph

import "errors"

// ErrUnknownCourse indicates that a course id does not resolve to any course
// in the graph. Mutators leave state untouched and report it; queries treat
// the id as having no relations.
var ErrUnknownCourse = errors.New("unknown course")

// ErrCorruptState indicates that the persisted completed-set could not be
// decoded. The tracker recovers by starting from an empty set, so this error
// is only ever observed in event metadata and wrapped causes.
var ErrCorruptState = errors.New("corrupt persisted state")

// CurriculumError is a structured error carrying a machine-readable code.
//
// Codes used by this package:
//   - EMPTY_COURSE_ID: a course in the static input has an empty id
//   - DUPLICATE_COURSE: two courses share an id
//   - UNKNOWN_COURSE: an operation referenced an id not in the graph
//   - INVALID_OPTION: a functional option rejected its argument
//   - PERSIST_FAILED: the completed-set could not be written to the store
//   - LOAD_FAILED: the completed-set could not be read from the store
type CurriculumError struct {
	// Message is the human-readable error description.
	Message string

	// Code is a machine-readable error code for programmatic handling.
	Code string

	// CourseID identifies the course involved, if any.
	CourseID string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *CurriculumError) Error() string {
	msg := e.Message
	if e.CourseID != "" {
		msg = "course " + e.CourseID + ": " + msg
	}
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause so errors.Is and errors.As see through
// the structured wrapper.
func (e *CurriculumError) Unwrap() error {
	return e.Cause
}
