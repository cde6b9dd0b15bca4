package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers branch on with errors.Is.
var (
	// ErrSessionNotValid means the portal no longer recognizes the
	// session cookies; the caller should reauthenticate.
	ErrSessionNotValid = errors.New("current session is not valid")
	// ErrBadTime means a time value in a portal response was outside the
	// bounds of a real clock.
	ErrBadTime = errors.New("invalid time")
	// ErrMalformedResponse means the portal's response was structurally
	// inconsistent with what the normalization layer requires.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError is returned when the portal answers with a non-success HTTP
// status code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unsuccessful status code %d: %s", e.Code, e.Body)
}

// PortalError is an operation the portal itself rejected, carrying the
// portal's stated reason with any markup stripped.
type PortalError struct {
	Reason string
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("portal rejected the request: %s", e.Reason)
}

// InputError is returned when caller-provided input fails validation
// before any network request is made.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("bad input for %s: %s", e.Field, e.Reason)
}

// SearchContext says where a section was looked for.
type SearchContext string

const (
	ContextSchedule SearchContext = "schedule"
	ContextCatalog  SearchContext = "catalog"
)

// SectionNotFoundError is returned when a section ID cannot be found in
// the searched context.
type SectionNotFoundError struct {
	SectionID string
	Where     SearchContext
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %s not found in %s", e.SectionID, e.Where)
}

// ParseError wraps a failure to decode or normalize a portal response.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
