package engine

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrUnknownTemplate = errors.New("unknown quest template")
	ErrAlreadyAccepted = errors.New("quest template already accepted")
)

// LockedError indicates a template is still behind its unlock requirement.
type LockedError struct {
	TemplateID     string
	RequiredLevel  int
	RequiredStreak int
}

func (e LockedError) Error() string {
	if e.RequiredStreak <= 0 {
		return fmt.Sprintf("quest '%s' unlocks at level %d", e.TemplateID, e.RequiredLevel)
	}
	return fmt.Sprintf("quest '%s' unlocks at level %d with a %d streak", e.TemplateID, e.RequiredLevel, e.RequiredStreak)
}

// ValidationError reports a payload that failed schema validation at a
// boundary (cache hydrate, remote snapshot, generated content).
type ValidationError struct {
	Subject string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Subject, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
