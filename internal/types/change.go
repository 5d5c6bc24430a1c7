package types

import "fmt"

// ChangeType discriminates the three kinds of itinerary edits the generator
// can request.
type ChangeType string

const (
	ChangeAddition     ChangeType = "addition"
	ChangeModification ChangeType = "modification"
	ChangeRemoval      ChangeType = "removal"
)

// ChangeDescriptor is one generator-produced instruction to edit the
// itinerary. Descriptors are consumed exactly once and never persisted.
// AffectedDays may be empty, in which case the descriptor is a no-op and is
// skipped rather than applied blindly.
type ChangeDescriptor struct {
	Type         ChangeType `json:"type"`
	Description  string     `json:"description,omitempty"`
	AffectedDays []int      `json:"affectedDays,omitempty"`
	ActivityName string     `json:"activityName,omitempty"`
	Before       string     `json:"before,omitempty"`
	After        string     `json:"after,omitempty"`
}

// Validate checks that the variant-required fields are present. A descriptor
// failing validation poisons its whole batch: the mutation engine rejects the
// batch and leaves the original itinerary untouched.
func (d ChangeDescriptor) Validate() error {
	switch d.Type {
	case ChangeAddition:
		if d.ActivityName == "" {
			return fmt.Errorf("addition descriptor missing activityName: %w", ErrBadRequest)
		}
		if d.After == "" {
			return fmt.Errorf("addition descriptor missing after content: %w", ErrBadRequest)
		}
	case ChangeModification:
		if d.ActivityName == "" {
			return fmt.Errorf("modification descriptor missing activityName: %w", ErrBadRequest)
		}
		if d.After == "" {
			return fmt.Errorf("modification descriptor missing after content: %w", ErrBadRequest)
		}
	case ChangeRemoval:
		if d.ActivityName == "" {
			return fmt.Errorf("removal descriptor missing activityName: %w", ErrBadRequest)
		}
	default:
		return fmt.Errorf("unknown change type %q: %w", d.Type, ErrBadRequest)
	}
	return nil
}
