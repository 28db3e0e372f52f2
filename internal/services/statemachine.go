package services

import (
	"errors"
	"fmt"

	"github.com/sweeply/fieldops/internal/models"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownStatus     = errors.New("unknown status")
)

// EntityKind identifies which transition table applies.
type EntityKind string

const (
	KindMajorProject EntityKind = "major_project"
	KindMinorProject EntityKind = "minor_project"
	KindParticipant  EntityKind = "participant"
)

// transitions is the shared state machine for all mutation paths. The read
// side never enforces these; it reads whatever state currently exists.
var transitions = map[EntityKind]map[string][]string{
	KindMajorProject: {
		models.MajorStatusDraft:      {models.MajorStatusRecruiting},
		models.MajorStatusRecruiting: {models.MajorStatusInProgress},
		models.MajorStatusInProgress: {models.MajorStatusCompleted},
		models.MajorStatusCompleted:  {},
	},
	KindMinorProject: {
		models.MinorStatusInProgress: {models.MinorStatusReview},
		// review can be sent back to in_progress when sign-off is declined
		models.MinorStatusReview:    {models.MinorStatusCompleted, models.MinorStatusInProgress},
		models.MinorStatusCompleted: {},
	},
	KindParticipant: {
		models.ParticipantApplied:  {models.ParticipantApproved, models.ParticipantRejected},
		models.ParticipantApproved: {},
		models.ParticipantRejected: {},
	},
}

// IsValidStatus reports whether s is a known status for the entity kind.
func IsValidStatus(kind EntityKind, s string) bool {
	_, ok := transitions[kind][s]
	return ok
}

// CanTransition reports whether from -> to is a permitted transition.
func CanTransition(kind EntityKind, from, to string) bool {
	for _, next := range transitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error describing why from -> to is not
// allowed, or nil when it is.
func ValidateTransition(kind EntityKind, from, to string) error {
	if !IsValidStatus(kind, from) {
		return fmt.Errorf("%w: %s %q", ErrUnknownStatus, kind, from)
	}
	if !IsValidStatus(kind, to) {
		return fmt.Errorf("%w: %s %q", ErrUnknownStatus, kind, to)
	}
	if !CanTransition(kind, from, to) {
		return fmt.Errorf("%w: %s %s -> %s", ErrIllegalTransition, kind, from, to)
	}
	return nil
}
