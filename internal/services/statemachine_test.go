package services

import (
	"errors"
	"testing"

	"github.com/sweeply/fieldops/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		kind EntityKind
		from string
		to   string
		want bool
	}{
		{KindMajorProject, models.MajorStatusDraft, models.MajorStatusRecruiting, true},
		{KindMajorProject, models.MajorStatusRecruiting, models.MajorStatusInProgress, true},
		{KindMajorProject, models.MajorStatusInProgress, models.MajorStatusCompleted, true},
		{KindMajorProject, models.MajorStatusDraft, models.MajorStatusInProgress, false},
		{KindMajorProject, models.MajorStatusCompleted, models.MajorStatusDraft, false},
		{KindMajorProject, models.MajorStatusRecruiting, models.MajorStatusDraft, false},

		{KindMinorProject, models.MinorStatusInProgress, models.MinorStatusReview, true},
		{KindMinorProject, models.MinorStatusReview, models.MinorStatusCompleted, true},
		{KindMinorProject, models.MinorStatusReview, models.MinorStatusInProgress, true},
		{KindMinorProject, models.MinorStatusInProgress, models.MinorStatusCompleted, false},
		{KindMinorProject, models.MinorStatusCompleted, models.MinorStatusInProgress, false},

		{KindParticipant, models.ParticipantApplied, models.ParticipantApproved, true},
		{KindParticipant, models.ParticipantApplied, models.ParticipantRejected, true},
		{KindParticipant, models.ParticipantApproved, models.ParticipantRejected, false},
		{KindParticipant, models.ParticipantRejected, models.ParticipantApproved, false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.kind, tt.from, tt.to)
		if got != tt.want {
			t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tt.kind, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidateTransition_IllegalTransition(t *testing.T) {
	err := ValidateTransition(KindMajorProject, models.MajorStatusDraft, models.MajorStatusCompleted)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	err := ValidateTransition(KindMajorProject, "bogus", models.MajorStatusRecruiting)
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus for unknown from-status, got %v", err)
	}

	err = ValidateTransition(KindMinorProject, models.MinorStatusReview, "bogus")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus for unknown to-status, got %v", err)
	}
}

func TestValidateTransition_OK(t *testing.T) {
	if err := ValidateTransition(KindMinorProject, models.MinorStatusReview, models.MinorStatusInProgress); err != nil {
		t.Errorf("review -> in_progress should be allowed, got %v", err)
	}
}

func TestIsValidStatus(t *testing.T) {
	if !IsValidStatus(KindParticipant, models.ParticipantApplied) {
		t.Error("applied should be a valid participant status")
	}
	if IsValidStatus(KindParticipant, "pending") {
		t.Error("pending is not a participant status")
	}
	if IsValidStatus(KindMajorProject, models.MinorStatusReview) {
		t.Error("review is not a major project status")
	}
}
