package services

import (
	"github.com/sweeply/fieldops/internal/models"
)

// Capacity describes recruitment progress for a minor project, or the
// rolled-up sums for a major project.
type Capacity struct {
	Required     int  `json:"required"`
	Applied      int  `json:"applied"`
	NearCapacity bool `json:"near_capacity"`
}

// ApplyState is a master's personal standing against a minor project. A
// master who is already applied or approved must never be offered the apply
// action again; a rejected master may re-apply.
type ApplyState struct {
	HasApplied bool `json:"has_applied"`
	IsApproved bool `json:"is_approved"`
	CanApply   bool `json:"can_apply"`
}

// DedupeParticipants keeps one record per master, preferring the earliest
// created. Storage is supposed to enforce (minor_project_id, master_id)
// uniqueness, but the engine does not rely on it.
func DedupeParticipants(ps []models.Participant) []models.Participant {
	if len(ps) < 2 {
		return ps
	}
	out := make([]models.Participant, 0, len(ps))
	seen := make(map[string]int, len(ps))
	for _, p := range ps {
		if i, ok := seen[p.MasterID]; ok {
			if p.CreatedAt.Before(out[i].CreatedAt) {
				out[i] = p
			}
			continue
		}
		seen[p.MasterID] = len(out)
		out = append(out, p)
	}
	return out
}

// AppliedCount counts participants that occupy a recruitment slot: both
// pending applications and approved assignments.
func AppliedCount(ps []models.Participant) int {
	n := 0
	for _, p := range DedupeParticipants(ps) {
		if p.Status == models.ParticipantApplied || p.Status == models.ParticipantApproved {
			n++
		}
	}
	return n
}

func nearCapacity(required, applied int) bool {
	return required > 0 && applied >= required
}

// MinorCapacity computes recruitment progress for one minor project.
func MinorCapacity(m models.MinorProject) Capacity {
	applied := AppliedCount(m.Participants)
	return Capacity{
		Required:     m.RequiredMasters,
		Applied:      applied,
		NearCapacity: nearCapacity(m.RequiredMasters, applied),
	}
}

// MajorCapacity sums the recruitment progress of all child minor projects.
func MajorCapacity(m models.MajorProject) Capacity {
	var required, applied int
	for _, minor := range m.Minors {
		required += minor.RequiredMasters
		applied += AppliedCount(minor.Participants)
	}
	return Capacity{
		Required:     required,
		Applied:      applied,
		NearCapacity: nearCapacity(required, applied),
	}
}

// MasterApplyState derives a master's apply gate from a minor project's
// participants.
func MasterApplyState(ps []models.Participant, masterID string) ApplyState {
	var state ApplyState
	for _, p := range DedupeParticipants(ps) {
		if p.MasterID != masterID {
			continue
		}
		switch p.Status {
		case models.ParticipantApplied:
			state.HasApplied = true
		case models.ParticipantApproved:
			state.HasApplied = true
			state.IsApproved = true
		}
	}
	state.CanApply = !state.HasApplied
	return state
}

// IsApprovedParticipant reports whether the master holds an approved
// participant record on the given participants.
func IsApprovedParticipant(ps []models.Participant, masterID string) bool {
	for _, p := range ps {
		if p.MasterID == masterID && p.Status == models.ParticipantApproved {
			return true
		}
	}
	return false
}
