package services

import (
	"github.com/sweeply/fieldops/internal/models"
)

// VisibilitySource records which rule admitted a minor project into a
// master's visible set.
type VisibilitySource string

const (
	SourceAdmin         VisibilitySource = "admin"
	SourceOwner         VisibilitySource = "owner"
	SourceParticipation VisibilitySource = "participation"
	SourceManager       VisibilitySource = "manager"
)

// MinorRef is a visible minor project together with its parent and the rule
// that admitted it.
type MinorRef struct {
	Minor  models.MinorProject
	Major  models.MajorProject
	Source VisibilitySource
}

// VisibleMajors filters majors down to what the given role and identity may
// see. Admin roles see everything; a client sees their own majors; a master
// sees the parents of their visible minor projects (deduplicated, in
// traversal order).
func VisibleMajors(role, userID string, majors []models.MajorProject) []models.MajorProject {
	if models.IsAdminRole(role) {
		return majors
	}

	switch role {
	case models.RoleClient:
		out := make([]models.MajorProject, 0, len(majors))
		for _, m := range majors {
			if m.ClientID == userID {
				out = append(out, m)
			}
		}
		return out
	case models.RoleMaster:
		seen := make(map[string]bool)
		var out []models.MajorProject
		for _, ref := range VisibleMinors(role, userID, majors) {
			if seen[ref.Major.ID] {
				continue
			}
			seen[ref.Major.ID] = true
			out = append(out, ref.Major)
		}
		return out
	}
	return nil
}

// VisibleMinors returns the minor projects the identity may see, each tagged
// with the admitting source. For a master the set is the union of minors
// where the master holds an approved participant record and minors whose
// parent major has the master as manager; entries are keyed by minor id and
// the participation-derived record wins over the manager-derived one.
// Participation-derived entries come first, each group in traversal order.
func VisibleMinors(role, userID string, majors []models.MajorProject) []MinorRef {
	if models.IsAdminRole(role) {
		var out []MinorRef
		for _, major := range majors {
			for _, minor := range major.Minors {
				out = append(out, MinorRef{Minor: minor, Major: major, Source: SourceAdmin})
			}
		}
		return out
	}

	switch role {
	case models.RoleClient:
		var out []MinorRef
		for _, major := range majors {
			if major.ClientID != userID {
				continue
			}
			for _, minor := range major.Minors {
				out = append(out, MinorRef{Minor: minor, Major: major, Source: SourceOwner})
			}
		}
		return out

	case models.RoleMaster:
		var out []MinorRef
		seen := make(map[string]bool)

		for _, major := range majors {
			for _, minor := range major.Minors {
				if IsApprovedParticipant(minor.Participants, userID) {
					seen[minor.ID] = true
					out = append(out, MinorRef{Minor: minor, Major: major, Source: SourceParticipation})
				}
			}
		}

		for _, major := range majors {
			if major.ManagerID == nil || *major.ManagerID != userID {
				continue
			}
			for _, minor := range major.Minors {
				if seen[minor.ID] {
					continue
				}
				seen[minor.ID] = true
				out = append(out, MinorRef{Minor: minor, Major: major, Source: SourceManager})
			}
		}
		return out
	}
	return nil
}
