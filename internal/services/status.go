package services

import (
	"fmt"
	"math"
	"time"

	"github.com/sweeply/fieldops/internal/models"
)

// Badge is a presentation label plus a style class for a project status.
type Badge struct {
	Label string `json:"label"`
	Class string `json:"class"`
}

// Status labels shown in the mobile app.
const (
	LabelDraft         = "준비중"
	LabelRecruiting    = "모집중"
	LabelNearCapacity  = "마감임박"
	LabelInProgress    = "진행중"
	LabelPendingReview = "검토 대기"
	LabelCompleted     = "완료"
)

// D-Day labels for the near dates.
const (
	LabelToday     = "오늘"
	LabelTomorrow  = "내일"
	LabelYesterday = "어제"
)

// StatusBadge maps a raw status plus recruitment counts to a display badge.
// "마감임박" replaces "모집중" only when the project actually requires masters
// and applications have reached that requirement; a 0-required project is
// always plain "모집중".
func StatusBadge(status string, required, applied int) Badge {
	switch status {
	case models.MajorStatusDraft:
		return Badge{Label: LabelDraft, Class: "gray"}
	case models.MajorStatusRecruiting:
		if required > 0 && applied >= required {
			return Badge{Label: LabelNearCapacity, Class: "orange"}
		}
		return Badge{Label: LabelRecruiting, Class: "blue"}
	case models.MajorStatusInProgress:
		return Badge{Label: LabelInProgress, Class: "green"}
	case models.MinorStatusReview:
		return Badge{Label: LabelPendingReview, Class: "purple"}
	case models.MajorStatusCompleted:
		return Badge{Label: LabelCompleted, Class: "slate"}
	default:
		// Unknown statuses are shown raw rather than dropped.
		return Badge{Label: status, Class: "gray"}
	}
}

// MinorStatusBadge derives the badge for a minor project. While the parent
// is still recruiting, the minor is presented in its implicit "open" state
// with the parent's recruitment badge.
func MinorStatusBadge(minor models.MinorProject, parentStatus string, required, applied int) Badge {
	if parentStatus == models.MajorStatusRecruiting {
		return StatusBadge(models.MajorStatusRecruiting, required, applied)
	}
	return StatusBadge(minor.Status, required, applied)
}

// midnight truncates t to local midnight in loc. Comparing midnights rather
// than wall-clock timestamps avoids off-by-one D-Day values near midnight.
func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DayDiff returns the number of calendar days between now and target
// (positive when target is in the future).
func DayDiff(target, now time.Time) int {
	loc := now.Location()
	tm := midnight(target, loc)
	nm := midnight(now, loc)
	return int(math.Ceil(tm.Sub(nm).Hours() / 24))
}

// DDayLabel renders a relative-date label for target as seen from now:
// 오늘 / 내일 / 어제 / D-n (future) / D+n (past).
func DDayLabel(target, now time.Time) string {
	diff := DayDiff(target, now)
	switch diff {
	case 0:
		return LabelToday
	case 1:
		return LabelTomorrow
	case -1:
		return LabelYesterday
	}
	if diff > 1 {
		return fmt.Sprintf("D-%d", diff)
	}
	return fmt.Sprintf("D+%d", -diff)
}
