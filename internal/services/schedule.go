package services

import (
	"sort"

	"github.com/sweeply/fieldops/internal/models"
)

// ScheduleItem is a derived calendar entry. It is produced fresh on every
// aggregation pass and never stored.
type ScheduleItem struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // 2006-01-02
	Title    string `json:"title"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Type     string `json:"type"` // cleaning, pickup
}

// Calendar dot colors.
const (
	DotMuted     = "muted"
	DotPrimary   = "primary"
	DotSecondary = "secondary"
)

// Calendar day styles.
const (
	DaySelected = "selected"
	DayToday    = "today"
)

const scheduleDateLayout = "2006-01-02"

// BuildScheduleItems turns the given majors into schedule items sorted by
// date (input order within a date). Projects without a scheduled date are
// excluded, never defaulted to today.
func BuildScheduleItems(majors []models.MajorProject) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(majors))
	for _, m := range majors {
		if m.ScheduledDate == nil {
			continue
		}
		items = append(items, ScheduleItem{
			ID:       m.ID,
			Date:     m.ScheduledDate.Format(scheduleDateLayout),
			Title:    m.Title,
			Location: m.Location,
			Status:   m.Status,
			Type:     EffectiveServiceType(m),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items
}

// GroupByDate groups schedule items into a date -> items map for calendar
// rendering.
func GroupByDate(items []ScheduleItem) map[string][]ScheduleItem {
	grouped := make(map[string][]ScheduleItem)
	for _, item := range items {
		grouped[item.Date] = append(grouped[item.Date], item)
	}
	return grouped
}

// DotColor picks the calendar dot for one date's items: muted when every
// item is completed, primary when any pickup remains, secondary otherwise.
func DotColor(items []ScheduleItem) string {
	if len(items) == 0 {
		return ""
	}
	allCompleted := true
	for _, item := range items {
		if item.Status != models.MajorStatusCompleted {
			allCompleted = false
			break
		}
	}
	if allCompleted {
		return DotMuted
	}
	for _, item := range items {
		if item.Type == models.ServiceTypePickup {
			return DotPrimary
		}
	}
	return DotSecondary
}

// DayStyle resolves the calendar day highlight. Selected-date styling always
// wins over today styling when they coincide.
func DayStyle(selected, today bool) string {
	if selected {
		return DaySelected
	}
	if today {
		return DayToday
	}
	return ""
}
