package services

import (
	"testing"
	"time"

	"github.com/sweeply/fieldops/internal/models"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBuildScheduleItems(t *testing.T) {
	majors := []models.MajorProject{
		{ID: "m2", Title: "후순위", ScheduledDate: timePtr(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)), Status: models.MajorStatusRecruiting, ServiceType: models.ServiceTypeCleaning},
		{ID: "m1", Title: "선순위", ScheduledDate: timePtr(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)), Status: models.MajorStatusInProgress, ServiceType: models.ServiceTypePickup},
		{ID: "m3", Title: "날짜 없음", ScheduledDate: nil},
	}

	items := BuildScheduleItems(majors)
	if len(items) != 2 {
		t.Fatalf("dateless project must be excluded, got %d items", len(items))
	}
	if items[0].ID != "m1" || items[1].ID != "m2" {
		t.Errorf("items not sorted by date: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Date != "2025-06-10" {
		t.Errorf("date = %q, want 2025-06-10", items[0].Date)
	}
	if items[0].Type != models.ServiceTypePickup {
		t.Errorf("type = %q, want pickup", items[0].Type)
	}
}

func TestGroupByDate(t *testing.T) {
	items := []ScheduleItem{
		{ID: "a", Date: "2025-06-10"},
		{ID: "b", Date: "2025-06-10"},
		{ID: "c", Date: "2025-06-11"},
	}

	grouped := GroupByDate(items)
	if len(grouped) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(grouped))
	}
	if len(grouped["2025-06-10"]) != 2 {
		t.Errorf("2025-06-10 should hold 2 items, got %d", len(grouped["2025-06-10"]))
	}
}

func TestDotColor(t *testing.T) {
	tests := []struct {
		name  string
		items []ScheduleItem
		want  string
	}{
		{"empty", nil, ""},
		{
			"all completed",
			[]ScheduleItem{
				{Status: models.MajorStatusCompleted, Type: models.ServiceTypePickup},
				{Status: models.MajorStatusCompleted, Type: models.ServiceTypeCleaning},
			},
			DotMuted,
		},
		{
			"pickup pending wins",
			[]ScheduleItem{
				{Status: models.MajorStatusCompleted, Type: models.ServiceTypeCleaning},
				{Status: models.MajorStatusInProgress, Type: models.ServiceTypePickup},
			},
			DotPrimary,
		},
		{
			"cleaning only",
			[]ScheduleItem{
				{Status: models.MajorStatusRecruiting, Type: models.ServiceTypeCleaning},
			},
			DotSecondary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DotColor(tt.items); got != tt.want {
				t.Errorf("DotColor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayStyle(t *testing.T) {
	if got := DayStyle(true, true); got != DaySelected {
		t.Errorf("selected must win over today, got %q", got)
	}
	if got := DayStyle(false, true); got != DayToday {
		t.Errorf("today style expected, got %q", got)
	}
	if got := DayStyle(false, false); got != "" {
		t.Errorf("plain day should have no style, got %q", got)
	}
}
