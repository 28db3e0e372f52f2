package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sweeply/fieldops/internal/models"
)

func TestEffectiveRole(t *testing.T) {
	tests := []struct {
		name     string
		actual   string
		override string
		want     string
	}{
		{"no override", models.RoleSuperAdmin, "", models.RoleSuperAdmin},
		{"admin views as master", models.RoleSuperAdmin, models.RoleMaster, models.RoleMaster},
		{"admin views as client", models.RoleProjectManager, models.RoleClient, models.RoleClient},
		{"master cannot impersonate", models.RoleMaster, models.RoleSuperAdmin, models.RoleMaster},
		{"client cannot impersonate", models.RoleClient, models.RoleMaster, models.RoleClient},
		{"bogus override ignored", models.RoleSuperAdmin, "root", models.RoleSuperAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveRole(tt.actual, tt.override); got != tt.want {
				t.Errorf("EffectiveRole(%s, %s) = %s, want %s", tt.actual, tt.override, got, tt.want)
			}
		})
	}
}

// Recruiting major for client c1 with two minors: one needs 2 masters (both
// approved), one needs 1 (no applicants yet).
func dashboardFixture() *Snapshot {
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	scheduled := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	return &Snapshot{
		Majors: []models.MajorProject{
			{
				ID:            "major-1",
				Title:         "강남 A매장 정기 청소",
				Location:      "서울 강남구",
				ServiceType:   models.ServiceTypeCleaning,
				Status:        models.MajorStatusRecruiting,
				ScheduledDate: &scheduled,
				ClientID:      "c1",
				Minors: []models.MinorProject{
					{
						ID:              "minor-1a",
						MajorProjectID:  "major-1",
						Title:           "외부 유리창 청소",
						Status:          models.MinorStatusInProgress,
						RequiredMasters: 2,
						Participants: []models.Participant{
							participant("p1", "m1", models.ParticipantApproved, t0),
							participant("p2", "m2", models.ParticipantApproved, t0),
						},
					},
					{
						ID:              "minor-1b",
						MajorProjectID:  "major-1",
						Title:           "주방 후드 세척",
						Status:          models.MinorStatusInProgress,
						RequiredMasters: 1,
					},
				},
			},
		},
		Profiles: []models.Profile{
			{ID: "c1", Role: models.RoleClient, Name: "김사장"},
			{ID: "m1", Role: models.RoleMaster, Name: "박기사"},
			{ID: "m2", Role: models.RoleMaster, Name: "이기사"},
		},
		Stores: []models.Store{
			{ID: "s1", Name: "강남 A매장", Address: "서울 강남구", MasterID: strPtr("m1"), IsActive: true},
			{ID: "s2", Name: "서초 B매장", IsActive: false},
		},
	}
}

func TestBuildDashboard_Idempotent(t *testing.T) {
	snap := dashboardFixture()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	first, _ := json.Marshal(buildDashboard(snap, models.RoleClient, "c1", now))
	second, _ := json.Marshal(buildDashboard(snap, models.RoleClient, "c1", now))

	if string(first) != string(second) {
		t.Error("same snapshot and clock must produce byte-identical dashboards")
	}
}

func TestBuildMajorSummary_RecruitmentRollup(t *testing.T) {
	snap := dashboardFixture()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	summary := BuildMajorSummary(snap.Majors[0], now)
	if summary.Required != 3 || summary.Applied != 2 {
		t.Errorf("rollup = %d/%d, want 2/3", summary.Applied, summary.Required)
	}
	if summary.Badge.Label != "모집중" {
		t.Errorf("2 of 3 should still recruit, got %q", summary.Badge.Label)
	}
	if summary.DDay != "D-3" {
		t.Errorf("DDay = %q, want D-3", summary.DDay)
	}

	// A third approval fills the requirement and flips the badge.
	t0 := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	snap.Majors[0].Minors[1].Participants = []models.Participant{
		participant("p3", "m3", models.ParticipantApproved, t0),
	}
	summary = BuildMajorSummary(snap.Majors[0], now)
	if summary.Applied != 3 {
		t.Fatalf("applied = %d, want 3", summary.Applied)
	}
	if summary.Badge.Label != "마감임박" {
		t.Errorf("3 of 3 should be near capacity, got %q", summary.Badge.Label)
	}
}

func TestBuildDashboard_Admin(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	resp := buildDashboard(dashboardFixture(), models.RoleSuperAdmin, "admin-1", now)

	if resp.Admin == nil || resp.Master != nil || resp.Client != nil {
		t.Fatal("admin build must carry exactly the admin payload")
	}

	stats := resp.Admin.Stats
	if stats.TotalMasters != 2 || stats.TotalStores != 2 || stats.ActiveStores != 1 || stats.TotalMajorProjects != 1 {
		t.Errorf("unexpected admin stats: %+v", stats)
	}

	var m1 *MasterRollup
	for i := range resp.Admin.Masters {
		if resp.Admin.Masters[i].MasterID == "m1" {
			m1 = &resp.Admin.Masters[i]
		}
	}
	if m1 == nil {
		t.Fatal("m1 rollup missing")
	}
	if m1.MinorProjectCount != 1 || m1.StoreCount != 1 {
		t.Errorf("m1 rollup = %d minors / %d stores, want 1/1", m1.MinorProjectCount, m1.StoreCount)
	}

	if len(resp.Schedule) != 1 {
		t.Errorf("admin schedule should hold the dated major, got %d items", len(resp.Schedule))
	}
}

func TestBuildDashboard_Master(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	resp := buildDashboard(dashboardFixture(), models.RoleMaster, "m1", now)

	if resp.Master == nil {
		t.Fatal("master payload missing")
	}

	stats := resp.Master.Stats
	if stats.AssignedMinorProjects != 1 {
		t.Errorf("assigned = %d, want 1", stats.AssignedMinorProjects)
	}
	if stats.AssignedStores != 1 {
		t.Errorf("stores = %d, want 1", stats.AssignedStores)
	}
	// Recruiting majors are counted operator-wide, not visibility-filtered.
	if stats.RecruitingMajors != 1 {
		t.Errorf("recruiting = %d, want 1", stats.RecruitingMajors)
	}

	if len(resp.Master.InProgress) != 1 {
		t.Fatalf("in progress cards = %d, want 1", len(resp.Master.InProgress))
	}
	card := resp.Master.InProgress[0]
	if card.ID != "minor-1a" {
		t.Errorf("card id = %s, want minor-1a", card.ID)
	}
	// Parent is recruiting and its own slots are filled.
	if card.Badge.Label != "마감임박" {
		t.Errorf("card badge = %q, want 마감임박", card.Badge.Label)
	}
}

func TestBuildDashboard_MasterCompletedThisMonth(t *testing.T) {
	snap := dashboardFixture()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	thisMonth := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2025, 5, 3, 8, 0, 0, 0, time.UTC)
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	snap.Majors[0].Minors = append(snap.Majors[0].Minors,
		models.MinorProject{
			ID: "minor-done-1", MajorProjectID: "major-1", Status: models.MinorStatusCompleted,
			StartedAt: &thisMonth,
			Participants: []models.Participant{
				participant("p5", "m1", models.ParticipantApproved, t0),
			},
		},
		models.MinorProject{
			ID: "minor-done-2", MajorProjectID: "major-1", Status: models.MinorStatusCompleted,
			StartedAt: &lastMonth,
			Participants: []models.Participant{
				participant("p6", "m1", models.ParticipantApproved, t0),
			},
		},
	)

	resp := buildDashboard(snap, models.RoleMaster, "m1", now)
	if resp.Master.Stats.CompletedThisMonth != 1 {
		t.Errorf("completed this month = %d, want 1", resp.Master.Stats.CompletedThisMonth)
	}
	if len(resp.Master.RecentlyCompleted) != 2 {
		t.Errorf("recently completed cards = %d, want 2", len(resp.Master.RecentlyCompleted))
	}
}

func TestBuildDashboard_Client(t *testing.T) {
	snap := dashboardFixture()
	snap.Majors[0].Minors[1].Status = models.MinorStatusReview
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	resp := buildDashboard(snap, models.RoleClient, "c1", now)
	if resp.Client == nil {
		t.Fatal("client payload missing")
	}

	stats := resp.Client.Stats
	if stats.TotalMinorProjects != 2 || stats.PendingReview != 1 || stats.Completed != 0 {
		t.Errorf("unexpected client stats: %+v", stats)
	}
	if stats.NextScheduledDate != "2025-06-13" {
		t.Errorf("next date = %q, want 2025-06-13", stats.NextScheduledDate)
	}

	if resp.Client.Alert == nil {
		t.Fatal("review alert missing")
	}
	if resp.Client.Alert.MajorProjectID != "major-1" || resp.Client.Alert.PendingCount != 1 {
		t.Errorf("unexpected alert: %+v", resp.Client.Alert)
	}

	if len(resp.Client.Projects) != 1 {
		t.Errorf("projects = %d, want 1", len(resp.Client.Projects))
	}

	// Another client sees an empty dashboard.
	other := buildDashboard(snap, models.RoleClient, "c9", now)
	if other.Client.Stats.TotalMinorProjects != 0 || len(other.Client.Projects) != 0 {
		t.Error("foreign client must not see c1's projects")
	}
}

func TestBuildDashboard_ClientNextDateSkipsPast(t *testing.T) {
	snap := dashboardFixture()
	past := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	snap.Majors[0].ScheduledDate = &past
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	resp := buildDashboard(snap, models.RoleClient, "c1", now)
	if resp.Client.Stats.NextScheduledDate != "" {
		t.Errorf("past date must not surface as next, got %q", resp.Client.Stats.NextScheduledDate)
	}
}

func TestBuildDashboard_CancelledCallerContext(t *testing.T) {
	db := newTestDB(t)
	major := models.MajorProject{
		ID: "major-1", Title: "강남 A매장 정기 청소",
		Status: models.MajorStatusRecruiting, ClientID: "c1",
	}
	if err := db.Create(&major).Error; err != nil {
		t.Fatalf("create major: %v", err)
	}

	svc := NewDashboardService(db, nil)

	// Coalesced callers share one fetch; a caller that has already given up
	// must not poison the snapshot the others receive.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := svc.BuildDashboard(ctx, models.RoleSuperAdmin, "", "admin-1")
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if resp.Admin == nil || resp.Admin.Stats.TotalMajorProjects != 1 {
		t.Errorf("cancelled caller degraded the snapshot: %+v", resp.Admin)
	}
}

func TestBuildDashboard_CardLimit(t *testing.T) {
	snap := dashboardFixture()
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for _, id := range []string{"x1", "x2", "x3", "x4"} {
		snap.Majors[0].Minors = append(snap.Majors[0].Minors, models.MinorProject{
			ID: id, MajorProjectID: "major-1", Status: models.MinorStatusInProgress,
			Participants: []models.Participant{
				participant("p-"+id, "m1", models.ParticipantApproved, t0),
			},
		})
	}

	resp := buildDashboard(snap, models.RoleMaster, "m1", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	if len(resp.Master.InProgress) != dashboardCardLimit {
		t.Errorf("in progress cards = %d, want %d", len(resp.Master.InProgress), dashboardCardLimit)
	}
	if resp.Master.Stats.AssignedMinorProjects != 5 {
		t.Errorf("stats must count beyond the card limit, got %d", resp.Master.Stats.AssignedMinorProjects)
	}
}
