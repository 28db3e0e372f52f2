package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/pkg/logger"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// DashboardService assembles role-scoped dashboard payloads. Every build is
// a fresh, full recomputation over the current entity snapshot; nothing is
// cached between renders.
type DashboardService struct {
	db      *gorm.DB
	counter UnreadCounter
	group   singleflight.Group
}

func NewDashboardService(db *gorm.DB, counter UnreadCounter) *DashboardService {
	if counter == nil {
		counter = NewRPCUnreadCounter(db)
	}
	return &DashboardService{db: db, counter: counter}
}

// Snapshot is the raw relational state a dashboard build works from. The
// aggregation itself is a pure transform over it.
type Snapshot struct {
	Majors   []models.MajorProject
	Profiles []models.Profile
	Stores   []models.Store
}

// AdminStats are the operator-wide headline numbers.
type AdminStats struct {
	TotalMasters       int `json:"total_masters"`
	TotalStores        int `json:"total_stores"`
	ActiveStores       int `json:"active_stores"`
	TotalMajorProjects int `json:"total_major_projects"`
}

// MasterRollup is the admin dashboard's per-master summary.
type MasterRollup struct {
	MasterID          string `json:"master_id"`
	Name              string `json:"name"`
	MinorProjectCount int    `json:"minor_project_count"` // participation-derived
	StoreCount        int    `json:"store_count"`
}

// StoreSummary is one store row with the assigned master resolved by join.
type StoreSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	MasterName string `json:"master_name"`
	IsActive   bool   `json:"is_active"`
}

type AdminDashboard struct {
	Stats   AdminStats     `json:"stats"`
	Masters []MasterRollup `json:"masters"`
	Stores  []StoreSummary `json:"stores"`
}

// MasterStats are the field worker's headline numbers.
type MasterStats struct {
	AssignedMinorProjects int `json:"assigned_minor_projects"`
	CompletedThisMonth    int `json:"completed_this_month"`
	AssignedStores        int `json:"assigned_stores"`
	RecruitingMajors      int `json:"recruiting_majors"`
}

// MinorSummary is a minor project card with derived presentation state.
type MinorSummary struct {
	ID             string `json:"id"`
	MajorProjectID string `json:"major_project_id"`
	MajorTitle     string `json:"major_title"`
	Title          string `json:"title"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	Badge          Badge  `json:"badge"`
	Required       int    `json:"required"`
	Applied        int    `json:"applied"`
	DDay           string `json:"d_day,omitempty"`
}

type MasterDashboard struct {
	Stats             MasterStats    `json:"stats"`
	InProgress        []MinorSummary `json:"in_progress"`
	RecentlyCompleted []MinorSummary `json:"recently_completed"`
}

// MajorSummary is a major project card with rolled-up recruitment counts.
type MajorSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	Status   string `json:"status"`
	Badge    Badge  `json:"badge"`
	Required int    `json:"required"`
	Applied  int    `json:"applied"`
	DDay     string `json:"d_day,omitempty"`
}

// ClientStats are the client's headline numbers across all owned majors.
type ClientStats struct {
	TotalMinorProjects int    `json:"total_minor_projects"`
	Completed          int    `json:"completed"`
	PendingReview      int    `json:"pending_review"`
	NextScheduledDate  string `json:"next_scheduled_date,omitempty"`
}

// ReviewAlert deep-links to the first major project holding a review-status
// minor project.
type ReviewAlert struct {
	MajorProjectID string `json:"major_project_id"`
	PendingCount   int    `json:"pending_count"`
}

type ClientDashboard struct {
	Stats    ClientStats    `json:"stats"`
	Alert    *ReviewAlert   `json:"alert,omitempty"`
	Projects []MajorSummary `json:"projects"`
}

// DashboardResponse carries exactly one of the three payloads plus the
// schedule items for calendar rendering.
type DashboardResponse struct {
	Role     string           `json:"role"`
	Admin    *AdminDashboard  `json:"admin,omitempty"`
	Master   *MasterDashboard `json:"master,omitempty"`
	Client   *ClientDashboard `json:"client,omitempty"`
	Schedule []ScheduleItem   `json:"schedule"`
}

// EffectiveRole resolves the admin-only "view as" override. Non-admin
// actual roles cannot impersonate; an empty override means the actual role.
func EffectiveRole(actualRole, overrideRole string) string {
	if overrideRole == "" || !models.IsAdminRole(actualRole) {
		return actualRole
	}
	switch overrideRole {
	case models.RoleSuperAdmin, models.RoleProjectManager, models.RoleMaster, models.RoleClient:
		return overrideRole
	}
	return actualRole
}

// BuildDashboard produces the dashboard payload for the effective role.
// Overlapping identical refreshes (same effective role and identity) are
// coalesced into a single aggregation pass.
func (s *DashboardService) BuildDashboard(ctx context.Context, actualRole, overrideRole, userID string) (*DashboardResponse, error) {
	role := EffectiveRole(actualRole, overrideRole)

	// The fetch runs once for every coalesced caller, so it must not die
	// with whichever caller happened to arrive first.
	fetchCtx := context.WithoutCancel(ctx)

	v, err, _ := s.group.Do(role+"|"+userID, func() (interface{}, error) {
		snap := s.fetchSnapshot(fetchCtx)
		return buildDashboard(snap, role, userID, time.Now()), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DashboardResponse), nil
}

// fetchSnapshot issues the independent read queries in parallel. A failed
// query is logged to the operator channel and its slice left empty; the
// aggregation proceeds with partial results rather than failing outright.
func (s *DashboardService) fetchSnapshot(ctx context.Context) *Snapshot {
	snap := &Snapshot{}
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		err := s.db.WithContext(ctx).
			Preload("Minors.Participants").
			Order("created_at ASC").
			Find(&snap.Majors).Error
		if err != nil {
			logger.Error().Err(err).Msg("dashboard: major project fetch failed")
			LogError("dashboard", "fetch_majors", err.Error(), nil, "", "", nil)
		}
	}()
	go func() {
		defer wg.Done()
		err := s.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("created_at ASC").
			Find(&snap.Profiles).Error
		if err != nil {
			logger.Error().Err(err).Msg("dashboard: profile fetch failed")
			LogError("dashboard", "fetch_profiles", err.Error(), nil, "", "", nil)
		}
	}()
	go func() {
		defer wg.Done()
		err := s.db.WithContext(ctx).
			Order("created_at ASC").
			Find(&snap.Stores).Error
		if err != nil {
			logger.Error().Err(err).Msg("dashboard: store fetch failed")
			LogError("dashboard", "fetch_stores", err.Error(), nil, "", "", nil)
		}
	}()
	wg.Wait()

	return snap
}

// buildDashboard is the pure aggregation core: no side effects, determined
// entirely by the snapshot, role, identity and clock.
func buildDashboard(snap *Snapshot, role, userID string, now time.Time) *DashboardResponse {
	resp := &DashboardResponse{Role: role}

	switch {
	case models.IsAdminRole(role):
		resp.Admin = buildAdminDashboard(snap)
	case role == models.RoleMaster:
		resp.Master = buildMasterDashboard(snap, userID, now)
	case role == models.RoleClient:
		resp.Client = buildClientDashboard(snap, userID, now)
	}

	resp.Schedule = BuildScheduleItems(VisibleMajors(role, userID, snap.Majors))
	return resp
}

func buildAdminDashboard(snap *Snapshot) *AdminDashboard {
	storesByMaster := make(map[string]int)
	masterNames := make(map[string]string)

	var masters []models.Profile
	for _, p := range snap.Profiles {
		if p.Role == models.RoleMaster {
			masters = append(masters, p)
			masterNames[p.ID] = p.Name
		}
	}

	activeStores := 0
	for _, st := range snap.Stores {
		if st.IsActive {
			activeStores++
		}
		if st.MasterID != nil {
			storesByMaster[*st.MasterID]++
		}
	}

	// Participation-derived minor project counts per master.
	minorsByMaster := make(map[string]int)
	for _, major := range snap.Majors {
		for _, minor := range major.Minors {
			for _, p := range DedupeParticipants(minor.Participants) {
				if p.Status == models.ParticipantApproved {
					minorsByMaster[p.MasterID]++
				}
			}
		}
	}

	rollups := make([]MasterRollup, 0, len(masters))
	for _, m := range masters {
		rollups = append(rollups, MasterRollup{
			MasterID:          m.ID,
			Name:              m.Name,
			MinorProjectCount: minorsByMaster[m.ID],
			StoreCount:        storesByMaster[m.ID],
		})
	}

	stores := make([]StoreSummary, 0, len(snap.Stores))
	for _, st := range snap.Stores {
		summary := StoreSummary{
			ID:       st.ID,
			Name:     st.Name,
			Address:  st.Address,
			IsActive: st.IsActive,
		}
		if st.MasterID != nil {
			summary.MasterName = masterNames[*st.MasterID]
		}
		stores = append(stores, summary)
	}

	return &AdminDashboard{
		Stats: AdminStats{
			TotalMasters:       len(masters),
			TotalStores:        len(snap.Stores),
			ActiveStores:       activeStores,
			TotalMajorProjects: len(snap.Majors),
		},
		Masters: rollups,
		Stores:  stores,
	}
}

const dashboardCardLimit = 3

func buildMasterDashboard(snap *Snapshot, masterID string, now time.Time) *MasterDashboard {
	refs := VisibleMinors(models.RoleMaster, masterID, snap.Majors)

	completedThisMonth := 0
	var inProgress, completed []MinorSummary
	for _, ref := range refs {
		summary := minorSummary(ref, now)
		switch ref.Minor.Status {
		case models.MinorStatusInProgress:
			inProgress = append(inProgress, summary)
		case models.MinorStatusCompleted:
			completed = append(completed, summary)
			if ref.Minor.StartedAt != nil && sameMonth(*ref.Minor.StartedAt, now) {
				completedThisMonth++
			}
		}
	}

	// Most-recently-completed first; completion is the last update a minor
	// project receives.
	sort.SliceStable(completed, func(i, j int) bool {
		return minorUpdatedAt(refs, completed[i].ID).After(minorUpdatedAt(refs, completed[j].ID))
	})

	if len(inProgress) > dashboardCardLimit {
		inProgress = inProgress[:dashboardCardLimit]
	}
	if len(completed) > dashboardCardLimit {
		completed = completed[:dashboardCardLimit]
	}

	assignedStores := 0
	for _, st := range snap.Stores {
		if st.MasterID != nil && *st.MasterID == masterID {
			assignedStores++
		}
	}

	recruiting := 0
	for _, major := range snap.Majors {
		if major.Status == models.MajorStatusRecruiting {
			recruiting++
		}
	}

	return &MasterDashboard{
		Stats: MasterStats{
			AssignedMinorProjects: len(refs),
			CompletedThisMonth:    completedThisMonth,
			AssignedStores:        assignedStores,
			RecruitingMajors:      recruiting,
		},
		InProgress:        inProgress,
		RecentlyCompleted: completed,
	}
}

func buildClientDashboard(snap *Snapshot, clientID string, now time.Time) *ClientDashboard {
	majors := VisibleMajors(models.RoleClient, clientID, snap.Majors)

	stats := ClientStats{}
	var alert *ReviewAlert
	var nextDate *time.Time

	projects := make([]MajorSummary, 0, len(majors))
	for _, major := range majors {
		for _, minor := range major.Minors {
			stats.TotalMinorProjects++
			switch minor.Status {
			case models.MinorStatusCompleted:
				stats.Completed++
			case models.MinorStatusReview:
				stats.PendingReview++
				if alert == nil {
					alert = &ReviewAlert{MajorProjectID: major.ID}
				}
			}
		}

		if major.Status != models.MajorStatusCompleted && major.ScheduledDate != nil {
			if !major.ScheduledDate.Before(midnight(now, now.Location())) {
				if nextDate == nil || major.ScheduledDate.Before(*nextDate) {
					nextDate = major.ScheduledDate
				}
			}
		}

		projects = append(projects, BuildMajorSummary(major, now))
	}

	if alert != nil {
		alert.PendingCount = stats.PendingReview
	}
	if nextDate != nil {
		stats.NextScheduledDate = nextDate.Format(scheduleDateLayout)
	}

	return &ClientDashboard{
		Stats:    stats,
		Alert:    alert,
		Projects: projects,
	}
}

// BuildMajorSummary builds the major project card: rolled-up recruitment counts,
// the derived badge and the relative-date label.
func BuildMajorSummary(major models.MajorProject, now time.Time) MajorSummary {
	rollup := MajorCapacity(major)
	summary := MajorSummary{
		ID:       major.ID,
		Title:    major.Title,
		Location: major.Location,
		Status:   major.Status,
		Badge:    StatusBadge(major.Status, rollup.Required, rollup.Applied),
		Required: rollup.Required,
		Applied:  rollup.Applied,
	}
	if major.ScheduledDate != nil {
		summary.DDay = DDayLabel(*major.ScheduledDate, now)
	}
	return summary
}

func minorSummary(ref MinorRef, now time.Time) MinorSummary {
	rollup := MinorCapacity(ref.Minor)
	summary := MinorSummary{
		ID:             ref.Minor.ID,
		MajorProjectID: ref.Major.ID,
		MajorTitle:     ref.Major.Title,
		Title:          ref.Minor.Title,
		Location:       ref.Major.Location,
		Status:         ref.Minor.Status,
		Badge:          MinorStatusBadge(ref.Minor, ref.Major.Status, rollup.Required, rollup.Applied),
		Required:       rollup.Required,
		Applied:        rollup.Applied,
	}
	if ref.Major.ScheduledDate != nil {
		summary.DDay = DDayLabel(*ref.Major.ScheduledDate, now)
	}
	return summary
}

func minorUpdatedAt(refs []MinorRef, minorID string) time.Time {
	for _, ref := range refs {
		if ref.Minor.ID == minorID {
			return ref.Minor.UpdatedAt
		}
	}
	return time.Time{}
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
