package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sweeply/fieldops/internal/config"
	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/pkg/logger"
	"gorm.io/gorm"
)

// ReminderService sends schedule reminders for projects due tomorrow.
// It runs on a cron schedule, once per day by default.
type ReminderService struct {
	db    *gorm.DB
	queue TaskQueue
	cron  *cron.Cron
}

func NewReminderService(db *gorm.DB, queue TaskQueue) *ReminderService {
	return &ReminderService{db: db, queue: queue}
}

// Start registers the reminder job and starts the scheduler.
func (s *ReminderService) Start(cfg *config.ReminderConfig) error {
	if !cfg.Enabled {
		logger.Infof("[Reminder] Scheduler disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(cfg.CronSpec, func() {
		if err := s.Run(time.Now()); err != nil {
			logger.Errorf("[Reminder] Run failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.Infof("[Reminder] Scheduler started with spec %q", cfg.CronSpec)
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		logger.Infof("[Reminder] Scheduler stopped")
	}
}

// Run sends a reminder for every non-completed major project scheduled
// within the next day. Exposed for the admin trigger endpoint.
func (s *ReminderService) Run(now time.Time) error {
	dayStart := midnight(now.AddDate(0, 0, 1), now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var majors []models.MajorProject
	err := s.db.
		Preload("Minors.Participants").
		Where("status <> ?", models.MajorStatusCompleted).
		Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayEnd).
		Find(&majors).Error
	if err != nil {
		return err
	}

	sent := 0
	for i := range majors {
		major := &majors[i]
		for _, recipientID := range s.recipients(major) {
			task := &NotifyTask{
				Type:           models.NotifyScheduleReminder,
				RecipientID:    recipientID,
				Title:          "일정 안내",
				Body:           major.Title + " 일정이 " + DDayLabel(*major.ScheduledDate, now) + " 예정되어 있습니다.",
				MajorProjectID: &major.ID,
			}
			if err := s.queue.Enqueue(task); err != nil {
				LogError("reminder", "enqueue", err.Error(), nil, "", "", nil)
				continue
			}
			sent++
		}
	}

	logger.Infof("[Reminder] %d reminders sent for %d projects", sent, len(majors))
	return nil
}

// recipients collects the client, the manager if assigned, and every
// approved master across the project's minors, without duplicates.
func (s *ReminderService) recipients(major *models.MajorProject) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	add(major.ClientID)
	if major.ManagerID != nil {
		add(*major.ManagerID)
	}
	for _, minor := range major.Minors {
		for _, p := range DedupeParticipants(minor.Participants) {
			if p.Status == models.ParticipantApproved {
				add(p.MasterID)
			}
		}
	}
	return out
}
