package services

import (
	"errors"

	"github.com/sweeply/fieldops/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyApplied      = errors.New("master already applied to this minor project")
	ErrParticipantNotFound = errors.New("participant not found")
)

type ParticipantService struct {
	db    *gorm.DB
	queue TaskQueue
}

func NewParticipantService(db *gorm.DB, queue TaskQueue) *ParticipantService {
	return &ParticipantService{db: db, queue: queue}
}

// Apply records a master's application against a minor project. The apply
// action is idempotent-gated: an existing applied or approved record blocks
// a second application; a rejected master may apply again.
func (s *ParticipantService) Apply(minorProjectID, masterID string) (*models.Participant, error) {
	var minor models.MinorProject
	if err := s.db.Preload("Participants").First(&minor, "id = ?", minorProjectID).Error; err != nil {
		return nil, ErrProjectNotFound
	}

	state := MasterApplyState(minor.Participants, masterID)
	if !state.CanApply {
		return nil, ErrAlreadyApplied
	}

	participant := models.Participant{
		MinorProjectID: minorProjectID,
		MasterID:       masterID,
		Status:         models.ParticipantApplied,
	}
	if err := s.db.Create(&participant).Error; err != nil {
		return nil, err
	}

	LogInfo("participant", "apply", "master applied to minor "+minorProjectID, &masterID, "", "", nil)
	return &participant, nil
}

// Approve moves an application to approved and notifies the master.
func (s *ParticipantService) Approve(id, actedBy string) (*models.Participant, error) {
	return s.decide(id, models.ParticipantApproved, actedBy)
}

// Reject moves an application to rejected and notifies the master.
func (s *ParticipantService) Reject(id, actedBy string) (*models.Participant, error) {
	return s.decide(id, models.ParticipantRejected, actedBy)
}

func (s *ParticipantService) decide(id, to, actedBy string) (*models.Participant, error) {
	var participant models.Participant
	if err := s.db.First(&participant, "id = ?", id).Error; err != nil {
		return nil, ErrParticipantNotFound
	}

	if err := ValidateTransition(KindParticipant, participant.Status, to); err != nil {
		return nil, err
	}

	if err := s.db.Model(&participant).Update("status", to).Error; err != nil {
		return nil, err
	}
	participant.Status = to

	LogInfo("participant", "decide", "participant "+id+" -> "+to, &actedBy, "", "", nil)

	if s.queue != nil {
		notifyType := models.NotifyApplicantApproved
		body := "지원이 승인되었습니다."
		if to == models.ParticipantRejected {
			notifyType = models.NotifyApplicantRejected
			body = "지원이 반려되었습니다."
		}
		task := &NotifyTask{
			Type:           notifyType,
			RecipientID:    participant.MasterID,
			Title:          "지원 결과 안내",
			Body:           body,
			MinorProjectID: &participant.MinorProjectID,
		}
		if err := s.queue.Enqueue(task); err != nil {
			LogError("participant", "notify_decision", err.Error(), &actedBy, "", "", nil)
		}
	}

	return &participant, nil
}

// ApplyStateFor exposes a master's personal state against a minor project,
// so the client can gate the apply button without re-deriving the rule.
func (s *ParticipantService) ApplyStateFor(minorProjectID, masterID string) (*ApplyState, error) {
	var participants []models.Participant
	if err := s.db.Where("minor_project_id = ?", minorProjectID).Find(&participants).Error; err != nil {
		return nil, err
	}
	state := MasterApplyState(participants, masterID)
	return &state, nil
}
