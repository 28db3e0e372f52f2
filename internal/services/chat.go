package services

import (
	"context"
	"sort"

	"github.com/sweeply/fieldops/internal/models"
	"github.com/sweeply/fieldops/pkg/logger"
	"gorm.io/gorm"
)

// UnreadCounter is the collaborator contract for per-thread unread counts.
// Implementations may fail; callers fail open to 0.
type UnreadCounter interface {
	UnreadCount(ctx context.Context, minorProjectID, userID string) (int, error)
}

// RPCUnreadCounter calls the entity store's get_unread_message_count
// function.
type RPCUnreadCounter struct {
	db *gorm.DB
}

func NewRPCUnreadCounter(db *gorm.DB) *RPCUnreadCounter {
	return &RPCUnreadCounter{db: db}
}

func (r *RPCUnreadCounter) UnreadCount(ctx context.Context, minorProjectID, userID string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Raw("SELECT get_unread_message_count(?, ?)", minorProjectID, userID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ChatEntry is one row of the chat list: a visible minor project's thread
// with its latest message and unread count.
type ChatEntry struct {
	MinorProjectID string              `json:"minor_project_id"`
	Title          string              `json:"title"`
	MajorTitle     string              `json:"major_title"`
	LastMessage    *models.ChatMessage `json:"last_message,omitempty"`
	UnreadCount    int                 `json:"unread_count"`
}

// BuildChatList assembles chat entries for the given visible minor projects.
// lastByMinor maps minor project id to its most recent message. Unread
// lookups that fail are logged and counted as 0 so a chat-side outage never
// blocks the list. Entries are ordered most-recent-message-first; threads
// with no messages sort last; ties keep input order.
func BuildChatList(ctx context.Context, refs []MinorRef, lastByMinor map[string]models.ChatMessage, counter UnreadCounter, userID string) []ChatEntry {
	entries := make([]ChatEntry, 0, len(refs))
	for _, ref := range refs {
		entry := ChatEntry{
			MinorProjectID: ref.Minor.ID,
			Title:          ref.Minor.Title,
			MajorTitle:     ref.Major.Title,
		}
		if msg, ok := lastByMinor[ref.Minor.ID]; ok {
			m := msg
			entry.LastMessage = &m
		}
		if counter != nil {
			count, err := counter.UnreadCount(ctx, ref.Minor.ID, userID)
			if err != nil {
				logger.Warn().Err(err).
					Str("minor_project_id", ref.Minor.ID).
					Msg("unread count lookup failed, defaulting to 0")
				count = 0
			}
			entry.UnreadCount = count
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].LastMessage, entries[j].LastMessage
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return entries
}

// ChatService produces the chat list for a user's visible minor projects.
type ChatService struct {
	db      *gorm.DB
	counter UnreadCounter
}

func NewChatService(db *gorm.DB, counter UnreadCounter) *ChatService {
	if counter == nil {
		counter = NewRPCUnreadCounter(db)
	}
	return &ChatService{db: db, counter: counter}
}

// List returns the chat list for the given role and user.
func (s *ChatService) List(ctx context.Context, role, userID string) ([]ChatEntry, error) {
	var majors []models.MajorProject
	if err := s.db.WithContext(ctx).
		Preload("Minors.Participants").
		Find(&majors).Error; err != nil {
		return nil, err
	}

	refs := VisibleMinors(role, userID, majors)
	lastByMinor := s.latestMessages(ctx, refs)
	return BuildChatList(ctx, refs, lastByMinor, s.counter, userID), nil
}

// latestMessages fetches the most recent message per visible thread. A
// failed query is logged and treated as "no messages" rather than failing
// the whole chat list.
func (s *ChatService) latestMessages(ctx context.Context, refs []MinorRef) map[string]models.ChatMessage {
	if len(refs) == 0 {
		return nil
	}

	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.Minor.ID)
	}

	var messages []models.ChatMessage
	if err := s.db.WithContext(ctx).
		Where("minor_project_id IN ?", ids).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		logger.Error().Err(err).Msg("chat message fetch failed")
		LogError("chat", "latest_messages", err.Error(), nil, "", "", nil)
		return nil
	}

	lastByMinor := make(map[string]models.ChatMessage, len(ids))
	for _, msg := range messages {
		if _, ok := lastByMinor[msg.MinorProjectID]; !ok {
			lastByMinor[msg.MinorProjectID] = msg
		}
	}
	return lastByMinor
}
