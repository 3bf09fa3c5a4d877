package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/metrics"
	"github.com/Ali506108/Chat-Service/internal/models"
)

// Recent queries accept limits in [1, MaxRecentLimit] only.
const MaxRecentLimit = 1000

const messageOpTimeout = 5 * time.Second

// MessageStore is the slice of the message log the service needs.
type MessageStore interface {
	Save(ctx context.Context, m *models.Message) (*models.Message, error)
	FindByID(ctx context.Context, id string) (*models.Message, error)
	FindByChat(ctx context.Context, chatID string) ([]*models.Message, error)
	FindRecent(ctx context.Context, chatID string, limit int64) ([]*models.Message, error)
}

// EventPublisher emits persisted messages to downstream consumers.
type EventPublisher interface {
	PublishMessageSaved(ctx context.Context, chatID string, payload []byte) error
}

// MessageService validates and persists chat messages. It never retries;
// a failed save is the caller's to drop or resubmit.
type MessageService struct {
	store  MessageStore
	events EventPublisher
	log    *zap.SugaredLogger
}

// NewMessageService wires the service. events may be nil when no broker
// is configured.
func NewMessageService(store MessageStore, events EventPublisher, log *zap.SugaredLogger) *MessageService {
	return &MessageService{store: store, events: events, log: log}
}

// Send persists one message under a bounded deadline. The kafka record
// for the saved message is best effort and logged on failure.
func (s *MessageService) Send(ctx context.Context, m *models.Message) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, messageOpTimeout)
	defer cancel()

	saved, err := s.store.Save(ctx, m)
	if err != nil {
		return nil, apperr.Persistence("save message", m.MessageID, err)
	}
	metrics.MessagesSaved.Inc()

	if s.events != nil {
		if payload, err := json.Marshal(saved); err == nil {
			if err := s.events.PublishMessageSaved(ctx, saved.ChatID, payload); err != nil {
				s.log.Warnw("message event publish failed", "message_id", saved.MessageID, "err", err)
			}
		}
	}
	return saved, nil
}

func (s *MessageService) Get(ctx context.Context, id string) (*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, messageOpTimeout)
	defer cancel()

	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Lookup("get message", id, err)
	}
	return m, nil
}

// ListByChat scans the whole partition. Administrative use only; bounded
// reads go through Recent.
func (s *MessageService) ListByChat(ctx context.Context, chatID string) ([]*models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, messageOpTimeout)
	defer cancel()

	msgs, err := s.store.FindByChat(ctx, chatID)
	if err != nil {
		return nil, apperr.Lookup("list messages for chat", chatID, err)
	}
	return msgs, nil
}

// Recent returns at most limit messages for the chat, newest first. An
// out-of-range limit is rejected before any store round trip.
func (s *MessageService) Recent(ctx context.Context, chatID string, limit int) ([]*models.Message, error) {
	if limit < 1 || limit > MaxRecentLimit {
		return nil, apperr.Invalid("limit must be in 1..%d, got %d", MaxRecentLimit, limit)
	}

	ctx, cancel := context.WithTimeout(ctx, messageOpTimeout)
	defer cancel()

	msgs, err := s.store.FindRecent(ctx, chatID, int64(limit))
	if err != nil {
		return nil, apperr.Lookup("recent messages for chat", chatID, err)
	}
	return msgs, nil
}
