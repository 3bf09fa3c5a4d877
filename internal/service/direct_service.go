package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Ali506108/Chat-Service/internal/apperr"
	"github.com/Ali506108/Chat-Service/internal/models"
)

// DirectStore is the registry of two-party conversations.
type DirectStore interface {
	Save(ctx context.Context, d *models.Direct) (*models.Direct, error)
	FindByID(ctx context.Context, chatID string) (*models.Direct, error)
}

// DirectService registers and resolves direct chats. Their messages flow
// through the same log and pump as group chats, keyed by the chat id
// assigned here.
type DirectService struct {
	repo DirectStore
	now  func() time.Time
}

func NewDirectService(repo DirectStore) *DirectService {
	return &DirectService{repo: repo, now: time.Now}
}

func (s *DirectService) Create(ctx context.Context, senderID, receiverID string) (*models.Direct, error) {
	if senderID == "" || receiverID == "" {
		return nil, apperr.Invalid("both participants are required")
	}
	ctx, cancel := context.WithTimeout(ctx, groupWriteTimeout)
	defer cancel()

	d := &models.Direct{
		ChatID:         uuid.NewString(),
		SenderUserID:   senderID,
		ReceiverUserID: receiverID,
		CreatedAt:      s.now().UTC(),
	}
	saved, err := s.repo.Save(ctx, d)
	if err != nil {
		return nil, apperr.Persistence("create direct chat", d.ChatID, err)
	}
	return saved, nil
}

func (s *DirectService) GetByID(ctx context.Context, chatID string) (*models.Direct, error) {
	ctx, cancel := context.WithTimeout(ctx, groupReadTimeout)
	defer cancel()

	d, err := s.repo.FindByID(ctx, chatID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, err
		}
		return nil, apperr.Lookup("get direct chat", chatID, err)
	}
	return d, nil
}
