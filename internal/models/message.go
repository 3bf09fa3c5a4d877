package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat line. Messages are partitioned by ChatID and
// clustered by MessageID, which must sort in time order.
type Message struct {
	MessageID string    `bson:"_id,omitempty" json:"messageId,omitempty"`
	ChatID    string    `bson:"chat_id" json:"chatId"`
	SenderID  string    `bson:"sender_id" json:"senderId"`
	Content   string    `bson:"content" json:"content"`
	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NewMessageID returns a fresh time-sortable message identifier. UUIDv7
// encodes a millisecond timestamp in its high bits, so lexical order of
// the string form follows arrival order and a descending sort over
// message ids yields newest-first.
func NewMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; a v4 id keeps
		// the message unique even if it loses its sort position.
		return uuid.NewString()
	}
	return id.String()
}

// Prepare fills server-assigned fields the client left empty.
func (m *Message) Prepare(now time.Time) {
	if m.MessageID == "" {
		m.MessageID = NewMessageID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
}
