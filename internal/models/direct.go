package models

import "time"

// Direct is a two-party conversation registry entry. Messages for a
// direct chat live in the same partitioned log, keyed by ChatID.
type Direct struct {
	ChatID         string    `bson:"_id,omitempty" json:"chatId"`
	SenderUserID   string    `bson:"sender_user_id" json:"senderUserId"`
	ReceiverUserID string    `bson:"receiver_user_id" json:"receiverUserId"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
