package models

import "time"

// Group is a named multi-member conversation. The mongo record is the
// authoritative copy; redis holds a TTL-bounded shadow of it.
type Group struct {
	GroupID     string    `bson:"_id,omitempty" json:"groupId"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Admin       string    `bson:"admin" json:"admin"`
	Members     []string  `bson:"members" json:"members"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateGroupDto carries the client-settable group fields.
type CreateGroupDto struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Admin       string   `json:"admin"`
	Members     []string `json:"members"`
}
