package audit

import "time"

type Action string

const (
	ActionProfile Action = "profile"
	ActionPhoto   Action = "photo"
)

// Entry is one immutable audit record of a sensitive field change.
// Entries are only ever created and listed, never updated or deleted.
type Entry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	ActorID   *int64    `gorm:"index" json:"actor_id,omitempty"`
	Action    Action    `gorm:"not null" json:"action"`
	Field     string    `gorm:"not null" json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_log" }
