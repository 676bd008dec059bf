package message

import "time"

// Message is a direct message between two users. Threads are derived, not
// stored: a thread is just the set of messages exchanged with one counterpart.
type Message struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	SenderID    int64     `gorm:"not null;index:idx_msg_pair" json:"sender_id"`
	RecipientID int64     `gorm:"not null;index:idx_msg_pair" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}
