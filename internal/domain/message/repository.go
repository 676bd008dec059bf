package message

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	Thread(ctx context.Context, userID, otherID int64) ([]Message, error)
	MarkThreadRead(ctx context.Context, userID, otherID int64) error
	Inbox(ctx context.Context, userID int64) ([]InboxEntry, error)
}

// InboxEntry is one conversation summary: the counterpart plus the newest
// message exchanged with them and how many of their messages are unread.
type InboxEntry struct {
	OtherUserID int64   `json:"other_user_id"`
	LastMessage Message `json:"last_message" gorm:"-"`
	UnreadCount int64   `json:"unread_count"`
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, m *Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *gormRepository) Thread(ctx context.Context, userID, otherID int64) ([]Message, error) {
	var msgs []Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *gormRepository) MarkThreadRead(ctx context.Context, userID, otherID int64) error {
	return r.db.WithContext(ctx).
		Model(&Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherID, userID, false).
		Update("is_read", true).Error
}

func (r *gormRepository) Inbox(ctx context.Context, userID int64) ([]InboxEntry, error) {
	type row struct {
		OtherUserID int64
		LastID      int64
		UnreadCount int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Raw(`
		SELECT other_user_id,
		       MAX(id) AS last_id,
		       SUM(CASE WHEN recipient_id = ? AND is_read = ? THEN 1 ELSE 0 END) AS unread_count
		FROM (
			SELECT id, is_read, recipient_id,
			       CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS other_user_id
			FROM messages
			WHERE sender_id = ? OR recipient_id = ?
		) t
		GROUP BY other_user_id
		ORDER BY last_id DESC`,
		userID, false, userID, userID, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []InboxEntry{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, rw := range rows {
		ids = append(ids, rw.LastID)
	}
	var last []Message
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&last).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]Message, len(last))
	for _, m := range last {
		byID[m.ID] = m
	}

	entries := make([]InboxEntry, 0, len(rows))
	for _, rw := range rows {
		entries = append(entries, InboxEntry{
			OtherUserID: rw.OtherUserID,
			LastMessage: byID[rw.LastID],
			UnreadCount: rw.UnreadCount,
		})
	}
	return entries, nil
}
