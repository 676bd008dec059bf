package message

import (
	"context"
	"strings"
	"time"
)

// FriendChecker reports whether two users are friends. Satisfied by the
// friendship service.
type FriendChecker interface {
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
}

type Service struct {
	repo    Repository
	friends FriendChecker
	now     func() time.Time
}

func NewService(repo Repository, friends FriendChecker) *Service {
	return &Service{repo: repo, friends: friends, now: time.Now}
}

// Send delivers a message to a friend. Messaging is restricted to accepted
// friendships, so strangers cannot open conversations.
func (s *Service) Send(ctx context.Context, senderID, recipientID int64, content string) (*Message, error) {
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	ok, err := s.friends.AreFriends(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFriends
	}

	m := &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Thread returns the full conversation with one counterpart and marks the
// counterpart's messages as read.
func (s *Service) Thread(ctx context.Context, userID, otherID int64) ([]Message, error) {
	msgs, err := s.repo.Thread(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkThreadRead(ctx, userID, otherID); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *Service) Inbox(ctx context.Context, userID int64) ([]InboxEntry, error) {
	return s.repo.Inbox(ctx, userID)
}
