package message

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, msg *Message) error {
	args := m.Called(ctx, msg)
	if msg != nil {
		msg.ID = 999
	}
	return args.Error(0)
}

func (m *MockRepository) Thread(ctx context.Context, userID, otherID int64) ([]Message, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Get(0).([]Message), args.Error(1)
}

func (m *MockRepository) MarkThreadRead(ctx context.Context, userID, otherID int64) error {
	args := m.Called(ctx, userID, otherID)
	return args.Error(0)
}

func (m *MockRepository) Inbox(ctx context.Context, userID int64) ([]InboxEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]InboxEntry), args.Error(1)
}

type MockFriends struct {
	mock.Mock
}

func (m *MockFriends) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func TestSend_RequiresFriendship(t *testing.T) {
	repo := new(MockRepository)
	friends := new(MockFriends)
	friends.On("AreFriends", mock.Anything, int64(1), int64(2)).Return(false, nil)

	svc := NewService(repo, friends)

	_, err := svc.Send(context.Background(), 1, 2, "hi")
	assert.ErrorIs(t, err, ErrNotFriends)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSend_Success(t *testing.T) {
	repo := new(MockRepository)
	friends := new(MockFriends)
	friends.On("AreFriends", mock.Anything, int64(1), int64(2)).Return(true, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*message.Message")).Return(nil)

	svc := NewService(repo, friends)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	msg, err := svc.Send(context.Background(), 1, 2, "  hi  ")
	assert.NoError(t, err)
	assert.Equal(t, "hi", msg.Content, "content is trimmed")
	assert.Equal(t, int64(1), msg.SenderID)
	assert.Equal(t, int64(2), msg.RecipientID)
}

func TestSend_Rejections(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockFriends))

	_, err := svc.Send(context.Background(), 1, 1, "hi")
	assert.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.Send(context.Background(), 1, 2, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestThread_MarksRead(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Thread", mock.Anything, int64(1), int64(2)).Return([]Message{{ID: 5}}, nil)
	repo.On("MarkThreadRead", mock.Anything, int64(1), int64(2)).Return(nil)

	svc := NewService(repo, new(MockFriends))

	msgs, err := svc.Thread(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	repo.AssertExpectations(t)
}
