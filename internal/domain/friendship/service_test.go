package friendship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"photoshare/internal/domain/profile"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateRequest(ctx context.Context, req *FriendRequest) error {
	args := m.Called(ctx, req)
	if req != nil {
		req.ID = 999
	}
	return args.Error(0)
}

func (m *MockRepository) GetRequest(ctx context.Context, id int64) (*FriendRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FriendRequest), args.Error(1)
}

func (m *MockRepository) GetRequestByPair(ctx context.Context, fromUserID, toUserID int64) (*FriendRequest, error) {
	args := m.Called(ctx, fromUserID, toUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FriendRequest), args.Error(1)
}

func (m *MockRepository) SetRequestStatus(ctx context.Context, id int64, status RequestStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) ListIncomingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]FriendRequest), args.Error(1)
}

func (m *MockRepository) ListOutgoingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]FriendRequest), args.Error(1)
}

func (m *MockRepository) Accept(ctx context.Context, req *FriendRequest, fromProfileID, toProfileID int64) error {
	args := m.Called(ctx, req, fromProfileID, toProfileID)
	return args.Error(0)
}

func (m *MockRepository) AreFriends(ctx context.Context, profileA, profileB int64) (bool, error) {
	args := m.Called(ctx, profileA, profileB)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListFriendProfileIDs(ctx context.Context, profileID int64) ([]int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).([]int64), args.Error(1)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) Get(ctx context.Context, userID int64) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func photographerProfile(id, userID int64) *profile.Profile {
	return &profile.Profile{ID: id, UserID: userID, Role: profile.RolePhotographer}
}

func TestSendRequest_Self(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockProfiles))

	_, err := svc.SendRequest(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestSendRequest_VisitorRejected(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).
		Return(&profile.Profile{ID: 10, UserID: 1, Role: profile.RoleVisitor}, nil)

	svc := NewService(repo, profiles)

	_, err := svc.SendRequest(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrVisitorRole)
	repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("AreFriends", mock.Anything, int64(10), int64(20)).Return(true, nil)

	svc := NewService(repo, profiles)

	_, err := svc.SendRequest(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestSendRequest_CreatesNew(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("AreFriends", mock.Anything, int64(10), int64(20)).Return(false, nil)
	repo.On("GetRequestByPair", mock.Anything, int64(1), int64(2)).Return(nil, ErrRequestNotFound)
	repo.On("CreateRequest", mock.Anything, mock.AnythingOfType("*friendship.FriendRequest")).Return(nil)

	svc := NewService(repo, profiles)

	req, err := svc.SendRequest(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.Equal(t, int64(1), req.FromUserID)
	assert.Equal(t, int64(2), req.ToUserID)
	repo.AssertExpectations(t)
}

func TestSendRequest_ReactivatesDeclined(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("AreFriends", mock.Anything, int64(10), int64(20)).Return(false, nil)
	declined := &FriendRequest{ID: 5, FromUserID: 1, ToUserID: 2, Status: StatusDeclined}
	repo.On("GetRequestByPair", mock.Anything, int64(1), int64(2)).Return(declined, nil)
	repo.On("SetRequestStatus", mock.Anything, int64(5), StatusPending).Return(nil)

	svc := NewService(repo, profiles)

	req, err := svc.SendRequest(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), req.ID, "declined request is re-used, not duplicated")
	assert.Equal(t, StatusPending, req.Status)
	repo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestAccept_OnlyRecipient(t *testing.T) {
	repo := new(MockRepository)
	pending := &FriendRequest{ID: 5, FromUserID: 1, ToUserID: 2, Status: StatusPending}
	repo.On("GetRequest", mock.Anything, int64(5)).Return(pending, nil)

	svc := NewService(repo, new(MockProfiles))

	err := svc.Accept(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrNotRecipient)
	repo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccept_CreatesSymmetricEdges(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	pending := &FriendRequest{ID: 5, FromUserID: 1, ToUserID: 2, Status: StatusPending}
	repo.On("GetRequest", mock.Anything, int64(5)).Return(pending, nil)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("Accept", mock.Anything, pending, int64(10), int64(20)).Return(nil)

	svc := NewService(repo, profiles)

	assert.NoError(t, svc.Accept(context.Background(), 2, 5))
	repo.AssertExpectations(t)
}

func TestDecline_RecipientAndStaff(t *testing.T) {
	repo := new(MockRepository)
	pending := &FriendRequest{ID: 5, FromUserID: 1, ToUserID: 2, Status: StatusPending}
	repo.On("GetRequest", mock.Anything, int64(5)).Return(pending, nil)
	repo.On("SetRequestStatus", mock.Anything, int64(5), StatusDeclined).Return(nil)

	svc := NewService(repo, new(MockProfiles))

	assert.ErrorIs(t, svc.Decline(context.Background(), 3, false, 5), ErrNotRecipient)
	assert.NoError(t, svc.Decline(context.Background(), 3, true, 5), "staff may decline")
	assert.NoError(t, svc.Decline(context.Background(), 2, false, 5))
}

func TestDecline_NotPending(t *testing.T) {
	repo := new(MockRepository)
	accepted := &FriendRequest{ID: 5, FromUserID: 1, ToUserID: 2, Status: StatusAccepted}
	repo.On("GetRequest", mock.Anything, int64(5)).Return(accepted, nil)

	svc := NewService(repo, new(MockProfiles))

	assert.ErrorIs(t, svc.Decline(context.Background(), 2, false, 5), ErrNotPending)
}

func TestListFriends_ResolvesProfile(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	repo.On("ListFriendProfileIDs", mock.Anything, int64(10)).Return([]int64{20, 30}, nil)

	svc := NewService(repo, profiles)

	ids, err := svc.ListFriends(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []int64{20, 30}, ids)
}

func TestFriendDetail_SelfAlwaysVisible(t *testing.T) {
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)

	svc := NewService(new(MockRepository), profiles)

	p, err := svc.FriendDetail(context.Background(), 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
}

func TestFriendDetail_NonFriendForbidden(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("AreFriends", mock.Anything, int64(10), int64(20)).Return(false, nil)

	svc := NewService(repo, profiles)

	_, err := svc.FriendDetail(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrNotFriends)
}

func TestFriendDetail_FriendVisible(t *testing.T) {
	repo := new(MockRepository)
	profiles := new(MockProfiles)
	profiles.On("Get", mock.Anything, int64(1)).Return(photographerProfile(10, 1), nil)
	profiles.On("Get", mock.Anything, int64(2)).Return(photographerProfile(20, 2), nil)
	repo.On("AreFriends", mock.Anything, int64(10), int64(20)).Return(true, nil)

	svc := NewService(repo, profiles)

	p, err := svc.FriendDetail(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), p.UserID)
}
