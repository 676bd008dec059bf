package friendship

import (
	"context"
	"errors"

	"photoshare/internal/domain/profile"
)

// ProfileGetter resolves the profile belonging to a user.
type ProfileGetter interface {
	Get(ctx context.Context, userID int64) (*profile.Profile, error)
}

type Service struct {
	repo     Repository
	profiles ProfileGetter
}

func NewService(repo Repository, profiles ProfileGetter) *Service {
	return &Service{repo: repo, profiles: profiles}
}

// SendRequest starts a connection request from one user to another. Visitors
// cannot send requests, self-requests are rejected, an existing friendship is
// reported as already-connected, and a previously declined request for the
// same ordered pair is re-activated instead of duplicated.
func (s *Service) SendRequest(ctx context.Context, fromUserID, toUserID int64) (*FriendRequest, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfRequest
	}

	fromProfile, err := s.profiles.Get(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	if fromProfile.Role == profile.RoleVisitor {
		return nil, ErrVisitorRole
	}

	toProfile, err := s.profiles.Get(ctx, toUserID)
	if err != nil {
		return nil, err
	}

	friends, err := s.repo.AreFriends(ctx, fromProfile.ID, toProfile.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	existing, err := s.repo.GetRequestByPair(ctx, fromUserID, toUserID)
	if err != nil && !errors.Is(err, ErrRequestNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == StatusDeclined {
			if err := s.repo.SetRequestStatus(ctx, existing.ID, StatusPending); err != nil {
				return nil, err
			}
			existing.Status = StatusPending
		}
		return existing, nil
	}

	req := &FriendRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     StatusPending,
	}
	if err := s.repo.CreateRequest(ctx, req); err != nil {
		// Lost a race against a concurrent send for the same pair.
		if errors.Is(err, ErrDuplicateRequest) {
			return s.repo.GetRequestByPair(ctx, fromUserID, toUserID)
		}
		return nil, err
	}
	return req, nil
}

// Accept transitions a pending request to accepted and establishes the
// symmetric friendship, both as a single transaction. Only the recipient may
// accept.
func (s *Service) Accept(ctx context.Context, actorUserID, requestID int64) error {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != actorUserID {
		return ErrNotRecipient
	}
	if req.Status != StatusPending {
		return ErrNotPending
	}

	fromProfile, err := s.profiles.Get(ctx, req.FromUserID)
	if err != nil {
		return err
	}
	toProfile, err := s.profiles.Get(ctx, req.ToUserID)
	if err != nil {
		return err
	}

	return s.repo.Accept(ctx, req, fromProfile.ID, toProfile.ID)
}

// Decline marks a pending request declined. The recipient or a staff actor may
// decline; the friend set is never touched.
func (s *Service) Decline(ctx context.Context, actorUserID int64, actorIsStaff bool, requestID int64) error {
	req, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ToUserID != actorUserID && !actorIsStaff {
		return ErrNotRecipient
	}
	if req.Status != StatusPending {
		return ErrNotPending
	}

	return s.repo.SetRequestStatus(ctx, req.ID, StatusDeclined)
}

// AreFriends reports whether two users' profiles share a friendship edge.
func (s *Service) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	profileA, err := s.profiles.Get(ctx, userA)
	if err != nil {
		return false, err
	}
	profileB, err := s.profiles.Get(ctx, userB)
	if err != nil {
		return false, err
	}
	return s.repo.AreFriends(ctx, profileA.ID, profileB.ID)
}

func (s *Service) ListFriendProfileIDs(ctx context.Context, profileID int64) ([]int64, error) {
	return s.repo.ListFriendProfileIDs(ctx, profileID)
}

// ListFriends returns the profile ids in the caller's friend set.
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]int64, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListFriendProfileIDs(ctx, p.ID)
}

// FriendDetail returns another user's profile, visible only to friends or the
// user themselves.
func (s *Service) FriendDetail(ctx context.Context, viewerUserID, targetUserID int64) (*profile.Profile, error) {
	target, err := s.profiles.Get(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if viewerUserID == targetUserID {
		return target, nil
	}

	friends, err := s.AreFriends(ctx, viewerUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}
	return target, nil
}

func (s *Service) ListIncomingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	return s.repo.ListIncomingPending(ctx, userID)
}

func (s *Service) ListOutgoingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	return s.repo.ListOutgoingPending(ctx, userID)
}
