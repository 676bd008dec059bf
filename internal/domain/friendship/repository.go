package friendship

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	CreateRequest(ctx context.Context, req *FriendRequest) error
	GetRequest(ctx context.Context, id int64) (*FriendRequest, error)
	GetRequestByPair(ctx context.Context, fromUserID, toUserID int64) (*FriendRequest, error)
	SetRequestStatus(ctx context.Context, id int64, status RequestStatus) error
	ListIncomingPending(ctx context.Context, userID int64) ([]FriendRequest, error)
	ListOutgoingPending(ctx context.Context, userID int64) ([]FriendRequest, error)

	// Accept flips the request to accepted and inserts both friendship edges
	// in one transaction.
	Accept(ctx context.Context, req *FriendRequest, fromProfileID, toProfileID int64) error

	AreFriends(ctx context.Context, profileA, profileB int64) (bool, error)
	ListFriendProfileIDs(ctx context.Context, profileID int64) ([]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRequest(ctx context.Context, req *FriendRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isDuplicateError(err) {
			return ErrDuplicateRequest
		}
		return err
	}
	return nil
}

func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (r *repository) GetRequest(ctx context.Context, id int64) (*FriendRequest, error) {
	var req FriendRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) GetRequestByPair(ctx context.Context, fromUserID, toUserID int64) (*FriendRequest, error) {
	var req FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) SetRequestStatus(ctx context.Context, id int64, status RequestStatus) error {
	return r.db.WithContext(ctx).
		Model(&FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) ListIncomingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	var reqs []FriendRequest
	err := r.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, StatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ListOutgoingPending(ctx context.Context, userID int64) ([]FriendRequest, error) {
	var reqs []FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_user_id = ? AND status = ?", userID, StatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) Accept(ctx context.Context, req *FriendRequest, fromProfileID, toProfileID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&FriendRequest{}).
			Where("id = ?", req.ID).
			Update("status", StatusAccepted).Error; err != nil {
			return err
		}

		edges := []Friendship{
			{ProfileID: fromProfileID, FriendProfileID: toProfileID},
			{ProfileID: toProfileID, FriendProfileID: fromProfileID},
		}
		return tx.Create(&edges).Error
	})
}

func (r *repository) AreFriends(ctx context.Context, profileA, profileB int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Friendship{}).
		Where("profile_id = ? AND friend_profile_id = ?", profileA, profileB).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListFriendProfileIDs(ctx context.Context, profileID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&Friendship{}).
		Where("profile_id = ?", profileID).
		Pluck("friend_profile_id", &ids).Error
	return ids, err
}
