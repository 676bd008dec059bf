package profile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, p *Profile) error

	CreateDobRequest(ctx context.Context, req *DobChangeRequest) error
	GetDobRequest(ctx context.Context, id int64) (*DobChangeRequest, error)
	HasPendingDobRequest(ctx context.Context, userID int64) (bool, error)
	ListPendingDobRequests(ctx context.Context) ([]DobChangeRequest, error)

	// ResolveDobRequest updates the request and the owning profile in one
	// transaction. When apply is true the requested dob is written to the
	// profile; the pending flag is cleared either way.
	ResolveDobRequest(ctx context.Context, req *DobChangeRequest, apply bool, resolvedBy int64, now time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) CreateDobRequest(ctx context.Context, req *DobChangeRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return tx.Model(&Profile{}).
			Where("user_id = ?", req.UserID).
			Update("dob_change_pending", true).Error
	})
}

func (r *repository) GetDobRequest(ctx context.Context, id int64) (*DobChangeRequest, error) {
	var req DobChangeRequest
	err := r.db.WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) HasPendingDobRequest(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DobChangeRequest{}).
		Where("user_id = ? AND status = ?", userID, DobRequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListPendingDobRequests(ctx context.Context) ([]DobChangeRequest, error) {
	var reqs []DobChangeRequest
	err := r.db.WithContext(ctx).
		Where("status = ?", DobRequestPending).
		Order("created_at ASC").
		Find(&reqs).Error
	return reqs, err
}

func (r *repository) ResolveDobRequest(ctx context.Context, req *DobChangeRequest, apply bool, resolvedBy int64, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if apply {
			req.Status = DobRequestApproved
		} else {
			req.Status = DobRequestDeclined
		}
		req.ResolvedAt = &now
		req.ResolvedBy = &resolvedBy
		if err := tx.Save(req).Error; err != nil {
			return err
		}

		updates := map[string]any{"dob_change_pending": false}
		if apply {
			updates["date_of_birth"] = req.RequestedDob
		}
		return tx.Model(&Profile{}).
			Where("user_id = ?", req.UserID).
			Updates(updates).Error
	})
}
