package share

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	GetByToken(ctx context.Context, token string) (*Transfer, error)
	GetByID(ctx context.Context, id int64) (*Transfer, error)
	FindActiveByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*Transfer, error)
	FindLatestActiveByEmail(ctx context.Context, email string, now time.Time) (*Transfer, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Transfer, error)
	UpdateCode(ctx context.Context, id int64, code string, codeExpiresAt time.Time) error
	SetDownloadedAt(ctx context.Context, id int64, at time.Time) (bool, error)
	SetWarningSentAt(ctx context.Context, id int64, at time.Time) (bool, error)
	ListWarningCandidates(ctx context.Context, now time.Time) ([]Transfer, error)
	ListExpired(ctx context.Context, now time.Time) ([]Transfer, error)
	Delete(ctx context.Context, id int64) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Create persists the transfer and all of its file records in one
// transaction; a partial write never survives.
func (r *gormRepository) Create(ctx context.Context, t *Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
}

func (r *gormRepository) GetByToken(ctx context.Context, token string) (*Transfer, error) {
	var t Transfer
	err := r.db.WithContext(ctx).Preload("Files").Where("token = ?", token).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) GetByID(ctx context.Context, id int64) (*Transfer, error) {
	var t Transfer
	err := r.db.WithContext(ctx).Preload("Files").First(&t, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindActiveByEmailAndCode resolves the email+code login path. If several
// live transfers for the same recipient share a code, the most recent wins.
func (r *gormRepository) FindActiveByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*Transfer, error) {
	var t Transfer
	err := r.db.WithContext(ctx).
		Preload("Files").
		Where("recipient_email = ? AND code = ? AND expires_at > ?", email, code, now).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindLatestActiveByEmail backs the "lost my code" path: the newest live
// transfer for the recipient, regardless of the current code.
func (r *gormRepository) FindLatestActiveByEmail(ctx context.Context, email string, now time.Time) (*Transfer, error) {
	var t Transfer
	err := r.db.WithContext(ctx).
		Where("recipient_email = ? AND expires_at > ?", email, now).
		Order("created_at DESC").
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *gormRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Transfer, error) {
	var transfers []Transfer
	err := r.db.WithContext(ctx).
		Preload("Files").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&transfers).Error
	return transfers, err
}

// UpdateCode swaps the code and its expiry in a single write so readers
// never see a fresh code paired with a stale deadline.
func (r *gormRepository) UpdateCode(ctx context.Context, id int64, code string, codeExpiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&Transfer{}).
		Where("id = ?", id).
		Updates(map[string]any{"code": code, "code_expires_at": codeExpiresAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDownloadedAt records the first download. The WHERE guard makes the
// transition exactly-once even under concurrent downloads: only the request
// that flips the row gets true back.
func (r *gormRepository) SetDownloadedAt(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Transfer{}).
		Where("id = ? AND downloaded_at IS NULL", id).
		Update("downloaded_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SetWarningSentAt claims the warning slot; same exactly-once guard as
// SetDownloadedAt so concurrent sweeps cannot double-send.
func (r *gormRepository) SetWarningSentAt(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&Transfer{}).
		Where("id = ? AND warning_sent_at IS NULL", id).
		Update("warning_sent_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) ListWarningCandidates(ctx context.Context, now time.Time) ([]Transfer, error) {
	var transfers []Transfer
	err := r.db.WithContext(ctx).
		Where("downloaded_at IS NULL AND warning_sent_at IS NULL AND expires_at > ? AND expires_at <= ?",
			now, now.Add(WarningWindow)).
		Find(&transfers).Error
	return transfers, err
}

func (r *gormRepository) ListExpired(ctx context.Context, now time.Time) ([]Transfer, error) {
	var transfers []Transfer
	err := r.db.WithContext(ctx).
		Preload("Files").
		Where("expires_at <= ?", now).
		Find(&transfers).Error
	return transfers, err
}

func (r *gormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transfer_id = ?", id).Delete(&TransferFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Transfer{}, id).Error
	})
}
