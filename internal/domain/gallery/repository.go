package gallery

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ListOptions struct {
	CategoryID *int64
	OwnerID    *int64
	Limit      int
	Offset     int
}

type Repository interface {
	CreatePhoto(ctx context.Context, photo *Photo, allowedProfileIDs []int64) error
	GetPhoto(ctx context.Context, id int64) (*Photo, error)
	UpdatePhoto(ctx context.Context, photo *Photo, allowedProfileIDs []int64) error
	DeletePhoto(ctx context.Context, id int64) error
	ListPhotos(ctx context.Context, scope func(*gorm.DB) *gorm.DB, opts ListOptions) ([]Photo, error)
	ListPhotosByIDs(ctx context.Context, ids []int64, ownerID *int64) ([]Photo, error)

	ToggleLike(ctx context.Context, photoID, userID int64) (liked bool, err error)
	CountLikes(ctx context.Context, photoID int64) (int64, error)
	HasLiked(ctx context.Context, photoID, userID int64) (bool, error)

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, id int64) (*Comment, error)
	DeleteComment(ctx context.Context, id int64) error
	ListComments(ctx context.Context, photoID int64) ([]Comment, error)

	CreateCategory(ctx context.Context, category *Category) error
	GetCategory(ctx context.Context, id int64) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePhoto(ctx context.Context, photo *Photo, allowedProfileIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
		return replaceAllowedFriends(tx, photo.ID, allowedProfileIDs)
	})
}

func (r *repository) GetPhoto(ctx context.Context, id int64) (*Photo, error) {
	var photo Photo
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("AllowedFriends").
		First(&photo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *repository) UpdatePhoto(ctx context.Context, photo *Photo, allowedProfileIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AllowedFriends", "Category").Save(photo).Error; err != nil {
			return err
		}
		if allowedProfileIDs == nil {
			return nil
		}
		return replaceAllowedFriends(tx, photo.ID, allowedProfileIDs)
	})
}

func replaceAllowedFriends(tx *gorm.DB, photoID int64, profileIDs []int64) error {
	if err := tx.Where("photo_id = ?", photoID).Delete(&PhotoFriend{}).Error; err != nil {
		return err
	}
	if len(profileIDs) == 0 {
		return nil
	}
	rows := make([]PhotoFriend, 0, len(profileIDs))
	for _, pid := range profileIDs {
		rows = append(rows, PhotoFriend{PhotoID: photoID, ProfileID: pid})
	}
	return tx.Create(&rows).Error
}

// DeletePhoto removes the photo and everything hanging off it. The caller is
// responsible for deleting the stored blob first.
func (r *repository) DeletePhoto(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("photo_id = ?", id).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("photo_id = ?", id).Delete(&PhotoFriend{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Photo{}, id).Error
	})
}

func (r *repository) ListPhotos(ctx context.Context, scope func(*gorm.DB) *gorm.DB, opts ListOptions) ([]Photo, error) {
	q := r.db.WithContext(ctx).Model(&Photo{}).Scopes(scope)

	if opts.CategoryID != nil {
		q = q.Where("photos.category_id = ?", *opts.CategoryID)
	}
	if opts.OwnerID != nil {
		q = q.Where("photos.owner_id = ?", *opts.OwnerID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}

	var photos []Photo
	err := q.Preload("Category").
		Order("photos.captured_on DESC, photos.created_at DESC").
		Find(&photos).Error
	return photos, err
}

func (r *repository) ListPhotosByIDs(ctx context.Context, ids []int64, ownerID *int64) ([]Photo, error) {
	q := r.db.WithContext(ctx).Where("id IN ?", ids)
	if ownerID != nil {
		q = q.Where("owner_id = ?", *ownerID)
	}
	var photos []Photo
	err := q.Find(&photos).Error
	return photos, err
}

// ToggleLike removes an existing like or creates a missing one. The unique
// (photo,user) index is the backstop under concurrent double-clicks: a
// duplicate-key race means the like already exists and is handled as the
// existing-like case.
func (r *repository) ToggleLike(ctx context.Context, photoID, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Delete(&Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Create(&Like{PhotoID: photoID, UserID: userID}).Error
	if err != nil && isDuplicateError(err) {
		err = r.db.WithContext(ctx).
			Where("photo_id = ? AND user_id = ?", photoID, userID).
			Delete(&Like{}).Error
		return false, err
	}
	return err == nil, err
}

func (r *repository) CountLikes(ctx context.Context, photoID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Like{}).
		Where("photo_id = ?", photoID).
		Count(&count).Error
	return count, err
}

func (r *repository) HasLiked(ctx context.Context, photoID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Like{}).
		Where("photo_id = ? AND user_id = ?", photoID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateComment(ctx context.Context, comment *Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *repository) GetComment(ctx context.Context, id int64) (*Comment, error) {
	var comment Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *repository) DeleteComment(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Comment{}, id).Error
	})
}

func (r *repository) ListComments(ctx context.Context, photoID int64) ([]Comment, error) {
	var comments []Comment
	err := r.db.WithContext(ctx).
		Where("photo_id = ?", photoID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) CreateCategory(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err != nil && isDuplicateError(err) {
		return ErrCategoryExists
	}
	return err
}

func (r *repository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var category Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *repository) UpdateCategory(ctx context.Context, category *Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory nulls out references instead of cascading: photos survive
// their category.
func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Photo{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Category{}, id).Error
	})
}

func isDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
