package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"photoshare/internal/domain/audit"
	"photoshare/internal/domain/profile"
	"photoshare/internal/storage"
)

// MaxImageSize caps a single uploaded image.
const MaxImageSize = 20 * 1024 * 1024

// ImageNormalizer re-encodes raw image bytes to the platform's fixed format.
type ImageNormalizer interface {
	Normalize(raw []byte) ([]byte, error)
}

// ProfileGetter resolves the profile belonging to a user.
type ProfileGetter interface {
	Get(ctx context.Context, userID int64) (*profile.Profile, error)
}

type Service struct {
	repo       Repository
	blobs      storage.Storage
	normalizer ImageNormalizer
	profiles   ProfileGetter
	audit      audit.Recorder
	now        func() time.Time
}

func NewService(repo Repository, blobs storage.Storage, normalizer ImageNormalizer, profiles ProfileGetter, auditRec audit.Recorder) *Service {
	return &Service{
		repo:       repo,
		blobs:      blobs,
		normalizer: normalizer,
		profiles:   profiles,
		audit:      auditRec,
		now:        time.Now,
	}
}

// BuildViewer turns an authenticated user (or the absence of one) into the
// identity the visibility engine evaluates.
func (s *Service) BuildViewer(ctx context.Context, userID int64, authenticated bool) (Viewer, error) {
	if !authenticated {
		return Anonymous, nil
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return Viewer{Authenticated: true, UserID: userID}, nil
		}
		return Viewer{}, err
	}

	return Viewer{
		Authenticated: true,
		UserID:        userID,
		ProfileID:     p.ID,
		CanViewAdult:  p.CanViewAdult(s.now()),
	}, nil
}

func (s *Service) canUpload(ctx context.Context, userID int64, isStaff bool) error {
	if isStaff {
		return nil
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !p.CanUploadPortfolio() {
		return ErrRoleCannotUpload
	}
	return nil
}

// Upload normalizes and stores one or more images, creating a photo record
// per image. Each photo shares the submitted metadata.
func (s *Service) Upload(ctx context.Context, userID int64, isStaff bool, req UploadRequest, files []UploadFile) ([]Photo, error) {
	if err := s.canUpload(ctx, userID, isStaff); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	visibility := Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = VisibilityPublic
	}
	if !visibility.Valid() {
		return nil, fmt.Errorf("invalid visibility %q", req.Visibility)
	}

	var capturedOn *time.Time
	if req.CapturedOn != nil && *req.CapturedOn != "" {
		t, err := time.Parse("2006-01-02", *req.CapturedOn)
		if err != nil {
			return nil, fmt.Errorf("invalid captured_on: %w", err)
		}
		capturedOn = &t
	}

	if req.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	created := make([]Photo, 0, len(files))
	for _, f := range files {
		if int64(len(f.Data)) > MaxImageSize {
			return nil, ErrImageTooLarge
		}

		normalized, err := s.normalizer.Normalize(f.Data)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", f.Name, err)
		}

		path := s.imagePath(f.Name)
		if err := s.blobs.Save(ctx, path, bytes.NewReader(normalized), int64(len(normalized)), "image/jpeg"); err != nil {
			return nil, err
		}

		photo := Photo{
			OwnerID:     userID,
			Title:       req.Title,
			Description: req.Description,
			StoragePath: path,
			CapturedOn:  capturedOn,
			CategoryID:  req.CategoryID,
			Visibility:  visibility,
		}
		if err := s.repo.CreatePhoto(ctx, &photo, req.AllowedProfileIDs); err != nil {
			// keep storage consistent with the failed insert
			if delErr := s.blobs.Delete(ctx, path); delErr != nil {
				slog.Error("orphaned photo blob after failed insert", "path", path, "err", delErr)
			}
			return nil, err
		}
		created = append(created, photo)
	}
	return created, nil
}

func (s *Service) imagePath(original string) string {
	now := s.now()
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("portfolio/%d/%02d/%02d/%s_%s_1920.jpg",
		now.Year(), now.Month(), now.Day(), uuid.New().String(), base)
}

// GetDetail enforces the per-photo access rules, adult gate included, and
// returns the photo with its likes and comments.
func (s *Service) GetDetail(ctx context.Context, viewer Viewer, photoID int64) (*PhotoDetail, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if !CanView(viewer, photo) {
		return nil, ErrAccessDenied
	}

	likeCount, err := s.repo.CountLikes(ctx, photoID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListComments(ctx, photoID)
	if err != nil {
		return nil, err
	}

	var isLiked bool
	if viewer.Authenticated {
		isLiked, err = s.repo.HasLiked(ctx, photoID, viewer.UserID)
		if err != nil {
			return nil, err
		}
	}

	return &PhotoDetail{
		Photo:     photo,
		LikeCount: likeCount,
		IsLiked:   isLiked,
		Comments:  comments,
	}, nil
}

// OpenImage streams the stored image after the same access check as GetDetail.
func (s *Service) OpenImage(ctx context.Context, viewer Viewer, photoID int64) (io.ReadCloser, string, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, "", err
	}
	if !CanView(viewer, photo) {
		return nil, "", ErrAccessDenied
	}
	rc, err := s.blobs.Open(ctx, photo.StoragePath)
	if err != nil {
		return nil, "", err
	}
	return rc, photo.Title, nil
}

func (s *Service) List(ctx context.Context, viewer Viewer, categorySlug string, limit, offset int) ([]Photo, error) {
	opts := ListOptions{Limit: limit, Offset: offset}
	if categorySlug != "" {
		category, err := s.repo.GetCategoryBySlug(ctx, categorySlug)
		if err != nil {
			return nil, err
		}
		opts.CategoryID = &category.ID
	}
	return s.repo.ListPhotos(ctx, VisibleScope(viewer), opts)
}

// ListMine returns all of the owner's photos with no visibility or adult
// filtering. Restricted to roles that can hold a portfolio.
func (s *Service) ListMine(ctx context.Context, userID int64, isStaff bool) ([]Photo, error) {
	if err := s.canUpload(ctx, userID, isStaff); err != nil {
		return nil, err
	}
	owner := userID
	return s.repo.ListPhotos(ctx, ownAll, ListOptions{OwnerID: &owner})
}

// ListUser returns another user's portfolio through the viewer's visibility
// scope, or everything when viewing one's own.
func (s *Service) ListUser(ctx context.Context, viewer Viewer, targetUserID int64) ([]Photo, error) {
	owner := targetUserID
	if viewer.Authenticated && viewer.UserID == targetUserID {
		return s.repo.ListPhotos(ctx, ownAll, ListOptions{OwnerID: &owner})
	}
	return s.repo.ListPhotos(ctx, VisibleScope(viewer), ListOptions{OwnerID: &owner})
}

func ownAll(db *gorm.DB) *gorm.DB { return db }

// Update edits photo metadata. Only the owner may edit; a visibility change is
// written to the audit trail.
func (s *Service) Update(ctx context.Context, actorID int64, isStaff bool, photoID int64, req UpdatePhotoRequest) (*Photo, error) {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if photo.OwnerID != actorID && !isStaff {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		photo.Title = *req.Title
	}
	if req.Description != nil {
		photo.Description = *req.Description
	}
	if req.CapturedOn != nil {
		if *req.CapturedOn == "" {
			photo.CapturedOn = nil
		} else {
			t, err := time.Parse("2006-01-02", *req.CapturedOn)
			if err != nil {
				return nil, fmt.Errorf("invalid captured_on: %w", err)
			}
			photo.CapturedOn = &t
		}
	}
	if req.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		photo.CategoryID = req.CategoryID
	}
	if req.Visibility != nil {
		newVis := Visibility(*req.Visibility)
		if !newVis.Valid() {
			return nil, fmt.Errorf("invalid visibility %q", *req.Visibility)
		}
		if newVis != photo.Visibility {
			s.audit.Record(ctx, photo.OwnerID, &actorID, audit.ActionPhoto,
				"visibility", string(photo.Visibility), string(newVis))
			photo.Visibility = newVis
		}
	}

	if err := s.repo.UpdatePhoto(ctx, photo, req.AllowedProfileIDs); err != nil {
		return nil, err
	}
	return photo, nil
}

// Delete removes a single photo. The blob is purged first; a purge failure is
// logged as an operational error but does not keep the record alive.
func (s *Service) Delete(ctx context.Context, actorID int64, isStaff bool, photoID int64) error {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.OwnerID != actorID && !isStaff {
		return ErrNotOwner
	}

	if err := s.blobs.Delete(ctx, photo.StoragePath); err != nil {
		slog.Error("photo blob purge failed", "photo_id", photoID, "path", photo.StoragePath, "err", err)
	}
	return s.repo.DeletePhoto(ctx, photoID)
}

// BulkDelete removes many photos at once. Non-staff actors can only delete
// their own; ids owned by others are silently skipped.
func (s *Service) BulkDelete(ctx context.Context, actorID int64, isStaff bool, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var ownerFilter *int64
	if !isStaff {
		ownerFilter = &actorID
	}
	photos, err := s.repo.ListPhotosByIDs(ctx, ids, ownerFilter)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for i := range photos {
		if err := s.blobs.Delete(ctx, photos[i].StoragePath); err != nil {
			slog.Error("photo blob purge failed", "photo_id", photos[i].ID, "path", photos[i].StoragePath, "err", err)
		}
		if err := s.repo.DeletePhoto(ctx, photos[i].ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// ToggleLike likes an unliked photo and unlikes a liked one.
func (s *Service) ToggleLike(ctx context.Context, userID, photoID int64) (liked bool, count int64, err error) {
	if _, err := s.repo.GetPhoto(ctx, photoID); err != nil {
		return false, 0, err
	}
	liked, err = s.repo.ToggleLike(ctx, photoID, userID)
	if err != nil {
		return false, 0, err
	}
	count, err = s.repo.CountLikes(ctx, photoID)
	return liked, count, err
}

func (s *Service) AddComment(ctx context.Context, userID, photoID int64, req CommentRequest) (*Comment, error) {
	if _, err := s.repo.GetPhoto(ctx, photoID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetComment(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PhotoID != photoID {
			return nil, ErrParentMismatch
		}
	}

	comment := &Comment{
		PhotoID:  photoID,
		UserID:   userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment is allowed to the comment author, the photo owner, or staff.
func (s *Service) DeleteComment(ctx context.Context, actorID int64, isStaff bool, commentID int64) error {
	comment, err := s.repo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	photo, err := s.repo.GetPhoto(ctx, comment.PhotoID)
	if err != nil {
		return err
	}

	if comment.UserID != actorID && photo.OwnerID != actorID && !isStaff {
		return ErrAccessDenied
	}
	return s.repo.DeleteComment(ctx, commentID)
}

// CreateCategory is open to uploading roles; the adult-only flag is forced off
// unless the actor is staff.
func (s *Service) CreateCategory(ctx context.Context, userID int64, isStaff bool, req CategoryRequest) (*Category, error) {
	if err := s.canUpload(ctx, userID, isStaff); err != nil {
		return nil, err
	}

	category := &Category{
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		IsAdultOnly: req.IsAdultOnly && isStaff,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Slug = Slugify(req.Name)
	category.IsAdultOnly = req.IsAdultOnly
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.repo.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}
