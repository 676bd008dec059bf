package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/domain/audit"
	"photoshare/internal/storage"
)

// MaxAvatarSize caps an uploaded avatar before normalization.
const MaxAvatarSize = 5 * 1024 * 1024

// ImageNormalizer re-encodes raw image bytes to the platform's fixed format.
type ImageNormalizer interface {
	Normalize(raw []byte) ([]byte, error)
}

type Service struct {
	repo       Repository
	blobs      storage.Storage
	normalizer ImageNormalizer
	audit      audit.Recorder
	now        func() time.Time
}

func NewService(repo Repository, blobs storage.Storage, normalizer ImageNormalizer, auditRec audit.Recorder) *Service {
	return &Service{
		repo:       repo,
		blobs:      blobs,
		normalizer: normalizer,
		audit:      auditRec,
		now:        time.Now,
	}
}

// CreateDefault creates the visitor profile for a new user. Implements the
// auth module's ProfileCreator.
func (s *Service) CreateDefault(ctx context.Context, userID int64) error {
	return s.repo.Create(ctx, &Profile{
		UserID:           userID,
		Role:             RoleVisitor,
		ShowAdultContent: true,
	})
}

func (s *Service) Get(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) ToResponse(p *Profile) ProfileResponse {
	today := s.now()
	return ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		DisplayName:      p.DisplayName,
		Info:             p.Info,
		Role:             string(p.Role),
		ShowAdultContent: p.ShowAdultContent,
		DobChangePending: p.DobChangePending,
		IsAdult:          IsAdult(p.DateOfBirth, today),
		CanViewAdult:     p.CanViewAdult(today),
	}
}

// Update applies a profile mutation on behalf of actor. Role and date of birth
// are locked to staff; the check happens here, server-side, because client-side
// field disabling is not a security boundary. Accepted changes to sensitive
// fields are written to the audit trail.
func (s *Service) Update(ctx context.Context, actorID int64, actorIsStaff bool, targetUserID int64, req UpdateProfileRequest) (*Profile, error) {
	if (req.Role != nil || req.DateOfBirth != nil) && !actorIsStaff {
		return nil, ErrFieldLocked
	}

	p, err := s.repo.GetByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Info != nil {
		p.Info = *req.Info
	}

	if req.ShowAdultContent != nil && *req.ShowAdultContent != p.ShowAdultContent {
		s.audit.Record(ctx, p.UserID, &actorID, audit.ActionProfile,
			"show_adult_content",
			fmt.Sprintf("%t", p.ShowAdultContent),
			fmt.Sprintf("%t", *req.ShowAdultContent))
		p.ShowAdultContent = *req.ShowAdultContent
	}

	if req.Role != nil {
		newRole := Role(*req.Role)
		if !newRole.Valid() {
			return nil, ErrInvalidRole
		}
		if newRole != p.Role {
			s.audit.Record(ctx, p.UserID, &actorID, audit.ActionProfile,
				"role", string(p.Role), string(newRole))
			p.Role = newRole
		}
	}

	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth: %w", err)
		}
		s.audit.Record(ctx, p.UserID, &actorID, audit.ActionProfile,
			"date_of_birth", formatDob(p.DateOfBirth), dob.Format("2006-01-02"))
		p.DateOfBirth = &dob
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateAvatar normalizes and stores a new avatar, then swaps the profile's
// storage path. The previous blob is removed best-effort after the record
// points at the new one.
func (s *Service) UpdateAvatar(ctx context.Context, userID int64, data []byte) (*Profile, error) {
	if int64(len(data)) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized, err := s.normalizer.Normalize(data)
	if err != nil {
		return nil, fmt.Errorf("normalize avatar: %w", err)
	}

	oldPath := p.AvatarPath
	path := fmt.Sprintf("avatars/%d/%s.jpg", userID, uuid.New().String())
	if err := s.blobs.Save(ctx, path, bytes.NewReader(normalized), int64(len(normalized)), "image/jpeg"); err != nil {
		return nil, err
	}

	p.AvatarPath = path
	if err := s.repo.Update(ctx, p); err != nil {
		// keep storage consistent with the failed update
		if delErr := s.blobs.Delete(ctx, path); delErr != nil {
			slog.Error("orphaned avatar blob after failed update", "path", path, "err", delErr)
		}
		return nil, err
	}

	if oldPath != "" {
		if err := s.blobs.Delete(ctx, oldPath); err != nil {
			slog.Error("stale avatar blob purge failed", "path", oldPath, "err", err)
		}
	}
	return p, nil
}

// OpenAvatar streams the stored avatar for a user.
func (s *Service) OpenAvatar(ctx context.Context, userID int64) (io.ReadCloser, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.AvatarPath == "" {
		return nil, ErrNoAvatar
	}
	return s.blobs.Open(ctx, p.AvatarPath)
}

// RequestDobChange files a DOB change for review. While the request is pending
// the profile cannot view adult content.
func (s *Service) RequestDobChange(ctx context.Context, userID int64, input DobChangeRequestInput) (*DobChangeRequest, error) {
	requested, err := time.Parse("2006-01-02", input.RequestedDob)
	if err != nil {
		return nil, fmt.Errorf("invalid requested_dob: %w", err)
	}

	pending, err := s.repo.HasPendingDobRequest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyPending
	}

	req := &DobChangeRequest{
		UserID:       userID,
		RequestedDob: requested,
		Status:       DobRequestPending,
		Note:         input.Note,
	}
	if err := s.repo.CreateDobRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ResolveDobChange approves or declines a pending request. Approval applies the
// requested date of birth; both outcomes clear the pending block.
func (s *Service) ResolveDobChange(ctx context.Context, staffID, requestID int64, approve bool) (*DobChangeRequest, error) {
	req, err := s.repo.GetDobRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != DobRequestPending {
		return nil, ErrNotPending
	}

	if approve {
		p, err := s.repo.GetByUserID(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		s.audit.Record(ctx, req.UserID, &staffID, audit.ActionProfile,
			"date_of_birth", formatDob(p.DateOfBirth), req.RequestedDob.Format("2006-01-02"))
	}

	if err := s.repo.ResolveDobRequest(ctx, req, approve, staffID, s.now()); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListPendingDobRequests(ctx context.Context) ([]DobChangeRequest, error) {
	return s.repo.ListPendingDobRequests(ctx)
}

func formatDob(dob *time.Time) string {
	if dob == nil {
		return ""
	}
	return dob.Format("2006-01-02")
}
