package share

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/mailer"
	"photoshare/internal/pkg/random"
	"photoshare/internal/storage"
)

// MaxFileSize bounds a single file within a transfer.
const MaxFileSize = 100 << 20

// OwnerDirectory resolves a sender's email address for notifications.
// Implemented by the auth service.
type OwnerDirectory interface {
	EmailByUserID(ctx context.Context, userID int64) (string, error)
}

type Service struct {
	repo    Repository
	blobs   storage.Storage
	mail    mailer.Mailer
	owners  OwnerDirectory
	baseURL string
	now     func() time.Time
}

func NewService(repo Repository, blobs storage.Storage, mail mailer.Mailer, owners OwnerDirectory, baseURL string) *Service {
	return &Service{
		repo:    repo,
		blobs:   blobs,
		mail:    mail,
		owners:  owners,
		baseURL: baseURL,
		now:     time.Now,
	}
}

type CreateRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required,email"`
	Title          string `json:"title" binding:"max=140"`
	Message        string `json:"message"`
}

type UploadFile struct {
	Name string
	Data []byte
}

// Create builds a transfer fully formed: code, both expiries and every file
// record land in one transaction. Saved blobs are rolled back if the record
// cannot be committed.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateRequest, files []UploadFile) (*Transfer, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	for _, f := range files {
		if int64(len(f.Data)) > MaxFileSize {
			return nil, fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
		}
	}

	token, err := random.Token(32)
	if err != nil {
		return nil, err
	}
	code, err := random.Code()
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &Transfer{
		OwnerID:        ownerID,
		RecipientEmail: req.RecipientEmail,
		Title:          req.Title,
		Message:        req.Message,
		Token:          token,
		Code:           code,
		CodeExpiresAt:  now.Add(CodeTTL),
		CreatedAt:      now,
		ExpiresAt:      now.Add(TransferTTL),
	}

	var saved []string
	rollback := func() {
		for _, p := range saved {
			if err := s.blobs.Delete(ctx, p); err != nil {
				slog.Warn("orphaned transfer blob after rollback", "path", p, "error", err)
			}
		}
	}

	for _, f := range files {
		path := fmt.Sprintf("transfers/%s/%s_%s", token, uuid.NewString(), filepath.Base(f.Name))
		if err := s.blobs.Save(ctx, path, bytes.NewReader(f.Data), int64(len(f.Data)), "application/octet-stream"); err != nil {
			rollback()
			return nil, err
		}
		saved = append(saved, path)
		t.Files = append(t.Files, TransferFile{
			StoragePath:  path,
			OriginalName: filepath.Base(f.Name),
			Size:         int64(len(f.Data)),
		})
	}

	if err := s.repo.Create(ctx, t); err != nil {
		rollback()
		return nil, err
	}

	s.sendCode(ctx, t)
	return t, nil
}

// AuthenticateByToken checks the submitted code against an identified
// transfer. Expiry of the transfer, expiry of the code and a wrong code are
// surfaced as distinct errors so the caller can offer re-issuance.
func (s *Service) AuthenticateByToken(ctx context.Context, token, code string) (*Transfer, error) {
	t, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if t.IsExpired(now) {
		return nil, ErrExpired
	}
	if t.Code != code {
		return nil, ErrCodeMismatch
	}
	if !t.IsCodeValid(now) {
		return nil, ErrCodeExpired
	}
	return t, nil
}

// AuthenticateByEmail resolves the most recent live transfer matching the
// recipient's email and code. Older transfers sharing the same code lose the
// tie on purpose.
func (s *Service) AuthenticateByEmail(ctx context.Context, email, code string) (*Transfer, error) {
	now := s.now()
	t, err := s.repo.FindActiveByEmailAndCode(ctx, email, code, now)
	if err != nil {
		return nil, err
	}
	if !t.IsCodeValid(now) {
		return nil, ErrCodeExpired
	}
	return t, nil
}

// ResendCode issues a fresh code and resets its deadline in one write; the
// previous code stops matching the moment the row is updated.
func (s *Service) ResendCode(ctx context.Context, token string) error {
	t, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	now := s.now()
	if t.IsExpired(now) {
		return ErrExpired
	}

	code, err := random.Code()
	if err != nil {
		return err
	}
	if err := s.repo.UpdateCode(ctx, t.ID, code, now.Add(CodeTTL)); err != nil {
		return err
	}

	t.Code = code
	t.CodeExpiresAt = now.Add(CodeTTL)
	s.sendCode(ctx, t)
	return nil
}

// ResendCodeByEmail re-issues the code for the recipient's newest live
// transfer. Used when the recipient lost both link and code.
func (s *Service) ResendCodeByEmail(ctx context.Context, email string) error {
	now := s.now()
	t, err := s.repo.FindLatestActiveByEmail(ctx, email, now)
	if err != nil {
		return err
	}

	code, err := random.Code()
	if err != nil {
		return err
	}
	if err := s.repo.UpdateCode(ctx, t.ID, code, now.Add(CodeTTL)); err != nil {
		return err
	}

	t.Code = code
	t.CodeExpiresAt = now.Add(CodeTTL)
	s.sendCode(ctx, t)
	return nil
}

// Download streams one file after re-authenticating the request. The first
// successful download of any file in the transfer flips downloaded_at and
// notifies both parties exactly once.
func (s *Service) Download(ctx context.Context, token, code string, fileID int64) (io.ReadCloser, *TransferFile, error) {
	t, err := s.AuthenticateByToken(ctx, token, code)
	if err != nil {
		return nil, nil, err
	}

	var file *TransferFile
	for i := range t.Files {
		if t.Files[i].ID == fileID {
			file = &t.Files[i]
			break
		}
	}
	if file == nil {
		return nil, nil, ErrFileNotFound
	}

	rc, err := s.blobs.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	first, err := s.repo.SetDownloadedAt(ctx, t.ID, s.now())
	if err != nil {
		rc.Close()
		return nil, nil, err
	}
	if first {
		s.notifyDownloaded(ctx, t)
	}

	return rc, file, nil
}

// Finish is the recipient's explicit cleanup: blobs are purged first, then
// the record is removed. A blob that refuses to delete is logged loudly but
// does not keep the record alive.
func (s *Service) Finish(ctx context.Context, token, code string) error {
	t, err := s.AuthenticateByToken(ctx, token, code)
	if err != nil {
		return err
	}
	s.purge(ctx, t)
	return s.repo.Delete(ctx, t.ID)
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]Transfer, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// SweepResult reports what one sweep pass did.
type SweepResult struct {
	Warned  int
	Deleted int
}

// Sweep runs the periodic maintenance pass. It is idempotent and safe to run
// concurrently: warning slots are claimed with a conditional write before any
// mail goes out, and transfers deleted by a racing sweep simply vanish from
// the queries.
func (s *Service) Sweep(ctx context.Context, now time.Time) (SweepResult, error) {
	var res SweepResult

	candidates, err := s.repo.ListWarningCandidates(ctx, now)
	if err != nil {
		return res, err
	}
	for i := range candidates {
		t := &candidates[i]
		claimed, err := s.repo.SetWarningSentAt(ctx, t.ID, now)
		if err != nil {
			return res, err
		}
		if !claimed {
			continue
		}
		s.notifyExpiring(ctx, t)
		res.Warned++
	}

	expired, err := s.repo.ListExpired(ctx, now)
	if err != nil {
		return res, err
	}
	for i := range expired {
		t := &expired[i]
		s.purge(ctx, t)
		if err := s.repo.Delete(ctx, t.ID); err != nil {
			return res, err
		}
		res.Deleted++
	}

	return res, nil
}

func (s *Service) purge(ctx context.Context, t *Transfer) {
	for _, f := range t.Files {
		if err := s.blobs.Delete(ctx, f.StoragePath); err != nil {
			slog.Error("transfer blob purge failed", "transfer_id", t.ID, "path", f.StoragePath, "error", err)
		}
	}
}

func (s *Service) link(t *Transfer) string {
	return fmt.Sprintf("%s/share/%s", s.baseURL, t.Token)
}

func (s *Service) sendCode(ctx context.Context, t *Transfer) {
	body := fmt.Sprintf(
		"You have received files: %s\n\nOpen %s and enter the code %s to access them.\nThe code is valid for %d minutes. The transfer expires on %s.",
		t.Title, s.link(t), t.Code, int(CodeTTL.Minutes()), t.ExpiresAt.Format(time.RFC1123),
	)
	if err := s.mail.Send(ctx, "Your file transfer access code", body, []string{t.RecipientEmail}); err != nil {
		slog.Error("transfer code email failed", "transfer_id", t.ID, "error", err)
	}
}

func (s *Service) notifyDownloaded(ctx context.Context, t *Transfer) {
	to := []string{t.RecipientEmail}
	if email, err := s.owners.EmailByUserID(ctx, t.OwnerID); err != nil {
		slog.Error("transfer owner lookup failed", "transfer_id", t.ID, "error", err)
	} else {
		to = append(to, email)
	}
	body := fmt.Sprintf("The files in transfer %q have been downloaded for the first time.", t.Title)
	if err := s.mail.Send(ctx, "Transfer downloaded", body, to); err != nil {
		slog.Error("transfer download notification failed", "transfer_id", t.ID, "error", err)
	}
}

func (s *Service) notifyExpiring(ctx context.Context, t *Transfer) {
	to := []string{t.RecipientEmail}
	if email, err := s.owners.EmailByUserID(ctx, t.OwnerID); err != nil {
		slog.Error("transfer owner lookup failed", "transfer_id", t.ID, "error", err)
	} else {
		to = append(to, email)
	}
	body := fmt.Sprintf(
		"The transfer %q has not been downloaded and will expire on %s.\n\n%s",
		t.Title, t.ExpiresAt.Format(time.RFC1123), s.link(t),
	)
	if err := s.mail.Send(ctx, "Transfer about to expire", body, to); err != nil {
		slog.Error("transfer warning email failed", "transfer_id", t.ID, "error", err)
	}
}
