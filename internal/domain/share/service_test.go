package share

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, t *Transfer) error {
	args := m.Called(ctx, t)
	if t != nil {
		t.ID = 999
	}
	return args.Error(0)
}

func (m *MockRepository) GetByToken(ctx context.Context, token string) (*Transfer, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transfer), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transfer), args.Error(1)
}

func (m *MockRepository) FindActiveByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*Transfer, error) {
	args := m.Called(ctx, email, code, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transfer), args.Error(1)
}

func (m *MockRepository) FindLatestActiveByEmail(ctx context.Context, email string, now time.Time) (*Transfer, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Transfer), args.Error(1)
}

func (m *MockRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Transfer, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]Transfer), args.Error(1)
}

func (m *MockRepository) UpdateCode(ctx context.Context, id int64, code string, codeExpiresAt time.Time) error {
	args := m.Called(ctx, id, code, codeExpiresAt)
	return args.Error(0)
}

func (m *MockRepository) SetDownloadedAt(ctx context.Context, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SetWarningSentAt(ctx context.Context, id int64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListWarningCandidates(ctx context.Context, now time.Time) ([]Transfer, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]Transfer), args.Error(1)
}

func (m *MockRepository) ListExpired(ctx context.Context, now time.Time) ([]Transfer, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]Transfer), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, path, r, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, subject, body string, to []string) error {
	args := m.Called(ctx, subject, body, to)
	return args.Error(0)
}

type MockOwners struct {
	mock.Mock
}

func (m *MockOwners) EmailByUserID(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo *MockRepository, blobs *MockStorage, mail *MockMailer, owners *MockOwners) *Service {
	svc := NewService(repo, blobs, mail, owners, "https://photoshare.example")
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreate_FreshDefaults(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)
	mail := new(MockMailer)

	blobs.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*share.Transfer")).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, []string{"alex@example.com"}).Return(nil)

	svc := newTestService(repo, blobs, mail, new(MockOwners))

	tr, err := svc.Create(context.Background(), 1,
		CreateRequest{RecipientEmail: "alex@example.com", Title: "Shoot"},
		[]UploadFile{{Name: "a.jpg", Data: []byte("x")}, {Name: "b.jpg", Data: []byte("y")}})
	require.NoError(t, err)

	assert.Len(t, tr.Code, 6)
	assert.NotEmpty(t, tr.Token)
	assert.Equal(t, testNow.Add(CodeTTL), tr.CodeExpiresAt)
	assert.Equal(t, testNow.Add(TransferTTL), tr.ExpiresAt)
	assert.Nil(t, tr.DownloadedAt)
	assert.Nil(t, tr.WarningSentAt)
	assert.False(t, tr.IsExpired(testNow))
	assert.True(t, tr.IsCodeValid(testNow))
	assert.Len(t, tr.Files, 2)

	blobs.AssertNumberOfCalls(t, "Save", 2)
	mail.AssertNumberOfCalls(t, "Send", 1)
}

func TestCreate_NoFiles(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockStorage), new(MockMailer), new(MockOwners))

	_, err := svc.Create(context.Background(), 1,
		CreateRequest{RecipientEmail: "alex@example.com"}, nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestCreate_RollsBackBlobsOnRecordFailure(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)

	blobs.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(repo, blobs, new(MockMailer), new(MockOwners))

	_, err := svc.Create(context.Background(), 1,
		CreateRequest{RecipientEmail: "alex@example.com"},
		[]UploadFile{{Name: "a.jpg", Data: []byte("x")}})
	assert.Error(t, err)
	blobs.AssertNumberOfCalls(t, "Delete", 1)
}

func liveTransfer() *Transfer {
	return &Transfer{
		ID:             1,
		OwnerID:        7,
		RecipientEmail: "alex@example.com",
		Title:          "Shoot",
		Token:          "tok",
		Code:           "482913",
		CodeExpiresAt:  testNow.Add(CodeTTL),
		CreatedAt:      testNow,
		ExpiresAt:      testNow.Add(TransferTTL),
		Files: []TransferFile{
			{ID: 11, TransferID: 1, StoragePath: "transfers/tok/a.jpg", OriginalName: "a.jpg", Size: 1},
			{ID: 12, TransferID: 1, StoragePath: "transfers/tok/b.jpg", OriginalName: "b.jpg", Size: 1},
		},
	}
}

func TestAuthenticateByToken(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	svc := newTestService(repo, new(MockStorage), new(MockMailer), new(MockOwners))

	tr, err := svc.AuthenticateByToken(context.Background(), "tok", "482913")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), tr.ID)

	_, err = svc.AuthenticateByToken(context.Background(), "tok", "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestAuthenticateByToken_CodeExpired(t *testing.T) {
	repo := new(MockRepository)
	stale := liveTransfer()
	stale.CodeExpiresAt = testNow.Add(-time.Minute)
	repo.On("GetByToken", mock.Anything, "tok").Return(stale, nil)
	svc := newTestService(repo, new(MockStorage), new(MockMailer), new(MockOwners))

	_, err := svc.AuthenticateByToken(context.Background(), "tok", "482913")
	assert.ErrorIs(t, err, ErrCodeExpired, "correct code after the deadline still fails")
}

func TestAuthenticateByToken_TransferExpired(t *testing.T) {
	repo := new(MockRepository)
	dead := liveTransfer()
	dead.ExpiresAt = testNow.Add(-time.Hour)
	repo.On("GetByToken", mock.Anything, "tok").Return(dead, nil)
	svc := newTestService(repo, new(MockStorage), new(MockMailer), new(MockOwners))

	_, err := svc.AuthenticateByToken(context.Background(), "tok", "482913")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestResendCode_ResetsDeadline(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)
	stale := liveTransfer()
	stale.CodeExpiresAt = testNow.Add(-time.Minute)
	repo.On("GetByToken", mock.Anything, "tok").Return(stale, nil)
	repo.On("UpdateCode", mock.Anything, int64(1), mock.AnythingOfType("string"), testNow.Add(CodeTTL)).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, []string{"alex@example.com"}).Return(nil)

	svc := newTestService(repo, new(MockStorage), mail, new(MockOwners))

	assert.NoError(t, svc.ResendCode(context.Background(), "tok"))
	repo.AssertExpectations(t)
	mail.AssertNumberOfCalls(t, "Send", 1)
}

func TestResendCodeByEmail_UsesNewestLiveTransfer(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)
	repo.On("FindLatestActiveByEmail", mock.Anything, "alex@example.com", testNow).
		Return(liveTransfer(), nil)
	repo.On("UpdateCode", mock.Anything, int64(1), mock.AnythingOfType("string"), testNow.Add(CodeTTL)).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, []string{"alex@example.com"}).Return(nil)

	svc := newTestService(repo, new(MockStorage), mail, new(MockOwners))

	assert.NoError(t, svc.ResendCodeByEmail(context.Background(), "alex@example.com"))
	repo.AssertExpectations(t)
}

func TestDownload_FirstDownloadNotifiesOnce(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)
	mail := new(MockMailer)
	owners := new(MockOwners)

	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	blobs.On("Open", mock.Anything, "transfers/tok/a.jpg").
		Return(io.NopCloser(strings.NewReader("data")), nil)
	repo.On("SetDownloadedAt", mock.Anything, int64(1), testNow).Return(true, nil)
	owners.On("EmailByUserID", mock.Anything, int64(7)).Return("owner@example.com", nil)
	mail.On("Send", mock.Anything, "Transfer downloaded", mock.Anything,
		[]string{"alex@example.com", "owner@example.com"}).Return(nil)

	svc := newTestService(repo, blobs, mail, owners)

	rc, file, err := svc.Download(context.Background(), "tok", "482913", 11)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "a.jpg", file.OriginalName)
	mail.AssertNumberOfCalls(t, "Send", 1)
}

func TestDownload_SecondDownloadDoesNotRenotify(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)
	mail := new(MockMailer)

	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	blobs.On("Open", mock.Anything, "transfers/tok/b.jpg").
		Return(io.NopCloser(strings.NewReader("data")), nil)
	repo.On("SetDownloadedAt", mock.Anything, int64(1), testNow).Return(false, nil)

	svc := newTestService(repo, blobs, mail, new(MockOwners))

	rc, _, err := svc.Download(context.Background(), "tok", "482913", 12)
	require.NoError(t, err)
	rc.Close()
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDownload_UnknownFile(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	svc := newTestService(repo, new(MockStorage), new(MockMailer), new(MockOwners))

	_, _, err := svc.Download(context.Background(), "tok", "482913", 404)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFinish_PurgesBlobsThenDeletes(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)

	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	blobs.On("Delete", mock.Anything, "transfers/tok/a.jpg").Return(nil)
	blobs.On("Delete", mock.Anything, "transfers/tok/b.jpg").Return(nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := newTestService(repo, blobs, new(MockMailer), new(MockOwners))

	assert.NoError(t, svc.Finish(context.Background(), "tok", "482913"))
	blobs.AssertNumberOfCalls(t, "Delete", 2)
	repo.AssertExpectations(t)
}

func TestFinish_BlobFailureDoesNotBlockDeletion(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)

	repo.On("GetByToken", mock.Anything, "tok").Return(liveTransfer(), nil)
	blobs.On("Delete", mock.Anything, mock.Anything).Return(assert.AnError)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	svc := newTestService(repo, blobs, new(MockMailer), new(MockOwners))

	assert.NoError(t, svc.Finish(context.Background(), "tok", "482913"))
	repo.AssertCalled(t, "Delete", mock.Anything, int64(1))
}

func TestSweep_WarnsOnceAndDeletesExpired(t *testing.T) {
	repo := new(MockRepository)
	blobs := new(MockStorage)
	mail := new(MockMailer)
	owners := new(MockOwners)

	warning := liveTransfer()
	warning.ID = 2
	warning.ExpiresAt = testNow.Add(12 * time.Hour)

	expired := liveTransfer()
	expired.ID = 3
	expired.ExpiresAt = testNow.Add(-time.Hour)

	repo.On("ListWarningCandidates", mock.Anything, testNow).Return([]Transfer{*warning}, nil)
	repo.On("SetWarningSentAt", mock.Anything, int64(2), testNow).Return(true, nil)
	owners.On("EmailByUserID", mock.Anything, int64(7)).Return("owner@example.com", nil)
	mail.On("Send", mock.Anything, "Transfer about to expire", mock.Anything,
		[]string{"alex@example.com", "owner@example.com"}).Return(nil)

	repo.On("ListExpired", mock.Anything, testNow).Return([]Transfer{*expired}, nil)
	blobs.On("Delete", mock.Anything, mock.Anything).Return(nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	svc := newTestService(repo, blobs, mail, owners)

	res, err := svc.Sweep(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Warned)
	assert.Equal(t, 1, res.Deleted)
	mail.AssertNumberOfCalls(t, "Send", 1)
	blobs.AssertNumberOfCalls(t, "Delete", 2)
}

func TestSweep_SkipsAlreadyClaimedWarning(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)

	warning := liveTransfer()
	warning.ID = 2
	warning.ExpiresAt = testNow.Add(12 * time.Hour)

	repo.On("ListWarningCandidates", mock.Anything, testNow).Return([]Transfer{*warning}, nil)
	repo.On("SetWarningSentAt", mock.Anything, int64(2), testNow).Return(false, nil)
	repo.On("ListExpired", mock.Anything, testNow).Return([]Transfer{}, nil)

	svc := newTestService(repo, new(MockStorage), mail, new(MockOwners))

	res, err := svc.Sweep(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Warned, "a concurrent sweep already claimed the slot")
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSweep_NothingToDo(t *testing.T) {
	repo := new(MockRepository)
	mail := new(MockMailer)

	repo.On("ListWarningCandidates", mock.Anything, testNow).Return([]Transfer{}, nil)
	repo.On("ListExpired", mock.Anything, testNow).Return([]Transfer{}, nil)

	svc := newTestService(repo, new(MockStorage), mail, new(MockOwners))

	res, err := svc.Sweep(context.Background(), testNow)
	require.NoError(t, err)
	assert.Zero(t, res.Warned)
	assert.Zero(t, res.Deleted)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
