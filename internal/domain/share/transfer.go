package share

import "time"

const (
	// CodeTTL is how long a confirmation code stays valid after issue or re-issue.
	CodeTTL = 15 * time.Minute
	// TransferTTL is the fixed lifetime of a transfer, set once at creation.
	TransferTTL = 5 * 24 * time.Hour
	// WarningWindow is how close to expiry an undownloaded transfer must be
	// before the sweep emails a reminder.
	WarningWindow = 24 * time.Hour
)

// Transfer is a private, time-boxed bundle of files sent to an external
// recipient. The recipient is identified by email only and authenticates
// with a short-lived 6-digit code.
type Transfer struct {
	ID             int64          `gorm:"primaryKey" json:"id"`
	OwnerID        int64          `gorm:"not null;index" json:"owner_id"`
	RecipientEmail string         `gorm:"size:254;not null;index" json:"recipient_email"`
	Title          string         `gorm:"size:140" json:"title"`
	Message        string         `gorm:"type:text" json:"message"`
	Token          string         `gorm:"size:64;not null;uniqueIndex" json:"token"`
	Code           string         `gorm:"size:6;not null" json:"-"`
	CodeExpiresAt  time.Time      `gorm:"not null" json:"code_expires_at"`
	CreatedAt      time.Time      `json:"created_at"`
	ExpiresAt      time.Time      `gorm:"not null;index" json:"expires_at"`
	DownloadedAt   *time.Time     `json:"downloaded_at,omitempty"`
	WarningSentAt  *time.Time     `json:"warning_sent_at,omitempty"`
	Files          []TransferFile `gorm:"foreignKey:TransferID" json:"files"`
}

func (Transfer) TableName() string {
	return "transfers"
}

// IsExpired reports whether the transfer's hard lifetime has lapsed.
func (t *Transfer) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsCodeValid reports whether the current code can still authenticate.
func (t *Transfer) IsCodeValid(now time.Time) bool {
	return now.Before(t.CodeExpiresAt)
}

type TransferFile struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	TransferID   int64  `gorm:"not null;index" json:"transfer_id"`
	StoragePath  string `gorm:"size:512;not null" json:"-"`
	OriginalName string `gorm:"size:255;not null" json:"original_name"`
	Size         int64  `gorm:"not null" json:"size"`
}

func (TransferFile) TableName() string {
	return "transfer_files"
}
