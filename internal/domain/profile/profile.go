package profile

import "time"

type Role string

const (
	RolePhotographer Role = "photographer"
	RoleModel        Role = "model"
	RoleMUA          Role = "mua"
	RoleVisitor      Role = "visitor"
)

func (r Role) Valid() bool {
	switch r {
	case RolePhotographer, RoleModel, RoleMUA, RoleVisitor:
		return true
	}
	return false
}

type Profile struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	UserID      int64      `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName string     `gorm:"size:20" json:"display_name,omitempty"`
	Info        string     `json:"info,omitempty"`
	AvatarPath  string     `json:"-"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	// ShowAdultContent only takes effect for adult users, see CanViewAdult.
	ShowAdultContent bool `gorm:"default:true" json:"show_adult_content"`

	// DobChangePending blocks adult content while a DOB change awaits review.
	DobChangePending bool `gorm:"default:false" json:"dob_change_pending"`

	Role      Role      `gorm:"size:20;default:'visitor'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// CanUploadPortfolio reports whether the profile's role allows uploading to the
// gallery. Staff bypass is checked at the call site, not here.
func (p *Profile) CanUploadPortfolio() bool {
	switch p.Role {
	case RolePhotographer, RoleModel, RoleMUA:
		return true
	}
	return false
}

type DobRequestStatus string

const (
	DobRequestPending  DobRequestStatus = "pending"
	DobRequestApproved DobRequestStatus = "approved"
	DobRequestDeclined DobRequestStatus = "declined"
)

// DobChangeRequest is a user's request to change their date of birth. While one
// is pending the owning profile has DobChangePending set, which forces the
// adult gate closed regardless of age or preference.
type DobChangeRequest struct {
	ID           int64            `gorm:"primaryKey" json:"id"`
	UserID       int64            `gorm:"not null;index" json:"user_id"`
	RequestedDob time.Time        `gorm:"not null" json:"requested_dob"`
	Status       DobRequestStatus `gorm:"size:20;default:'pending'" json:"status"`
	Note         string           `json:"note,omitempty"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	ResolvedAt   *time.Time       `json:"resolved_at,omitempty"`
	ResolvedBy   *int64           `json:"resolved_by,omitempty"`
}

func (DobChangeRequest) TableName() string { return "dob_change_requests" }
