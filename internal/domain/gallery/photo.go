package gallery

import "time"

type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityAuthenticated Visibility = "authenticated"
	VisibilityFriends       Visibility = "friends"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityAuthenticated, VisibilityFriends:
		return true
	}
	return false
}

type Photo struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	OwnerID     int64      `gorm:"not null;index" json:"owner_id"`
	Title       string     `gorm:"size:140;not null" json:"title"`
	Description string     `json:"description,omitempty"`
	StoragePath string     `gorm:"not null" json:"-"`
	CapturedOn  *time.Time `gorm:"index" json:"captured_on,omitempty"`
	CategoryID  *int64     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Visibility  Visibility `gorm:"size:20;default:'public'" json:"visibility"`

	// AllowedFriends only matters when Visibility is friends.
	AllowedFriends []PhotoFriend `gorm:"foreignKey:PhotoID" json:"allowed_friends,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Photo) TableName() string { return "photos" }

// PhotoFriend grants one profile access to one friends-only photo.
type PhotoFriend struct {
	ID        int64 `gorm:"primaryKey" json:"-"`
	PhotoID   int64 `gorm:"not null;index;uniqueIndex:idx_photo_friend" json:"photo_id"`
	ProfileID int64 `gorm:"not null;index;uniqueIndex:idx_photo_friend" json:"profile_id"`
}

func (PhotoFriend) TableName() string { return "photo_friends" }

type Like struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PhotoID   int64     `gorm:"not null;index;uniqueIndex:idx_photo_like" json:"photo_id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_photo_like" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Like) TableName() string { return "likes" }

type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	PhotoID   int64     `gorm:"not null;index" json:"photo_id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"not null" json:"content"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }
