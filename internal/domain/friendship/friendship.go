package friendship

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// FriendRequest is one directed connection request. The (from,to) pair is
// unique; a declined row is re-activated instead of duplicated.
type FriendRequest struct {
	ID         int64         `gorm:"primaryKey" json:"id"`
	FromUserID int64         `gorm:"not null;index;uniqueIndex:idx_request_pair" json:"from_user_id"`
	ToUserID   int64         `gorm:"not null;index;uniqueIndex:idx_request_pair" json:"to_user_id"`
	Status     RequestStatus `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FriendRequest) TableName() string { return "friend_requests" }

// Friendship is one direction of an undirected friend edge between profiles.
// The invariant edge(A,B) ⇔ edge(B,A) is maintained by inserting and deleting
// both rows inside a single transaction, never by implicit symmetry.
type Friendship struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	ProfileID       int64     `gorm:"not null;index;uniqueIndex:idx_friend_edge" json:"profile_id"`
	FriendProfileID int64     `gorm:"not null;index;uniqueIndex:idx_friend_edge" json:"friend_profile_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Friendship) TableName() string { return "friendships" }
