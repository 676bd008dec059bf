package gallery

// UploadFile is one raw image received from the presentation layer.
type UploadFile struct {
	Name string
	Data []byte
}

type UploadRequest struct {
	Title             string  `form:"title" binding:"required,max=140"`
	Description       string  `form:"description"`
	CapturedOn        *string `form:"captured_on"` // YYYY-MM-DD
	CategoryID        *int64  `form:"category_id"`
	Visibility        string  `form:"visibility"`
	AllowedProfileIDs []int64 `form:"allowed_friends"`
}

type UpdatePhotoRequest struct {
	Title             *string `json:"title,omitempty" validate:"omitempty,max=140"`
	Description       *string `json:"description,omitempty"`
	CapturedOn        *string `json:"captured_on,omitempty"`
	CategoryID        *int64  `json:"category_id,omitempty"`
	Visibility        *string `json:"visibility,omitempty"`
	AllowedProfileIDs []int64 `json:"allowed_friends,omitempty"`
}

type CommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	IsAdultOnly bool   `json:"is_adult_only"`
}

// PhotoDetail is the detail-view payload: the photo plus its engagement.
type PhotoDetail struct {
	Photo     *Photo    `json:"photo"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	Comments  []Comment `json:"comments"`
}
