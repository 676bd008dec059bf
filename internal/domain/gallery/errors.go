package gallery

import "errors"

var (
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAccessDenied     = errors.New("you do not have access to this photo")
	ErrNotOwner         = errors.New("you do not own this photo")
	ErrRoleCannotUpload = errors.New("your role cannot upload photos")
	ErrNoImages         = errors.New("at least one image is required")
	ErrImageTooLarge    = errors.New("image exceeds the size limit")
	ErrCategoryExists   = errors.New("category already exists")
	ErrParentMismatch   = errors.New("parent comment belongs to a different photo")
)
