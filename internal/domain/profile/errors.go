package profile

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrRequestNotFound = errors.New("dob change request not found")
	ErrFieldLocked     = errors.New("field can only be changed by staff")
	ErrAlreadyPending  = errors.New("a dob change request is already pending")
	ErrNotPending      = errors.New("request is not pending")
	ErrInvalidRole     = errors.New("invalid role")
	ErrNoAvatar        = errors.New("no avatar set")
	ErrAvatarTooLarge  = errors.New("avatar exceeds the size limit")
)
