package share

import "errors"

var (
	ErrNotFound     = errors.New("transfer not found")
	ErrExpired      = errors.New("transfer has expired")
	ErrCodeExpired  = errors.New("confirmation code has expired")
	ErrCodeMismatch = errors.New("confirmation code does not match")
	ErrNoFiles      = errors.New("transfer requires at least one file")
	ErrFileNotFound = errors.New("file not found in transfer")
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
)
