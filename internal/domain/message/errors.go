package message

import "errors"

var (
	ErrNotFriends   = errors.New("users are not friends")
	ErrSelfMessage  = errors.New("cannot message yourself")
	ErrEmptyContent = errors.New("message content is empty")
)
