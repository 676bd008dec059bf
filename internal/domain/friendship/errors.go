package friendship

import "errors"

var (
	ErrAlreadyFriends   = errors.New("users are already connected")
	ErrSelfRequest      = errors.New("cannot send a request to yourself")
	ErrVisitorRole      = errors.New("visitors cannot send friend requests")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrDuplicateRequest = errors.New("a request for this pair already exists")
	ErrNotRecipient     = errors.New("only the recipient can act on this request")
	ErrNotPending       = errors.New("request is not pending")
	ErrNotFriends       = errors.New("users are not friends")
)
