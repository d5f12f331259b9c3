package relationship

import (
	"errors"
	"fmt"
)

// Kind classifies relationship failures so transports can map them to a status
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidOperation
	KindInvalidArgument
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a relationship failure with a message that is safe to show users
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrUserNotFound      = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrTargetNotFound    = &Error{Kind: KindNotFound, Message: "Requested user not found"}
	ErrRequesterNotFound = &Error{Kind: KindNotFound, Message: "Requesting user not found"}
	ErrRequestNotFound   = &Error{Kind: KindNotFound, Message: "Friend request not found"}

	ErrSelfRequest      = &Error{Kind: KindInvalidOperation, Message: "Cannot send friend request to oneself"}
	ErrSelfRelationship = &Error{Kind: KindInvalidOperation, Message: "A user has no relationship with themselves"}

	ErrInvalidDecision = &Error{Kind: KindInvalidArgument, Message: `Invalid status. Status can be "Accepted" or "Rejected"`}

	ErrAlreadySent     = &Error{Kind: KindConflict, Message: "Friend request already sent"}
	ErrAlreadyFriends  = &Error{Kind: KindConflict, Message: "Users are already friends"}
	ErrAlreadyReceived = &Error{Kind: KindConflict, Message: "Friend request already received"}
	// ErrConcurrentUpdate is returned when another request created the edge first
	ErrConcurrentUpdate = &Error{Kind: KindConflict, Message: "Friend request already exists"}
)

// KindOf classifies err. Anything that is not a relationship Error is internal.
func KindOf(err error) Kind {
	var relErr *Error
	if errors.As(err, &relErr) {
		return relErr.Kind
	}
	return KindInternal
}

// MessageOf returns the user-visible message for err
func MessageOf(err error) string {
	var relErr *Error
	if errors.As(err, &relErr) && relErr.Kind != KindInternal {
		return relErr.Message
	}
	return "Internal Server Error"
}

// internalError wraps a storage failure. The wrapped detail is for logs only.
func internalError(op string, err error) error {
	var relErr *Error
	if errors.As(err, &relErr) {
		return err
	}
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: fmt.Errorf("%s: %w", op, err)}
}
