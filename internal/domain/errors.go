package domain

import "errors"

var (
	// ErrForbidden is returned when a non-admin caller invokes an admin operation.
	ErrForbidden = errors.New("forbidden")
	// ErrQuizNotFound indicates the referenced quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSubmissionNotFound indicates the referenced submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoMessages indicates there is no user record whose messages could be edited.
	ErrNoMessages = errors.New("user has no messages")
	// ErrDuplicateSubmission is returned when a user already submitted for a quiz.
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrPhoneRequired is returned when registration lacks the mandatory phone.
	ErrPhoneRequired = errors.New("phone number is required")
	// ErrStoreUnavailable indicates no key-value store capability is bound.
	ErrStoreUnavailable = errors.New("key-value store not bound")
)
