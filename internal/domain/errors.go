package domain

import "errors"

// Business-rule errors surfaced to handlers. The central error handler
// maps each to an HTTP status; storage-level failures are never exposed
// directly.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")

	ErrMemberNotFound       = errors.New("member not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrDonationNotFound     = errors.New("donation not found")
	ErrGalleryItemNotFound  = errors.New("gallery item not found")
	ErrMessageNotFound      = errors.New("contact message not found")
	ErrCommentNotFound      = errors.New("comment not found")

	ErrEmailExists = errors.New("email already registered")

	ErrCommentTooLong = errors.New("comment exceeds maximum length")

	ErrAlreadyRegistered   = errors.New("already registered for this event")
	ErrNotRegistered       = errors.New("no registration found for this event")
	ErrEventFull           = errors.New("event has reached maximum participants")
	ErrDeadlinePassed      = errors.New("registration deadline has passed")
	ErrEventNotOpen        = errors.New("event is not open for registration")
	ErrEventNotCompleted   = errors.New("event is not completed yet")
	ErrParticipationLocked = errors.New("participation can no longer be withdrawn")
	ErrFeedbackExists      = errors.New("feedback already submitted for this event")
	ErrFeedbackNotAllowed  = errors.New("feedback requires attended participation")

	ErrInvalidTransition = errors.New("invalid status transition")
)
