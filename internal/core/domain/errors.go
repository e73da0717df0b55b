package domain

import "errors"

// Sentinel errors. The HTTP layer maps each to a deterministic status code;
// services wrap them with context via fmt.Errorf("...: %w", err).
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidState       = errors.New("operation not valid in current state")
	ErrDeadlinePassed     = errors.New("bidding deadline has passed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrProjectNotFound = errors.New("project not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrRatingNotFound  = errors.New("rating not found")

	ErrDuplicateBid    = errors.New("bid already submitted for this project")
	ErrDuplicateRating = errors.New("user already rated for this project")
	ErrProjectHasBids  = errors.New("cannot delete project with existing bids")
	ErrAlreadyReported = errors.New("rating already reported")
)

// Upload errors raised by the file intake boundary before any entity write.
var (
	ErrFileTooLarge        = errors.New("file too large")
	ErrTooManyFiles        = errors.New("too many files")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
