package application

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Module errors.
var (
	// Application errors
	ErrApplicationNotFound  = apperrors.New(apperrors.ErrNotFound, "application not found")
	ErrOwnProject           = apperrors.New(apperrors.ErrInvalidOperation, "cannot apply to own project")
	ErrDuplicateApplication = apperrors.New(apperrors.ErrConflict, "duplicate application")

	// Decision errors
	ErrInvalidStatus     = apperrors.New(apperrors.ErrInvalidOperation, "status must be accepted or rejected")
	ErrInvalidTransition = apperrors.New(apperrors.ErrInvalidOperation, "an accepted member cannot be rejected, remove them instead")
	ErrStaleStatus       = apperrors.New(apperrors.ErrConflict, "application was updated concurrently")

	// Departure errors
	ErrOwnerCannotLeave = apperrors.New(apperrors.ErrInvalidOperation, "owner cannot leave own project")
	ErrNotMember        = apperrors.New(apperrors.ErrNotFound, "not a member")
	ErrCannotRemoveSelf = apperrors.New(apperrors.ErrInvalidOperation, "cannot remove yourself")
	ErrMemberNotFound   = apperrors.New(apperrors.ErrNotFound, "member not found")
)
