package notification

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Module errors.
var (
	ErrNotificationNotFound = apperrors.New(apperrors.ErrNotFound, "notification not found")
	ErrSinkUnavailable      = apperrors.New(apperrors.ErrInternal, "notification sink unavailable")
)
