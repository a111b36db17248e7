package user

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Module errors.
var (
	ErrUserNotFound = apperrors.New(apperrors.ErrNotFound, "user not found")
)
