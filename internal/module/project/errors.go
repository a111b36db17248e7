package project

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Module errors.
var (
	ErrProjectNotFound     = apperrors.New(apperrors.ErrNotFound, "project not found")
	ErrNotOwner            = apperrors.New(apperrors.ErrForbidden, "only the project owner can do this")
	ErrTitleRequired       = apperrors.New(apperrors.ErrValidation, "title is required")
	ErrDescriptionRequired = apperrors.New(apperrors.ErrValidation, "description is required")
	ErrThreadRequired      = apperrors.New(apperrors.ErrValidation, "thread_slug is required")
	ErrInvalidFileLink     = apperrors.New(apperrors.ErrValidation, "file links need a name and a url")
)
