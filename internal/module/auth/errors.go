package auth

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Auth module errors.
var (
	ErrInvalidToken       = apperrors.New(apperrors.ErrUnauthorized, "invalid token")
	ErrInvalidTokenClaims = apperrors.New(apperrors.ErrUnauthorized, "invalid token claims")
)
