package membership

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

// Module errors.
var (
	ErrMembersOnly = apperrors.New(apperrors.ErrForbidden, "only team members can access this project")
)
