package thread

import (
	apperrors "github.com/campuscollab/server/internal/shared/errors"
)

var ErrThreadNotFound = apperrors.New(apperrors.ErrNotFound, "thread not found")
