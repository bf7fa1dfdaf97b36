package service

import (
	"errors"

	apperrors "github.com/erico-tech-world/personal-portfolio/pkg/errors"
)

// opError converts a collaborator error into the admin-facing error for the
// operation, keeping the original status and code when the cause is already
// an AppError (NotFound, AlreadyExists) and classifying plain store errors
// as a failed metadata write.
func opError(prefix string, err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return &apperrors.AppError{
			Code:    appErr.Code,
			Message: prefix + ": " + appErr.Message,
			Status:  appErr.Status,
			Err:     err,
		}
	}

	return apperrors.WriteFailed(prefix+": "+err.Error(), err)
}

// uploadError wraps a media store failure for the admin-facing response.
func uploadError(prefix string, err error) error {
	return apperrors.UploadFailed(prefix+": "+err.Error(), err)
}
