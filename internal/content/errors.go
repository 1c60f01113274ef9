package content

import (
	"errors"
	"net/http"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/upload"
	"launchpad-api/internal/validation"
)

// UploadError maps a Receiver failure to the validation-class error callers see.
func UploadError(err error) error {
	switch {
	case errors.Is(err, upload.ErrNotImage):
		return apperr.BadRequest("Only image uploads are allowed").WithCause(err)
	case errors.Is(err, upload.ErrTooLarge):
		return apperr.BadRequest("File too large").WithCause(err)
	case errors.Is(err, upload.ErrUnexpectedField):
		return apperr.BadRequest("Unexpected field").WithCause(err)
	case errors.Is(err, upload.ErrMalformed):
		return apperr.BadRequest(validation.InvalidPayloadMessage).WithCause(err)
	default:
		return apperr.Internal(err)
	}
}

// ServiceError maps the shared service failures; anything else is internal.
func ServiceError(err error) error {
	var appErr *apperr.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrForbidden):
		return apperr.New(http.StatusForbidden, "Forbidden")
	default:
		return apperr.Internal(err)
	}
}
