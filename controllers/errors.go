package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ismaeltironi-cloud/locadora-pro/pkg/oficina"
	"github.com/ismaeltironi-cloud/locadora-pro/pkg/resp"
	"github.com/ismaeltironi-cloud/locadora-pro/services"
	"github.com/ismaeltironi-cloud/locadora-pro/utils"
)

// writeError maps service failures to HTTP responses in one place so
// every controller reports the same failure the same way.
func writeError(c *gin.Context, err error) {
	var enumErr *oficina.EnumRejectedError
	var orphanErr *oficina.PhotoOrphanedError
	var apiErr *oficina.APIError

	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrLocked),
		errors.Is(err, services.ErrWrongState),
		errors.Is(err, services.ErrMutationInFlight),
		errors.Is(err, services.ErrDuplicateCNPJ),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateUsername):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPhotoRequired),
		errors.Is(err, services.ErrInvalidPlate),
		errors.Is(err, utils.ErrInvalidImage),
		errors.Is(err, oficina.ErrNoSelector):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, oficina.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, err.Error())
	case errors.As(err, &enumErr):
		resp.ServerErrorDetails(c, enumErr.Error(), gin.H{
			"attempted": enumErr.Attempted,
			"valid":     enumErr.Valid,
		})
	case errors.As(err, &orphanErr):
		resp.ServerErrorDetails(c, orphanErr.Error(), gin.H{
			"photoUrl": orphanErr.PhotoURL,
		})
	case errors.As(err, &apiErr):
		resp.ServerError(c, err)
	default:
		resp.ServerError(c, err)
	}
}
