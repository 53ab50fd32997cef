package v1

import (
	"errors"
	"net/http"

	"github.com/agencydesk/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrReferenceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errCompanyIDParameter = errors.New("the company query parameter must be set")
	errMemberIDParameter  = errors.New("the member query parameter must be set")
	errYearParameter      = errors.New("the year parameter must be a four digit year")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)
