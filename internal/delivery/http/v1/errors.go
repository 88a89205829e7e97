package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskswift/internal/query"
	"github.com/adanyl0v/taskswift/internal/services"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errStaleTask          = errors.New("task not found, reload the task list")
)

const invalidFormMessage = "Please fix the errors in the form"

type apiError struct {
	Code    int               `json:"-"`
	Message string            `json:"error"`
	Fields  query.FieldErrors `json:"fields,omitempty"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newValidationError(fields query.FieldErrors) apiError {
	err := newAPIError(http.StatusUnprocessableEntity, invalidFormMessage)
	err.Fields = fields
	return err
}

// newServiceError maps task store errors onto API errors.
func newServiceError(err error) apiError {
	var fields query.FieldErrors
	var perr *services.PersistenceError
	switch {
	case errors.As(err, &fields):
		return newValidationError(fields)
	case errors.Is(err, services.ErrTaskNotFound):
		return newNotFoundError(errStaleTask.Error())
	case errors.As(err, &perr):
		return newAPIError(http.StatusServiceUnavailable, perr.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
