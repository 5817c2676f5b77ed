package utils

import (
	"errors"
	"fmt"
	"net/http"

	"powerup/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Domain error kinds. Wrap them with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

// deniedMessage is the only body a caller sees for a resource that is missing
// or owned by someone else.
const deniedMessage = "Resource not found or access denied"

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HandleErrors is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// StatusFromError maps a domain error onto an HTTP status. ErrForbidden
// answers 404 like ErrNotFound, so ownership checks do not reveal that a
// resource exists.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrForbidden):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using the domain taxonomy. Validation and conflict
// details are returned to the caller; not-found and forbidden share one
// status and one body.
func RespondError(c *gin.Context, message string, err error) {
	status := StatusFromError(err)
	switch status {
	case http.StatusBadRequest, http.StatusConflict:
		JSONError(c, status, message, err.Error())
	case http.StatusNotFound:
		GetLogger().Info(message, zap.Error(err))
		c.JSON(status, ErrorResponse{Message: deniedMessage})
	default:
		GetLogger().Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: message,
			Details: "An unexpected error occurred. Please try again later.",
		})
	}
}

// FromStore lifts repository errors into the domain taxonomy. what names the
// entity for the error detail.
func FromStore(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNoDocument):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, database.ErrDuplicateKey):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, database.ErrWriteConflict):
		return fmt.Errorf("%w: %s was modified concurrently", ErrConflict, what)
	default:
		return err
	}
}
