package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business error codes carried in every error body.
const (
	CodeOK           = 0
	CodeInvalidParam = 42201
	CodeNotFound     = 40401
	CodeServerErr    = 50001
	CodeIntegrity    = 50002
	CodeUnavailable  = 50301
)

// Error writes the common error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// ValidationFailed writes a 422 with field-level detail.
// Errors that are not a ValidationError are reported under field "body".
func ValidationFailed(c *gin.Context, err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = NewValidationError("body", err.Error())
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"code":    CodeInvalidParam,
		"message": "validation failed",
		"errors":  verr.Fields,
	})
}
