package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// data in the success envelope is a plain map
type Response map[string]interface{}

// business codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeInvalidToken = 40301
	CodeForbidden    = 40302
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
	CodeImportFailed = 50002
	CodeUpstream     = 50003
)

// Success writes a 200 envelope.
func Success(c *gin.Context, data Response) {
	Respond(c, http.StatusOK, data)
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data Response) {
	Respond(c, http.StatusCreated, data)
}

func Respond(c *gin.Context, httpStatus int, data Response) {
	c.JSON(httpStatus, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// StatusOf maps an error from the taxonomy to an HTTP status and business code.
func StatusOf(err error) (int, int) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, CodeAuth
	case errors.Is(err, ErrInvalidToken):
		return http.StatusForbidden, CodeInvalidToken
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, CodeInvalidParam
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, ErrImportFailed):
		return http.StatusInternalServerError, CodeImportFailed
	case errors.Is(err, ErrUpstreamFailure):
		return http.StatusInternalServerError, CodeUpstream
	default:
		return http.StatusInternalServerError, CodeServerErr
	}
}

// clientMessages are shown for taxonomy errors that are the caller's fault.
var clientMessages = []struct {
	err error
	msg string
}{
	{ErrUnauthenticated, "authentication failed"},
	{ErrInvalidToken, "invalid or expired token"},
	{ErrForbidden, "access denied"},
	{ErrNotFound, "record not found"},
	{ErrConflict, "already exists"},
}

// Fail writes the error envelope for err. Validation messages are shown to
// the caller as is, other client errors get a fixed message and server
// errors get the fallback.
func Fail(c *gin.Context, err error, fallback string) {
	status, code := StatusOf(err)
	_ = c.Error(err)

	msg := fallback
	var verr *ValidationError
	if errors.As(err, &verr) {
		msg = verr.Error()
	} else {
		for _, m := range clientMessages {
			if errors.Is(err, m.err) {
				msg = m.msg
				break
			}
		}
	}
	Error(c, status, code, msg)
}
