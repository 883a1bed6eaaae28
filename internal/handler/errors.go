package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
)

// Error codes returned in dto.ErrorResponse.Error
const (
	codeValidation          = "validation_failed"
	codeUsernameTaken       = "username_taken"
	codeEmailTaken          = "email_taken"
	codeInvalidCredentials  = "invalid_credentials"
	codeInvalidRefreshToken = "invalid_refresh_token"
	codeTokenExpired        = "token_expired"
	codeInvalidToken        = "invalid_token"
	codeTaskNotFound        = "task_not_found"
	codeInternal            = "internal_error"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrValidation, http.StatusBadRequest, codeValidation},
	{domain.ErrUsernameTaken, http.StatusConflict, codeUsernameTaken},
	{domain.ErrEmailTaken, http.StatusConflict, codeEmailTaken},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, codeInvalidCredentials},
	{domain.ErrInvalidRefreshToken, http.StatusUnauthorized, codeInvalidRefreshToken},
	{domain.ErrExpiredToken, http.StatusUnauthorized, codeTokenExpired},
	{domain.ErrInvalidToken, http.StatusUnauthorized, codeInvalidToken},
	{domain.ErrTaskNotFound, http.StatusNotFound, codeTaskNotFound},
}

// writeError maps a service error to its HTTP status. Unknown errors are logged
// and reported without detail.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.AbortWithStatusJSON(m.status, dto.ErrorResponse{
				Error:   m.code,
				Message: err.Error(),
			})
			return
		}
	}

	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   codeInternal,
		Message: "internal server error",
	})
}

// writeBindError reports a request that failed decoding or binding rules.
// Validator output names Go types, so only the JSON field and rule are echoed.
func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   codeValidation,
		Message: bindErrorMessage(err),
	})
}

func bindErrorMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldErrorMessage(fe))
		}
		return strings.Join(msgs, "; ")
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return "request body is not valid JSON"
	case errors.As(err, &typeErr):
		if typeErr.Field != "" {
			return typeErr.Field + " has the wrong type"
		}
		return "request body is not valid JSON"
	}
	return "request is malformed"
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := snakeCase(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	}
	return field + " is invalid"
}

// snakeCase turns a struct field name such as RefreshToken into refresh_token.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
