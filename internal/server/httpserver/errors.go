package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; the first errors.Is match wins.
var errorMappings = []errorMapping{
	{common.ErrDuplicateAccount, http.StatusForbidden, "CREDENTIALS_TAKEN", "Credentials already taken"},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials"},
	{common.ErrInvalidPassword, http.StatusUnauthorized, "INVALID_PASSWORD", "Invalid password"},
	{common.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED", "Access to resources denied"},
	{common.ErrorNotFound, http.StatusNotFound, "NOT_FOUND", "Not found"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token expired"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"},
}

// writeError aborts the request with the status and body mapped from err.
// Unmapped errors become a generic 500 and are logged; their text is never
// sent to the client.
func (h *handlers) writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.AbortWithStatusJSON(m.status, shared.ErrorResponse{Code: m.code, Message: m.message})
			return
		}
	}

	h.logger.Error(c.Request.Context(), "request failed",
		"request_id", c.GetString(requestIDKey), "route", c.FullPath(), "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, shared.ErrorResponse{
		Code:    "INTERNAL",
		Message: "Internal server error",
	})
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, shared.ErrorResponse{Code: "INVALID_INPUT", Message: message})
}

// bindError turns a ShouldBindJSON failure into a 400 with a readable
// message, e.g. "email must be an email; password should not be empty".
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		badRequest(c, "request body must be valid JSON")
		return
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonName(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" should not be empty")
		case "email":
			msgs = append(msgs, field+" must be an email")
		case "url":
			msgs = append(msgs, field+" must be a URL address")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	badRequest(c, strings.Join(msgs, "; "))
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
