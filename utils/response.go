// File: /utils/response.go
package utils

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photogram-api/apperrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   int                 `json:"code"`
	Fields map[string][]string `json:"fields"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{
		Error: err,
		Code:  status,
	})
}

// SendValidationError reports form errors field by field.
func SendValidationError(c *gin.Context, fields map[string][]string) {
	SendFieldErrors(c, http.StatusBadRequest, fields)
}

func SendFieldErrors(c *gin.Context, status int, fields map[string][]string) {
	c.JSON(status, ValidationErrorResponse{
		Error:  "Validation failed",
		Code:   status,
		Fields: fields,
	})
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	response := SuccessResponse{
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(http.StatusOK, response)
}

// SendServiceError maps domain errors to HTTP statuses. Unknown errors are logged and reported as 500.
func SendServiceError(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case apperrors.IsNotFound(err):
		SendError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		SendError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrInvalidCredentials):
		SendError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrUsernameTaken):
		SendFieldErrors(c, http.StatusConflict, map[string][]string{"username": {err.Error()}})
	case errors.Is(err, apperrors.ErrProfileExists):
		SendError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrSelfSubscription):
		SendError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))
		SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Pagination reads page and limit from the query string. Invalid values fall back to the defaults,
// limit is capped at MaxLimit and page is capped so that (page-1)*limit fits in an int32.
func Pagination(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}
