package controllers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/middleware"
	"photogram-api/utils"
)

// bindForm binds JSON or form bodies and writes the validation response on failure.
func bindForm(c *gin.Context, form interface{}) bool {
	if err := c.ShouldBind(form); err != nil {
		utils.SendValidationError(c, forms.FieldErrors(err))
		return false
	}
	return true
}

// uploadedFiles collects files sent under any of the given multipart fields.
// Requests that are not multipart carry no files.
func uploadedFiles(c *gin.Context, fields ...string) ([]*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var files []*multipart.FileHeader
	for _, field := range fields {
		files = append(files, form.File[field]...)
	}
	return files, nil
}

// bindFiles is uploadedFiles that answers 400 itself when the body cannot be read.
func bindFiles(c *gin.Context, fields ...string) ([]*multipart.FileHeader, bool) {
	files, err := uploadedFiles(c, fields...)
	if err != nil {
		utils.SendValidationError(c, map[string][]string{
			forms.NonFieldErrors: {"invalid multipart body: " + err.Error()},
		})
		return nil, false
	}
	return files, true
}

// sendUploadError reports rejected files on field; other errors go through SendServiceError.
func sendUploadError(c *gin.Context, log *slog.Logger, field string, err error) {
	if errors.Is(err, apperrors.ErrUnsupportedImage) {
		utils.SendValidationError(c, map[string][]string{field: {apperrors.ErrUnsupportedImage.Error()}})
		return
	}
	utils.SendServiceError(c, log, err)
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
