package controllers

import (
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/pkg/apperrors"
	"github.com/campuslink/clubnet/internal/pkg/filestorage"
)

// Per-entity attachment limits.
const (
	maxPostMedia    = 10
	maxCommentMedia = 3
	maxMessageMedia = 3
)

// Uploader validates and stores multipart uploads for controllers.
type Uploader struct {
	storage      filestorage.FileStorage
	maxFileSize  int64
	allowedTypes map[string]bool
}

// NewUploader creates a new Uploader
func NewUploader(storage filestorage.FileStorage, maxFileSize int64, allowedTypes []string) *Uploader {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &Uploader{
		storage:      storage,
		maxFileSize:  maxFileSize,
		allowedTypes: allowed,
	}
}

func (u *Uploader) validate(file *multipart.FileHeader) error {
	if file.Size > u.maxFileSize {
		return apperrors.NewValidationError(
			fmt.Sprintf("File %s exceeds the maximum size of %d bytes", file.Filename, u.maxFileSize))
	}

	contentType := file.Header.Get("Content-Type")
	if !u.allowedTypes[contentType] {
		return apperrors.NewValidationError(
			fmt.Sprintf("File type %s is not allowed", contentType))
	}
	return nil
}

// SaveOne validates and stores a single file, returning its path.
func (u *Uploader) SaveOne(file *multipart.FileHeader) (string, error) {
	if err := u.validate(file); err != nil {
		return "", err
	}

	path, err := u.storage.SaveFile(file)
	if err != nil {
		return "", apperrors.NewInternalError("Failed to store uploaded file", err)
	}
	return path, nil
}

// SaveAll validates and stores up to max files. All files are
// validated before any is written, so a bad file leaves nothing
// behind.
func (u *Uploader) SaveAll(files []*multipart.FileHeader, max int) ([]string, error) {
	if len(files) > max {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("At most %d files can be attached", max))
	}

	for _, file := range files {
		if err := u.validate(file); err != nil {
			return nil, err
		}
	}

	paths := []string{}
	for _, file := range files {
		path, err := u.storage.SaveFile(file)
		if err != nil {
			for _, saved := range paths {
				u.storage.DeleteFile(saved)
			}
			return nil, apperrors.NewInternalError("Failed to store uploaded file", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FormMedia saves the "media" multipart files, if any.
func (u *Uploader) FormMedia(c *gin.Context, max int) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Not a multipart request; no media attached.
		return nil, nil
	}

	files := form.File["media"]
	if len(files) == 0 {
		return nil, nil
	}

	return u.SaveAll(files, max)
}
