package filestorage

import "mime/multipart"

// FileStorage abstracts where uploaded media ends up.
type FileStorage interface {
	// SaveFile stores an uploaded file and returns its relative path.
	SaveFile(file *multipart.FileHeader) (string, error)

	// DeleteFile removes a previously stored file. Deleting a missing
	// file is not an error.
	DeleteFile(path string) error

	// GetFullPath resolves a stored relative path to an absolute one.
	GetFullPath(path string) string
}
