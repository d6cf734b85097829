package filestorage

import (
	"mime/multipart"
)

// UploadPolicy restricts what Store accepts and where it puts it.
type UploadPolicy struct {
	// SubDir is the directory below the storage root, e.g. "students".
	SubDir string
	// Prefix is prepended to every generated filename.
	Prefix string
	// AllowedExtensions, when set, is checked against the lower-cased
	// extension of the client filename (without the dot).
	AllowedExtensions []string
	// AllowedMIMETypes, when set, is checked against the sniffed content type.
	AllowedMIMETypes []string
	// MaxSize in bytes; zero disables the limit.
	MaxSize int64
	// TypeMessage is the client-facing text for a rejected type.
	TypeMessage string
}

// FileStorage defines the interface for picture storage operations
type FileStorage interface {
	// Store validates and saves the file, returning the relative path to persist.
	// A nil fileHeader stores nothing and returns an empty path.
	Store(fileHeader *multipart.FileHeader, policy UploadPolicy) (string, error)

	// Discard removes a previously stored file. Missing files are not an error.
	Discard(storedPath string) error
}
