package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
	"github.com/lams-capstone/lams-admin/internal/pkg/logger"
)

// PublicPrefix is the leading segment of every stored path and the URL prefix
// the uploads directory is served under.
const PublicPrefix = "uploads"

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// BasePath returns the storage root on disk
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// Store checks the file against policy and copies it under policy.SubDir with a
// generated name. Nothing is written when the file is rejected.
func (ls *LocalStorage) Store(fileHeader *multipart.FileHeader, policy UploadPolicy) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	if policy.MaxSize > 0 && fileHeader.Size > policy.MaxSize {
		return "", tooLarge(policy)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	if len(policy.AllowedExtensions) > 0 && !contains(policy.AllowedExtensions, ext) {
		logger.Warn().Str("filename", fileHeader.Filename).Msg("Rejected upload with disallowed extension")
		return "", invalidType(policy)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	if len(policy.AllowedMIMETypes) > 0 {
		mtype, err := mimetype.DetectReader(file)
		if err != nil {
			return "", fmt.Errorf("failed to detect file type: %w", err)
		}
		if !matchesAny(mtype, policy.AllowedMIMETypes) {
			logger.Warn().Str("filename", fileHeader.Filename).Str("mime", mtype.String()).Msg("Rejected upload with disallowed content type")
			return "", invalidType(policy)
		}
		// The served Content-Type follows the extension, so it must match the content
		ext = strings.TrimPrefix(mtype.Extension(), ".")
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
		}
	}

	dir := filepath.Join(ls.basePath, filepath.FromSlash(policy.SubDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	filename := policy.Prefix + uuid.New().String()
	if ext != "" {
		filename += "." + ext
	}
	dstPath := filepath.Join(dir, filename)

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	var src io.Reader = file
	if policy.MaxSize > 0 {
		// One extra byte tells us the declared size was wrong.
		src = io.LimitReader(file, policy.MaxSize+1)
	}
	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if policy.MaxSize > 0 && written > policy.MaxSize {
		_ = os.Remove(dstPath)
		return "", tooLarge(policy)
	}

	stored := path.Join(PublicPrefix, policy.SubDir, filename)
	logger.Info().Str("filename", fileHeader.Filename).Str("stored_as", stored).Msg("File saved successfully")
	return stored, nil
}

// Discard removes a file previously returned by Store.
func (ls *LocalStorage) Discard(storedPath string) error {
	if storedPath == "" {
		return nil
	}

	physicalPath, err := ls.resolve(storedPath)
	if err != nil {
		return err
	}

	if err := os.Remove(physicalPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// resolve maps a stored path back to the filesystem, refusing anything that
// would land outside the storage root.
func (ls *LocalStorage) resolve(storedPath string) (string, error) {
	rel := strings.TrimPrefix(filepath.ToSlash(storedPath), PublicPrefix+"/")
	clean := path.Clean("/" + rel)
	if clean == "/" || clean != "/"+rel {
		return "", fmt.Errorf("invalid file path: %s", storedPath)
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

func invalidType(policy UploadPolicy) error {
	msg := policy.TypeMessage
	if msg == "" {
		msg = "Invalid file type."
	}
	return &apperrors.CustomError{Err: apperrors.ErrInvalidFileType, Message: msg}
}

func tooLarge(policy UploadPolicy) error {
	return &apperrors.CustomError{
		Err:     apperrors.ErrFileTooLarge,
		Message: fmt.Sprintf("File size too large. Maximum %s allowed.", humanSize(policy.MaxSize)),
	}
}

func humanSize(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func matchesAny(mtype *mimetype.MIME, allowed []string) bool {
	for _, a := range allowed {
		if mtype.Is(a) {
			return true
		}
	}
	return false
}
