package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxUploadBytes is the per-file size ceiling for library and chat
// uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

// allowedExts is the upload extension allowlist. Anything else is
// refused before touching disk.
var allowedExts = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "ppt": true, "pptx": true,
	"xls": true, "xlsx": true, "txt": true, "md": true, "zip": true,
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
	"mp3": true, "ogg": true, "wav": true, "m4a": true, "webm": true, "mp4": true,
}

var (
	errUploadTooLarge = errors.New("upload too large")
	errUploadExt      = errors.New("file type not allowed")
)

// UploadStore writes multipart uploads to the local upload
// directory under random names, so a hostile original filename never
// reaches the filesystem.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) *UploadStore { return &UploadStore{dir: dir} }

// StoredFile describes a persisted upload.
type StoredFile struct {
	Key  string // name on disk
	URL  string // public download path
	Ext  string // lowercase extension without dot
	Size int64
}

// Save validates and persists one multipart file.
func (s *UploadStore) Save(fh *multipart.FileHeader) (StoredFile, error) {
	if fh.Size > maxUploadBytes {
		return StoredFile{}, errUploadTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if !allowedExts[ext] {
		return StoredFile{}, errUploadExt
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return StoredFile{}, err
	}

	key := uuid.NewString() + "." + ext
	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return StoredFile{}, err
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return StoredFile{}, err
	}
	if n > maxUploadBytes {
		_ = os.Remove(filepath.Join(s.dir, key))
		return StoredFile{}, errUploadTooLarge
	}
	return StoredFile{Key: key, URL: "/uploads/" + key, Ext: ext, Size: n}, nil
}

// Remove deletes a stored blob; a missing blob is not an error.
func (s *UploadStore) Remove(key string) error {
	err := os.Remove(filepath.Join(s.dir, key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk location for a storage key.
func (s *UploadStore) Path(key string) string { return filepath.Join(s.dir, key) }

func writeUploadErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errUploadTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large"})
	case errors.Is(err, errUploadExt):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file type not allowed"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store file failed"})
	}
}
