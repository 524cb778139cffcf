package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func multipartFile(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File[field][0]
}

func TestUploadStoreSaveAndRemove(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	fh := multipartFile(t, "file", "notes.pdf", []byte("%PDF fake"))

	stored, err := store.Save(fh)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if stored.Ext != "pdf" {
		t.Errorf("ext = %q, want pdf", stored.Ext)
	}
	if filepath.Base(stored.Key) == "notes.pdf" {
		t.Error("original filename used on disk")
	}
	if _, err := os.Stat(store.Path(stored.Key)); err != nil {
		t.Errorf("stored blob missing: %v", err)
	}

	if err := store.Remove(stored.Key); err != nil {
		t.Errorf("Remove: %v", err)
	}
	// Removing again must not error.
	if err := store.Remove(stored.Key); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestUploadStoreRejectsExtension(t *testing.T) {
	store := NewUploadStore(t.TempDir())
	fh := multipartFile(t, "file", "run.exe", []byte("MZ"))
	if _, err := store.Save(fh); err != errUploadExt {
		t.Errorf("Save error = %v, want errUploadExt", err)
	}
}

func TestMediaKind(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"png", "image"}, {"jpeg", "image"},
		{"mp3", "voice"}, {"ogg", "voice"},
		{"pdf", "document"}, {"zip", "document"},
	}
	for _, tt := range tests {
		if got := mediaKind(tt.ext); got != tt.want {
			t.Errorf("mediaKind(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
