package model

import "time"

// File visibility levels stored in files.visibility.
const (
	FileVisibilityPublic  = "public"
	FileVisibilityGroup   = "group"
	FileVisibilityPrivate = "private"
)

// File is a library upload stored on disk under StorageKey. Only
// approved files appear in the public library listing. Teachers act
// as moderators and may delete any file regardless of ownership.
type File struct {
	ID            uint64    `json:"id"`                    // files.id
	UploaderID    uint64    `json:"uploader_id"`           // files.uploader_id
	FileName      string    `json:"file_name"`             // files.file_name (original client name)
	FileURL       string    `json:"file_url"`              // files.file_url (public download path)
	StorageKey    string    `json:"-"`                     // files.storage_key (name on disk)
	FileType      string    `json:"file_type"`             // files.file_type (extension without dot)
	FileSize      int64     `json:"file_size"`             // files.file_size in bytes
	Subject       *string   `json:"subject,omitempty"`     // files.subject (nullable)
	Description   *string   `json:"description,omitempty"` // files.description (nullable)
	Visibility    string    `json:"visibility"`            // files.visibility
	GroupID       *uint64   `json:"group_id,omitempty"`    // files.group_id (nullable)
	DownloadCount int       `json:"download_count"`        // files.download_count
	Approved      bool      `json:"approved"`              // files.approved
	CreatedAt     time.Time `json:"created_at"`            // files.created_at
}
