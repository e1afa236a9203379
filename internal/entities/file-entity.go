package entities

import (
	"github.com/aarondl/null/v8"

	"backoffice/pkg/types"
)

type File struct {
	ID               uint64      `json:"id" db:"id"`
	Path             string      `json:"path" db:"path"`
	FileName         string      `json:"file_name" db:"file_name"`
	OriginalFileName string      `json:"original_file_name" db:"original_file_name"`
	UserID           uint64      `json:"user_id" db:"user_id"`
	UploaderIP       string      `json:"uploader_ip" db:"uploader_ip"`
	MimeType         string      `json:"mime_type" db:"mime_type"`
	FileSize         int64       `json:"file_size" db:"file_size"`
	FolderID         null.Uint64 `json:"folder_id,omitempty" db:"folder_id"`

	types.BaseEntity
	types.SoftDelete
}

// Document is a standalone uploaded record not bound to the folder tree.
type Document struct {
	ID         string `json:"id" db:"id"`
	Path       string `json:"path" db:"path"`
	UserID     uint64 `json:"user_id" db:"user_id"`
	UploaderIP string `json:"uploader_ip" db:"uploader_ip"`
	MimeType   string `json:"mime_type" db:"mime_type"`

	types.BaseEntity
}
