package entities

import (
	"github.com/aarondl/null/v8"

	"backoffice/pkg/types"
)

type Folder struct {
	ID             uint64      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name"`
	Description    null.String `json:"description,omitempty" db:"description"`
	ParentFolderID null.Uint64 `json:"parent_folder_id,omitempty" db:"parent_folder_id"`
	UserID         uint64      `json:"user_id" db:"user_id"`

	SubFolders []Folder `json:"sub_folders,omitempty" db:"-"`
	Files      []File   `json:"files,omitempty" db:"-"`

	types.BaseEntity
	types.SoftDelete
}
