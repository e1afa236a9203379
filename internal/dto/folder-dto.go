package dto

type CreateFolderDTO struct {
	Name           string  `json:"name" validate:"required,max=256"`
	Description    string  `json:"description,omitempty" validate:"max=1024"`
	ParentFolderID *uint64 `json:"parent_folder_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateFolderDTO struct {
	Name        string `json:"name" validate:"required,max=256"`
	Description string `json:"description,omitempty" validate:"max=1024"`
}
