package dto

type CreateUserDTO struct {
	Username     string   `json:"username" validate:"required,min=3,max=64"`
	Password     string   `json:"password" validate:"required,min=8"`
	FirstName    string   `json:"first_name" validate:"required,max=128"`
	LastName     string   `json:"last_name" validate:"required,max=128"`
	MobileNumber string   `json:"mobile_number,omitempty" validate:"omitempty,e164"`
	DeviceID     string   `json:"device_id,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
	RoleIDs      []uint64 `json:"role_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type UpdateUserDTO struct {
	FirstName    string   `json:"first_name" validate:"required,max=128"`
	LastName     string   `json:"last_name" validate:"required,max=128"`
	MobileNumber string   `json:"mobile_number,omitempty" validate:"omitempty,e164"`
	DeviceID     string   `json:"device_id,omitempty"`
	RoleIDs      []uint64 `json:"role_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

type SetUserActiveDTO struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
