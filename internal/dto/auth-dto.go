package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=CurrentPassword"`
}

type TokensResponseDTO struct {
	AccessToken             string `json:"access_token"`
	RefreshToken            string `json:"refresh_token"`
	DynamicPermissionsToken string `json:"dynamic_permissions_token"`
}
