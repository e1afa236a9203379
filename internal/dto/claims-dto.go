package dto

// UpdateUserClaimsDTO replaces one claim type's values wholesale; an empty
// values list clears the type for the user.
type UpdateUserClaimsDTO struct {
	ClaimType string   `json:"claim_type" validate:"required,max=128"`
	Values    []string `json:"values" validate:"dive,required,max=256"`
}
