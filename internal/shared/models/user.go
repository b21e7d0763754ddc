package models

// UserFields are the account attributes of the read view.
type UserFields struct {
	Email       string  `json:"email" validate:"required"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
	FullName    *string `json:"full_name,omitempty"`
}

type UserPublic struct {
	UserFields
	ID int `json:"id"`
}

type UsersPublic struct {
	Data  []UserPublic `json:"data"`
	Count int          `json:"count"`
}

// UserCreate leaves the flags nil to take the server defaults
// (active, not superuser).
type UserCreate struct {
	Email       string  `json:"email" validate:"required"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Password    string  `json:"password" validate:"required"`
}

type UserRegister struct {
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name,omitempty"`
}

type UserUpdate struct {
	Email       *string `json:"email,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	Password    *string `json:"password,omitempty"`
}

type UserUpdateMe struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}
