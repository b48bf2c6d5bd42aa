package models

import "inventory/pkg/roles"

type User struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Fullname     string `json:"fullname" db:"fullname"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

// Identity is the authenticated user acting on a cart.
type Identity struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Role roles.Role `json:"role"`
}

type CreateUserRequest struct {
	Username string     `json:"username" binding:"required"`
	Password string     `json:"password" binding:"required,min=6"`
	Fullname string     `json:"fullname"`
	Role     roles.Role `json:"role" binding:"required"`
}
