package auth

import "time"

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required"`
}

// userSummary is the identity payload returned by login and /auth/me.
type userSummary struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}
