package dto

// LoginRequest carries guardian/staff credentials.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

// UserInfo is the public slice of a logged-in user.
type UserInfo struct {
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Role  string `json:"role"`
	Plano string `json:"plano"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}
