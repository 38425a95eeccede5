package model

// User is an account able to log in. The password hash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate accepts anything: unknown or empty credentials are answered with 401.
func (r *LoginRequest) Validate() error {
	return nil
}

type LoginResponse struct {
	User *User `json:"user"`
}
