package dto

type UserOutput struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}
