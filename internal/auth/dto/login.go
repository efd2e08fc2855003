package dto

type LoginInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	TOTP      string `json:"totp"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}
