package dto

type SignupRequest struct {
	Email     string   `json:"email" validate:"required,email,max=254"`
	Password  string   `json:"password" validate:"required"`
	FullName  string   `json:"full_name" validate:"required,max=150"`
	Bio       string   `json:"bio"`
	Age       *int     `json:"age" validate:"required,min=1,max=120"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url,max=500"`
	Skills    []string `json:"skills" validate:"omitempty,max=50,dive,max=100"`
	Languages []string `json:"languages" validate:"omitempty,max=50,dive,max=100"`
}

type SignupResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}
