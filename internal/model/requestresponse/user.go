package requestresponse

// RegisterRequest : текстовые поля multipart формы регистрации, файлы avatar и coverImage идут отдельно
type RegisterRequest struct {
	Username string `validate:"required,min=3,max=64,alphanum"`
	Email    string `validate:"required,email"`
	FullName string `validate:"required,max=128"`
	Password string `validate:"required,min=6,max=72"`
}

// UpdateAccountRequest : тело запроса на обновление профиля
type UpdateAccountRequest struct {
	FullName string `json:"fullName" validate:"omitempty,max=128" example:"John Doe"`
	Email    string `json:"email" validate:"omitempty,email" example:"john@example.com"`
}
