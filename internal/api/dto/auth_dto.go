package dto

// RegisterDTO 注册请求体
type RegisterDTO struct {
	Username     string  `json:"username" binding:"required,min=3,max=30"`
	Password     string  `json:"password" binding:"required,min=6,max=50"`
	FirstName    string  `json:"firstName" binding:"required,max=50"`
	LastName     string  `json:"lastName" binding:"required,max=50"`
	GmailAddress string  `json:"gmailAddress" binding:"omitempty,email"`
	Bio          *string `json:"bio" binding:"omitempty,max=200"`
}

// LoginDTO 登录请求体
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO 登录成功响应
type TokenDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
