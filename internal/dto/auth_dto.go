package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse 注册/登录响应, token 只通过 cookie 下发
type AuthResponse struct {
	User *UserInfo `json:"user"`
}
