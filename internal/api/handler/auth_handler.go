package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/api/middleware"
	"taskboard/internal/dto"
	"taskboard/internal/service"
	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
	cookie      middleware.SessionCookie
}

func NewAuthHandler(authService service.AuthService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// Register 注册
// @Summary 用户注册
// @Description 注册成功后写入会话 cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册请求"
// @Success 201 {object} utils.Response{data=dto.AuthResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.cookie.Set(c, token)
	utils.Created(c, dto.AuthResponse{User: user})
}

// Login 登录
// @Summary 用户登录
// @Description 用户名或密码错误返回同一提示
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} utils.Response{data=dto.AuthResponse}
// @Failure 401 {object} utils.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.cookie.Set(c, token)
	utils.Success(c, dto.AuthResponse{User: user})
}

// Logout 登出
// @Summary 登出
// @Description 吊销会话并清除 cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := h.cookie.Token(c); token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			utils.Error(c, err)
			return
		}
	}
	h.cookie.Clear(c)
	utils.Success(c, nil)
}

// Me 当前用户
// @Summary 获取当前用户信息
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Failure 401 {object} utils.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	// /api/auth 不经过登录拦截, 需要自行判断
	user := middleware.CurrentUser(c)
	if user == nil {
		utils.Error(c, pkgErrors.ErrUnauthorized)
		return
	}
	utils.Success(c, user)
}
