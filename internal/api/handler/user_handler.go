package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
	"taskboard/pkg/utils"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List 用户列表
// @Summary 用户列表
// @Description 用于任务指派与添加项目成员
// @Tags User
// @Produce json
// @Success 200 {object} utils.Response{data=[]dto.UserInfo}
// @Router /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		utils.Error(c, err)
		return
	}
	utils.Success(c, users)
}
