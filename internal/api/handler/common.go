package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/api/middleware"
	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"
)

// bindJSON 解析请求体, 失败时已写入 400 响应
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.ErrorWithDetail(c, pkgErrors.ErrBadRequest, utils.FormatBindError(err))
		return false
	}
	return true
}

// currentUserID 受保护路由由 SessionGate 保证已登录
func currentUserID(c *gin.Context) string {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
