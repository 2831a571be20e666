package middleware

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/dto"
	"taskboard/pkg/constants"
)

// CurrentUser 由 SessionGate 写入 context 的用户, 匿名请求返回 nil
func CurrentUser(c *gin.Context) *dto.UserInfo {
	value, exists := c.Get(constants.ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*dto.UserInfo)
	return user
}
