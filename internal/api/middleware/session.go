package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/dto"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/metrics"
	"taskboard/pkg/constants"
	pkgErrors "taskboard/pkg/errors"
	"taskboard/pkg/utils"
)

// SessionResolver 会话 token -> 用户
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*dto.UserInfo, error)
}

// SessionCookie 会话 cookie 的写入参数
type SessionCookie struct {
	Name   string
	MaxAge int // 秒
	Secure bool
}

// Set 写入会话 cookie: HttpOnly, SameSite=Strict, Path=/
func (sc SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sc.name(), token, sc.MaxAge, "/", "", sc.Secure, true)
}

// Clear 立即过期
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sc.name(), "", -1, "/", "", sc.Secure, true)
}

// Token 请求中携带的会话 token
func (sc SessionCookie) Token(c *gin.Context) string {
	token, err := c.Cookie(sc.name())
	if err != nil {
		return ""
	}
	return token
}

func (sc SessionCookie) name() string {
	if sc.Name == "" {
		return constants.SessionCookieName
	}
	return sc.Name
}

type routeClass int

const (
	routePublic routeClass = iota
	routeProtected
	routeAuthOnly
)

// hasPathPrefix 按路径段匹配, "/apple" 不属于 "/app"
func hasPathPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func classifyRoute(path string) routeClass {
	switch {
	case hasPathPrefix(path, constants.PrefixAPIAuth):
		return routePublic
	case hasPathPrefix(path, constants.PrefixApp), hasPathPrefix(path, constants.PrefixAPI):
		return routeProtected
	case path == constants.PathLogin, path == constants.PathRegister:
		return routeAuthOnly
	default:
		return routePublic
	}
}

// SessionGate 解析会话并按路由类别放行:
//   - 受保护路由未登录: /app 跳转登录页, /api 返回 401
//   - 登录/注册页已登录: 跳转 dashboard
//   - 无效会话清除 cookie, 按匿名继续
//   - 会话存储故障返回 500, 不清除 cookie
func SessionGate(resolver SessionResolver, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user *dto.UserInfo
		if token := cookie.Token(c); token != "" {
			resolved, err := resolver.ResolveSession(c.Request.Context(), token)
			if err != nil && !pkgErrors.Is(err, pkgErrors.KindUnauthorized) {
				// 会话存储故障时保留 cookie
				utils.AbortWithError(c, err)
				return
			}
			if err != nil {
				metrics.SessionsRejectedTotal.Inc()
				logger.Warn("discarding session cookie",
					zap.String("path", c.Request.URL.Path),
					zap.String("ip", c.ClientIP()),
					zap.Error(err))
				cookie.Clear(c)
			} else {
				user = resolved
				c.Set(constants.ContextUserKey, user)
			}
		}

		path := c.Request.URL.Path
		switch classifyRoute(path) {
		case routeProtected:
			if user != nil {
				break
			}
			if hasPathPrefix(path, constants.PrefixAPI) {
				utils.AbortWithError(c, pkgErrors.ErrUnauthorized)
				return
			}
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
			return
		case routeAuthOnly:
			if user != nil {
				c.Redirect(http.StatusFound, constants.PathDashboard)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
