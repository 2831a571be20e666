package utils

import (
	"taskboard/internal/pkg/logger"
	"taskboard/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Detail  string      `json:"detail,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(errors.CodeSuccess, Response{
		Code:    errors.CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(errors.CodeCreated, Response{
		Code:    errors.CodeCreated,
		Message: "created",
		Data:    data,
	})
}

// Error 错误响应, HTTP 状态码由错误类别决定
func Error(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		status := appErr.Status()
		if status >= errors.CodeInternalError {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		c.JSON(status, Response{
			Code:    status,
			Message: appErr.Message,
		})
		return
	}

	logger.Error("unhandled error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(errors.CodeInternalError, Response{
		Code:    errors.CodeInternalError,
		Message: errors.ErrInternalError.Message,
	})
}

// ErrorWithDetail 带详细信息的错误响应
func ErrorWithDetail(c *gin.Context, err *errors.AppError, detail string) {
	status := err.Status()
	c.JSON(status, Response{
		Code:    status,
		Message: err.Message,
		Detail:  detail,
	})
}

// AbortWithError writes the error response and stops the handler chain.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
