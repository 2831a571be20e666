package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GormWriter 把 gorm 的 SQL 日志写入当前 zap logger, 级别过滤由 gorm 的 LogLevel 决定
type GormWriter struct{}

func (GormWriter) Printf(format string, args ...interface{}) {
	log.Info(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "gorm"))
}

func GetWriter() GormWriter {
	return GormWriter{}
}
