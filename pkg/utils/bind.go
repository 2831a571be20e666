package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// FormatBindError 格式化请求体/查询参数的解析错误. 字段规则由 validate 包在 service 层检查
func FormatBindError(err error) string {
	if err == nil {
		return ""
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("field '%s' should be %s", typeErr.Field, typeErr.Type.String())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "invalid JSON format"
	}
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}

	return err.Error()
}
