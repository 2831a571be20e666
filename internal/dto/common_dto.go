package dto

import (
	"bytes"
	"encoding/json"
)

// Optional 区分字段缺省与显式 null: 缺省时 Set=false, null 时 Set=true 且 Value=nil
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Some 构造已赋值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 构造显式 null 的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
