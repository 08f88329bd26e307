package validator

import (
	"errors"
	"strings"
)

// FieldError 字段错误
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   any    `json:"value"`
	Message string `json:"message"`
}

// ValidationErrors 校验错误
type ValidationErrors struct {
	Fields []FieldError
}

// Error 返回以分号连接的错误消息
func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Metadata 返回字段名到错误消息的映射
func (e *ValidationErrors) Metadata() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		m[f.Field] = f.Message
	}
	return m
}

// IsValidationError 检查是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

// FieldMessage 获取指定字段的错误消息
func FieldMessage(err error, field string) string {
	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		return ""
	}
	for _, f := range ve.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
