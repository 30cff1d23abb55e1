package etorder

import (
	"errors"
	"fmt"
	"strings"
)

// 错误定义
var (
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidAction        = errors.New("invalid action")

	// ErrEmptyUpdate 请求没有产生任何变更，调用方按 no-op 处理
	ErrEmptyUpdate = errors.New("no changes to apply")
)

// ValidationError 字段校验失败，携带被拒绝的值和允许值集合
type ValidationError struct {
	Err     error
	Field   string
	Value   string
	Allowed []string
}

func newValidationError(err error, field, value string, allowed []string) *ValidationError {
	return &ValidationError{
		Err:     err,
		Field:   field,
		Value:   value,
		Allowed: allowed,
	}
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q, allowed: %s", e.Err.Error(), e.Value, strings.Join(e.Allowed, ", "))
}

// Unwrap 支持 errors.Is(err, ErrInvalidOrderStatus) 之类的判断
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// AsValidationError 从错误链中取出字段校验错误（对应 HTTP 400）
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
