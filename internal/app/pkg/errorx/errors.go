package errorx

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrOrderNotFound 订单不存在
var ErrOrderNotFound = errors.New("order not found")

// BusinessError 可以直接返回给调用方的错误，Code 即 HTTP 状态码
type BusinessError struct {
	Code    int
	Message string
	Details []ErrorDetail
	cause   error
}

// ErrorDetail 字段级错误
type ErrorDetail struct {
	Path string
	Info string
}

func (e *BusinessError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap 保留原始错误，errors.Is 可以穿透
func (e *BusinessError) Unwrap() error {
	return e.cause
}

// InvalidParam 400，cause 一般是领域层的校验错误
func InvalidParam(message string, cause error) *BusinessError {
	return &BusinessError{Code: http.StatusBadRequest, Message: message, cause: cause}
}

// WithDetail 追加一条字段级错误
func (e *BusinessError) WithDetail(path, info string) *BusinessError {
	e.Details = append(e.Details, ErrorDetail{Path: path, Info: info})
	return e
}
