package ginx

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"storefront/internal/app/pkg/errorx"
)

// CodeWaiting Smart Wait 超时业务码
const CodeWaiting = 3001

// Response 统一响应结构
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data,omitempty"`
}

// Meta 元数据
type Meta struct {
	Code    int           `json:"code" example:"200"`
	Message string        `json:"message" example:"OK"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail 字段级错误
type ErrorDetail struct {
	Path string `json:"path" example:"orderStatus"`
	Info string `json:"info" example:"invalid order status \"lost\", allowed: pending, confirmed"`
}

// WaitingData Smart Wait 超时返回的数据
type WaitingData struct {
	OrderID string `json:"orderId" example:"ord_01HZX"`
	PollURL string `json:"pollUrl" example:"/api/v1/admin/orders/ord_01HZX"`
}

// binding 校验错误的字段名与请求里的字段名保持一致（json 优先，其次 form）
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(requestFieldName)
	}
}

func requestFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func write(c *gin.Context, httpCode int, meta Meta, data interface{}) {
	c.JSON(httpCode, Response{Meta: meta, Data: data})
}

// Success 200
func Success(c *gin.Context, data interface{}) {
	write(c, http.StatusOK, Meta{Code: http.StatusOK, Message: "OK"}, data)
}

// Waiting 等待超时（HTTP 200，meta.code=3001），客户端按 pollUrl 继续轮询
func Waiting(c *gin.Context, orderID string, pollURL string) {
	write(c, http.StatusOK,
		Meta{Code: CodeWaiting, Message: "No status change yet, please poll again"},
		WaitingData{OrderID: orderID, PollURL: pollURL},
	)
}

// Error 错误响应，meta.code 与 HTTP 状态码一致
func Error(c *gin.Context, httpCode int, message string) {
	ErrorWithData(c, httpCode, message, nil, nil)
}

// ErrorWithData 带字段详情和数据的错误响应，例如校验失败时返回允许值集合
func ErrorWithData(c *gin.Context, httpCode int, message string, details []ErrorDetail, data interface{}) {
	write(c, httpCode, Meta{Code: httpCode, Message: message, Details: details}, data)
}

// BusinessError 按业务错误中的 Code 输出
func BusinessError(c *gin.Context, err *errorx.BusinessError, data interface{}) {
	var details []ErrorDetail
	for _, d := range err.Details {
		details = append(details, ErrorDetail{Path: d.Path, Info: d.Info})
	}
	ErrorWithData(c, err.Code, err.Message, details, data)
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// BadRequestWithValidation 400，binding 校验失败时逐字段输出
func BadRequestWithValidation(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		BadRequest(c, err.Error())
		return
	}

	details := make([]ErrorDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, ErrorDetail{Path: fe.Field(), Info: validationMessage(fe)})
	}
	ErrorWithData(c, http.StatusBadRequest, "Validation failed", details, nil)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
