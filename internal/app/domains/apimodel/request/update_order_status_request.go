package request

// UpdateOrderStatusRequest 后台更新订单状态请求，所有字段可选
// 状态类字段大小写不敏感，合法值由领域层校验并在 400 响应中返回允许值集合，
// 这里不加长度限制，超长的非法值同样走允许值集合的响应
type UpdateOrderStatusRequest struct {
	Status        string `json:"status" example:"shipped"`
	OrderStatus   string `json:"orderStatus" example:"shipped"`
	PaymentStatus string `json:"paymentStatus" example:"paid"`
	PaymentMethod string `json:"paymentMethod" example:"razorpay"`
	TransactionID string `json:"transactionId" binding:"omitempty,max=128" example:"pay_Nx81kq2"`
	AdminNote     string `json:"adminNote" binding:"omitempty,max=2000" example:"Handed over to courier"`
	Action        string `json:"action" example:"cancel"`
}

// ListOrdersRequest 后台订单列表查询参数
type ListOrdersRequest struct {
	OrderStatus   string `form:"orderStatus" example:"pending"`
	PaymentStatus string `form:"paymentStatus" example:"paid"`
	UserID        string `form:"userId" binding:"omitempty,max=64"`
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	Limit         int    `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// WaitStatusRequest Smart Wait 查询参数
type WaitStatusRequest struct {
	Timeout int `form:"timeout" binding:"omitempty,min=1,max=30" example:"10"`
}
