package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/d60-Lab/order-api/internal/model"
)

// 金额字段按 JSON 数字输出，精度由 decimal 自身保证
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// CreateOrderInput 创建订单入参
type CreateOrderInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// UpdateOrderInput 部分更新入参，nil 字段保持原值
type UpdateOrderInput struct {
	ProductName *string
	Quantity    *int
	UnitPrice   *decimal.Decimal
}

// OrderDTO 订单对外投影，不含归属用户 ID
type OrderDTO struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toOrderDTO(o *model.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		ProductName: o.ProductName,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		TotalAmount: o.TotalAmount(),
		CreatedAt:   o.CreatedAt,
	}
}
