package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order 订单模型（每条订单归属唯一用户）
type Order struct {
	ID          int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductName string          `json:"productName" gorm:"type:varchar(200);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(18,2);not null"`
	UserID      string          `json:"-" gorm:"type:varchar(36);index:idx_order_user;not null"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"not null"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// TotalAmount 派生金额：quantity × unitPrice，读取时计算，不落库
func (o *Order) TotalAmount() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
