package handler

import (
	"github.com/d60-Lab/order-api/internal/service"
)

// Handler API 处理器集合
type Handler struct {
	orderService service.OrderService
}

// New 创建 Handler
func New(orderService service.OrderService) *Handler {
	return &Handler{orderService: orderService}
}
