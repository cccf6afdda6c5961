package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/d60-Lab/order-api/internal/api/middleware"
	"github.com/d60-Lab/order-api/internal/service"
	"github.com/d60-Lab/order-api/pkg/response"
)

type createOrderRequest struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

type updateOrderRequest struct {
	ProductName *string          `json:"productName"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
}

// ListOrders 查询当前用户全部订单（按创建时间倒序）
// @Summary 订单列表
// @Tags 订单
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OrderDTO
// @Failure 401 {object} response.ErrorBody
// @Router /api/v1/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}
	orders, err := h.orderService.List(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.OK(c, orders)
}

// GetOrder 查询单条订单
// @Summary 订单详情
// @Tags 订单
// @Produce json
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 200 {object} service.OrderDTO
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.OK(c, order)
}

// CreateOrder 创建订单
// @Summary 创建订单
// @Tags 订单
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createOrderRequest true "订单信息"
// @Success 201 {object} service.OrderDTO
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /api/v1/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	order, err := h.orderService.Create(c.Request.Context(), userID, service.CreateOrderInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/api/v1/orders/%d", order.ID), order)
}

// UpdateOrder 部分更新订单，未提供的字段保持原值
// @Summary 更新订单
// @Tags 订单
// @Accept json
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Param request body updateOrderRequest true "变更字段"
// @Success 204
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/orders/{id} [put]
func (h *Handler) UpdateOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	err := h.orderService.Update(c.Request.Context(), userID, id, service.UpdateOrderInput{
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteOrder 删除订单
// @Summary 删除订单
// @Tags 订单
// @Security BearerAuth
// @Param id path int true "订单ID"
// @Success 204
// @Failure 401 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/v1/orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserIDKey)
	if userID == "" {
		response.Unauthorized(c, "authentication required")
		return
	}
	id, ok := orderIDParam(c)
	if !ok {
		return
	}
	if err := h.orderService.Delete(c.Request.Context(), userID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.NoContent(c)
}

// orderIDParam 解析路径订单 ID。非数字与不存在同样按 404 处理，
// 不向调用方暴露 ID 空间信息。
func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.NotFound(c, "order not found")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs.Fields())
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrMissingOwner):
		response.Unauthorized(c, "authentication required")
	default:
		response.InternalError(c, err)
	}
}
