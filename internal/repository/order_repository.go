package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/order-api/internal/model"
)

// OrderRepository 订单仓储接口。所有读写都显式携带归属用户 ID，
// 过滤在仓储层强制执行，不信任上层单独传入的订单 ID。
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *model.Order) error

	// GetByID 查询归属该用户的单条订单
	GetByID(ctx context.Context, userID string, id int64) (*model.Order, error)

	// ListByUser 查询该用户全部订单，按创建时间倒序
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)

	// Update 按归属条件更新三个可变字段，返回命中行数
	Update(ctx context.Context, order *model.Order) (int64, error)

	// Delete 按归属条件删除，返回命中行数
	Delete(ctx context.Context, userID string, id int64) (int64, error)

	// Exists 不带归属条件的存在性检查（仅用于写冲突判定）
	Exists(ctx context.Context, id int64) (bool, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, userID string, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) (int64, error) {
	// Select 显式列出可变列，避免零值字段被 Updates 跳过
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND user_id = ?", order.ID, order.UserID).
		Select("product_name", "quantity", "unit_price").
		Updates(map[string]interface{}{
			"product_name": order.ProductName,
			"quantity":     order.Quantity,
			"unit_price":   order.UnitPrice,
		})
	return res.RowsAffected, res.Error
}

func (r *orderRepository) Delete(ctx context.Context, userID string, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Order{})
	return res.RowsAffected, res.Error
}

func (r *orderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
