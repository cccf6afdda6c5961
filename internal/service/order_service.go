package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/order-api/internal/model"
	"github.com/d60-Lab/order-api/internal/repository"
	"github.com/d60-Lab/order-api/pkg/logger"
)

var (
	// ErrOrderNotFound 订单不存在或不归属当前用户（两种情况对外不区分）
	ErrOrderNotFound = errors.New("order not found")
	// ErrMissingOwner 调用方未携带已认证用户 ID
	ErrMissingOwner = errors.New("missing owner id")
	// ErrWriteConflict 更新提交时记录被并发修改且仍存在，向上抛，不重试
	ErrWriteConflict = errors.New("concurrent write conflict")
)

// OrderService 订单服务。所有操作都以调用方的已认证用户 ID 为边界。
type OrderService interface {
	List(ctx context.Context, userID string) ([]OrderDTO, error)
	Get(ctx context.Context, userID string, id int64) (*OrderDTO, error)
	Create(ctx context.Context, userID string, in CreateOrderInput) (*OrderDTO, error)
	Update(ctx context.Context, userID string, id int64, in UpdateOrderInput) error
	Delete(ctx context.Context, userID string, id int64) error
}

type orderService struct {
	repo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

func (s *orderService) List(ctx context.Context, userID string) ([]OrderDTO, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = toOrderDTO(o)
	}
	return dtos, nil
}

func (s *orderService) Get(ctx context.Context, userID string, id int64) (*OrderDTO, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}
	order, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	dto := toOrderDTO(order)
	return &dto, nil
}

func (s *orderService) Create(ctx context.Context, userID string, in CreateOrderInput) (*OrderDTO, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}

	in.UnitPrice = in.UnitPrice.Round(2)

	var verrs ValidationErrors
	if fe := validateProductName(in.ProductName); fe != nil {
		verrs = append(verrs, *fe)
	}
	if fe := validateQuantity(in.Quantity); fe != nil {
		verrs = append(verrs, *fe)
	}
	if fe := validateUnitPrice(in.UnitPrice); fe != nil {
		verrs = append(verrs, *fe)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	order := &model.Order{
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("user_id", userID))
	dto := toOrderDTO(order)
	return &dto, nil
}

func (s *orderService) Update(ctx context.Context, userID string, id int64, in UpdateOrderInput) error {
	if userID == "" {
		return ErrMissingOwner
	}

	// 逐个校验提供的字段，全部汇总后再动存储
	var verrs ValidationErrors
	if in.ProductName != nil {
		if fe := validateProductName(*in.ProductName); fe != nil {
			verrs = append(verrs, *fe)
		}
	}
	if in.Quantity != nil {
		if fe := validateQuantity(*in.Quantity); fe != nil {
			verrs = append(verrs, *fe)
		}
	}
	if in.UnitPrice != nil {
		rounded := in.UnitPrice.Round(2)
		in.UnitPrice = &rounded
		if fe := validateUnitPrice(rounded); fe != nil {
			verrs = append(verrs, *fe)
		}
	}
	if len(verrs) > 0 {
		return verrs
	}

	order, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if in.ProductName != nil {
		order.ProductName = *in.ProductName
	}
	if in.Quantity != nil {
		order.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		order.UnitPrice = *in.UnitPrice
	}

	affected, err := s.repo.Update(ctx, order)
	if err != nil {
		return err
	}
	if affected == 0 {
		// 读写之间记录被动过：消失了按 NotFound，仍在则属于写冲突
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrOrderNotFound
		}
		return ErrWriteConflict
	}
	return nil
}

func (s *orderService) Delete(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrMissingOwner
	}
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	logger.Info("order deleted",
		zap.Int64("order_id", id),
		zap.String("user_id", userID))
	return nil
}
