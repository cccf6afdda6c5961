package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/d60-Lab/order-api/internal/config"
	"github.com/d60-Lab/order-api/internal/model"
	"github.com/d60-Lab/order-api/internal/repository"
	"github.com/d60-Lab/order-api/pkg/database"
	"github.com/d60-Lab/order-api/pkg/logger"
)

var products = []string{
	"Widget", "Gadget", "Sprocket", "Gizmo", "Doohickey",
	"Flange", "Grommet", "Bracket", "Coupling", "Spindle",
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// 演示数据生成器：为 N 个用户各生成 M 条订单
func main() {
	configPath := flag.String("config", "config.yaml", "配置文件路径")
	userCount := flag.Int("users", 10, "生成用户数")
	orderCount := flag.Int("orders", 20, "每用户订单数")
	flag.Parse()

	cfg := must(config.Load(*configPath))
	if err := logger.Init(cfg.Log.Level, true); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := must(database.Open(cfg.Database.Driver, cfg.Database.DSN))
	defer func() { _ = database.Close(db) }()
	if err := database.InitSchema(db); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}

	orderRepo := repository.NewOrderRepository(db)
	ctx := context.Background()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	t0 := time.Now()
	total := 0
	for i := 0; i < *userCount; i++ {
		id := uuid.New().String()
		user := model.User{
			ID:       id,
			Username: fmt.Sprintf("demo%03d", i),
			Email:    fmt.Sprintf("demo%03d@example.com", i),
		}
		if err := db.Create(&user).Error; err != nil {
			logger.Fatal("seed user", zap.Error(err))
		}
		for j := 0; j < *orderCount; j++ {
			// 价格取 0.01 ~ 500.00
			cents := rng.Int63n(50000) + 1
			order := &model.Order{
				ProductName: products[rng.Intn(len(products))],
				Quantity:    rng.Intn(9) + 1,
				UnitPrice:   decimal.New(cents, -2),
				UserID:      user.ID,
				CreatedAt:   time.Now().UTC().Add(-time.Duration(rng.Intn(86400*30)) * time.Second),
			}
			if err := orderRepo.Create(ctx, order); err != nil {
				logger.Fatal("seed order", zap.Error(err))
			}
			total++
		}
	}
	logger.Info("seed done",
		zap.Int("users", *userCount),
		zap.Int("orders", total),
		zap.Duration("elapsed", time.Since(t0)))
}
