package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/order-api/internal/model"
)

func setupOrderDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Order{}))
	return db
}

func seedOrder(t *testing.T, repo OrderRepository, userID, name string, qty int, price string, at time.Time) *model.Order {
	t.Helper()
	o := &model.Order{
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
		UserID:      userID,
		CreatedAt:   at,
	}
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func TestOrderRepositoryCreateAssignsID(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	o := seedOrder(t, repo, "alice", "Widget", 3, "9.99", time.Now().UTC())
	assert.Greater(t, o.ID, int64(0))

	o2 := seedOrder(t, repo, "alice", "Gadget", 1, "1.00", time.Now().UTC())
	assert.NotEqual(t, o.ID, o2.ID)
}

func TestOrderRepositoryGetByIDScopedToOwner(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()
	o := seedOrder(t, repo, "alice", "Widget", 3, "9.99", time.Now().UTC())

	got, err := repo.GetByID(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.ProductName)

	// 他人的 ID 查不到，与不存在一致
	_, err = repo.GetByID(ctx, "bob", o.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetByID(ctx, "alice", 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepositoryListByUser(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedOrder(t, repo, "alice", "Widget", 1, "1.00", base)
	newest := seedOrder(t, repo, "alice", "Gadget", 2, "2.00", base.Add(2*time.Hour))
	middle := seedOrder(t, repo, "alice", "Sprocket", 3, "3.00", base.Add(time.Hour))
	seedOrder(t, repo, "bob", "Gizmo", 1, "5.00", base.Add(3*time.Hour))

	orders, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	// 创建时间倒序
	assert.Equal(t, newest.ID, orders[0].ID)
	assert.Equal(t, middle.ID, orders[1].ID)
	assert.Equal(t, oldest.ID, orders[2].ID)

	empty, err := repo.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestOrderRepositoryUpdateScopedToOwner(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()
	o := seedOrder(t, repo, "alice", "Widget", 3, "9.99", time.Now().UTC())

	o.Quantity = 5
	affected, err := repo.Update(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByID(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "Widget", got.ProductName)

	// 归属不匹配时零行命中
	stolen := *o
	stolen.UserID = "bob"
	affected, err = repo.Update(ctx, &stolen)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestOrderRepositoryDelete(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()
	o := seedOrder(t, repo, "alice", "Widget", 3, "9.99", time.Now().UTC())

	affected, err := repo.Delete(ctx, "bob", o.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.Delete(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, "alice", o.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestOrderRepositoryExists(t *testing.T) {
	repo := NewOrderRepository(setupOrderDB(t))
	ctx := context.Background()
	o := seedOrder(t, repo, "alice", "Widget", 3, "9.99", time.Now().UTC())

	ok, err := repo.Exists(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, o.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}
