package service

import (
	"context"
	"fmt"
	"testing"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, checkout *Checkout, userID uint, recipeID uint) PlacedOrder {
	t.Helper()
	placed, err := checkout.PlaceOrder(context.Background(), userID, validInput(recipeID))
	require.NoError(t, err)
	return placed
}

func TestListAndGetOrders(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	first := seedRecipe(t, db, "First")
	second := seedRecipe(t, db, "Second")
	addToList(t, db, user.ID, first.ID, second.ID)
	checkout := &Checkout{DB: db}
	ctx := context.Background()

	p1 := seedOrder(t, checkout, user.ID, first.ID)
	p2 := seedOrder(t, checkout, user.ID, second.ID)

	orders, err := ListOrders(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// 新单在前
	assert.Equal(t, p2.OrderNo, orders[0].OrderNo)
	assert.Equal(t, p1.OrderNo, orders[1].OrderNo)
	require.Len(t, orders[0].Items, 1)
	require.Len(t, orders[0].Items[0].Ingredients, 1)

	got, err := GetOrderByNo(ctx, db, user.ID, p1.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, p1.OrderNo, got.OrderNo)
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	addToList(t, db, user.ID, recipe.ID)
	checkout := &Checkout{DB: db}
	ctx := context.Background()

	placed := seedOrder(t, checkout, user.ID, recipe.ID)

	other := &model.User{Username: "other", Email: "other@example.com", Password: []byte("x"), ProfileName: "Other"}
	require.NoError(t, db.Create(other).Error)

	_, err := GetOrderByNo(ctx, db, other.ID, placed.OrderNo)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestAdvanceStatus(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	addToList(t, db, user.ID, recipe.ID)
	checkout := &Checkout{DB: db}
	ctx := context.Background()

	placed := seedOrder(t, checkout, user.ID, recipe.ID)

	// 合法链路逐级推进
	for _, next := range []model.OrderStatus{model.OrderProcessing, model.OrderShipped, model.OrderDelivered} {
		order, err := AdvanceStatus(ctx, db, placed.OrderNo, next)
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, next, order.Status)
	}

	// 终态后拒绝任何改写
	_, err := AdvanceStatus(ctx, db, placed.OrderNo, model.OrderCancelled)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestAdvanceStatusRejectsJumps(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	addToList(t, db, user.ID, recipe.ID)
	checkout := &Checkout{DB: db}
	ctx := context.Background()

	placed := seedOrder(t, checkout, user.ID, recipe.ID)

	_, err := AdvanceStatus(ctx, db, placed.OrderNo, model.OrderShipped)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("Cannot transition order from %s to %s", model.OrderPending, model.OrderShipped))

	_, err = AdvanceStatus(ctx, db, placed.OrderNo, model.OrderStatus("Teleported"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid order status")

	_, err = AdvanceStatus(ctx, db, "RV000000000000", model.OrderProcessing)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	addToList(t, db, user.ID, recipe.ID)
	checkout := &Checkout{DB: db}
	ctx := context.Background()

	placed := seedOrder(t, checkout, user.ID, recipe.ID)

	_, err := AdvanceStatus(ctx, db, placed.OrderNo, model.OrderProcessing)
	require.NoError(t, err)

	order, err := AdvanceStatus(ctx, db, placed.OrderNo, model.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, order.Status)
}
