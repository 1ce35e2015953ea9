package service

import (
	"context"
	"errors"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"gorm.io/gorm"
)

// ListOrders 返回用户全部订单，新单在前。
func ListOrders(ctx context.Context, db *gorm.DB, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Recipes").
		Preload("Items").
		Preload("Items.Ingredients").
		Order("id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.ServerError(err, "order list failed: %v", err)
	}
	return orders, nil
}

// GetOrderByNo 按订单号取单笔订单，限定本人。
func GetOrderByNo(ctx context.Context, db *gorm.DB, userID uint, orderNo string) (*model.Order, error) {
	var order model.Order
	err := db.WithContext(ctx).
		Where("order_no = ? AND user_id = ?", orderNo, userID).
		Preload("Recipes").
		Preload("Items").
		Preload("Items.Ingredients").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.ServerError(err, "order lookup failed: %v", err)
	}
	return &order, nil
}

// AdvanceStatus 推进订单状态。跨态跳转与终态改写都会被拒绝。
func AdvanceStatus(ctx context.Context, db *gorm.DB, orderNo string, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, apperr.BadRequest("Invalid order status: %s", next)
	}

	var order model.Order
	tx := db.WithContext(ctx)
	if err := tx.Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, apperr.ServerError(err, "order lookup failed: %v", err)
	}

	if !order.Status.CanTransition(next) {
		return nil, apperr.BadRequest("Cannot transition order from %s to %s", order.Status, next)
	}

	// 条件更新：读取与更新之间状态可能被并发推进，命中 0 行即冲突。
	res := tx.Model(&model.Order{}).
		Where("order_no = ? AND status = ?", orderNo, order.Status).
		Update("status", next)
	if res.Error != nil {
		return nil, apperr.ServerError(res.Error, "order update failed: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.BadRequest("Order status changed concurrently, please retry")
	}

	order.Status = next
	return &order, nil
}
