package model

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus 订单状态机：Pending → Processing → Shipped → Delivered，
// 任一非终态可转 Cancelled；Delivered / Cancelled 为终态。
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid 判断是否为已知状态。
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal 判断是否为终态。
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition 判断 s → next 是否合法。状态流转由外部驱动，
// 这里只做合法性门禁。
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	switch s {
	case OrderPending:
		return next == OrderProcessing
	case OrderProcessing:
		return next == OrderShipped
	case OrderShipped:
		return next == OrderDelivered
	}
	return false
}

// Order 结账订单。金额单位：派萨。
type Order struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OrderNo         string      `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	UserID          uint        `gorm:"not null;index" json:"userId"`
	DeliveryAddress string      `gorm:"size:512;not null" json:"deliveryAddress"`
	TotalPrice      int64       `gorm:"not null" json:"-"`
	Status          OrderStatus `gorm:"size:16;not null;default:'Pending';index" json:"status"`

	Recipes []OrderRecipe `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Items   []OrderItem   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderRecipe 订单引用的菜谱 ID 平铺表，供购物清单扣除使用。
type OrderRecipe struct {
	ID       uint `gorm:"primarykey" json:"-"`
	OrderID  uint `gorm:"not null;index" json:"-"`
	RecipeID uint `gorm:"not null" json:"recipeId"`
}

func (OrderRecipe) TableName() string { return "order_recipes" }

// OrderItem 每菜谱一条，下单时刻的名称与价格快照。
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"-"`
	OrderID uint `gorm:"not null;index" json:"-"`

	RecipeID   uint   `gorm:"not null" json:"recipe"`
	RecipeName string `gorm:"size:255;not null" json:"name"`
	Price      int64  `gorm:"not null" json:"-"`

	Ingredients []OrderItemIngredient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderItemIngredient 订单条目内的食材快照。
type OrderItemIngredient struct {
	ID          uint `gorm:"primarykey" json:"-"`
	OrderItemID uint `gorm:"not null;index" json:"-"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Quantity string `gorm:"size:64;not null" json:"quantity"`
	Price    int64  `gorm:"not null" json:"-"`
}

func (OrderItemIngredient) TableName() string { return "order_item_ingredients" }
