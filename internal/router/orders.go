package router

import (
	"net/http"

	"recipe_vault/internal/middleware"
	"recipe_vault/internal/model"
	"recipe_vault/internal/pricing"
	"recipe_vault/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 订单的响应形态。内部金额是派萨，出口统一转回十进制卢比。
type orderIngredientView struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderItemView struct {
	Recipe      uint                  `json:"recipe"`
	Name        string                `json:"name"`
	Price       float64               `json:"price"`
	Ingredients []orderIngredientView `json:"ingredients"`
}

type orderView struct {
	OrderID         string            `json:"orderId"`
	Status          model.OrderStatus `json:"status"`
	DeliveryAddress string            `json:"deliveryAddress"`
	TotalPrice      float64           `json:"totalPrice"`
	RecipeIDs       []uint            `json:"recipeIds"`
	Items           []orderItemView   `json:"items"`
	CreatedAt       string            `json:"createdAt"`
}

func toOrderView(o model.Order) orderView {
	view := orderView{
		OrderID:         o.OrderNo,
		Status:          o.Status,
		DeliveryAddress: o.DeliveryAddress,
		TotalPrice:      pricing.ToRupees(o.TotalPrice),
		RecipeIDs:       make([]uint, 0, len(o.Recipes)),
		Items:           make([]orderItemView, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for _, r := range o.Recipes {
		view.RecipeIDs = append(view.RecipeIDs, r.RecipeID)
	}
	for _, it := range o.Items {
		iv := orderItemView{
			Recipe:      it.RecipeID,
			Name:        it.RecipeName,
			Price:       pricing.ToRupees(it.Price),
			Ingredients: make([]orderIngredientView, 0, len(it.Ingredients)),
		}
		for _, ing := range it.Ingredients {
			iv.Ingredients = append(iv.Ingredients, orderIngredientView{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Price:    pricing.ToRupees(ing.Price),
			})
		}
		view.Items = append(view.Items, iv)
	}
	return view
}

// placeOrder 下单：校验、落库、扣清单、发事件。
func placeOrder(checkout *service.Checkout) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req service.PlaceOrderInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		placed, err := checkout.PlaceOrder(c.Request.Context(), userID, req)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":    "Order placed successfully",
			"orderId":    placed.OrderNo,
			"totalPrice": pricing.ToRupees(placed.TotalPrice),
			"itemCount":  placed.ItemCount,
		})
	}
}

// listOrders 当前用户全部订单，新单在前。
func listOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		orders, err := service.ListOrders(c.Request.Context(), db, userID)
		if err != nil {
			fail(c, err)
			return
		}
		views := make([]orderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, toOrderView(o))
		}
		c.JSON(http.StatusOK, gin.H{"orders": views})
	}
}

// getOrder 按订单号取本人单笔订单。
func getOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		order, err := service.GetOrderByNo(c.Request.Context(), db, userID, c.Param("orderNo"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": toOrderView(*order)})
	}
}

// advanceOrderStatus 推进订单状态（管理端）。
func advanceOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status model.OrderStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		order, err := service.AdvanceStatus(c.Request.Context(), db, c.Param("orderNo"), req.Status)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated",
			"orderId": order.OrderNo,
			"status":  order.Status,
		})
	}
}
