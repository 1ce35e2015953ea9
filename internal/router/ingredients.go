package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"recipe_vault/internal/model"
	"recipe_vault/internal/pricing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ingredientRequest 目录条目的创建 / 更新请求体。价格以十进制卢比传入。
type ingredientRequest struct {
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	PricePerUnit float64 `json:"pricePerUnit" binding:"required,gt=0"`
}

// ingredientView 目录条目的响应形态，价格转回卢比。
type ingredientView struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

func toIngredientView(ing model.Ingredient) ingredientView {
	return ingredientView{
		ID:           ing.ID,
		Name:         ing.Name,
		Unit:         ing.Unit,
		PricePerUnit: pricing.ToRupees(ing.PricePerUnit),
	}
}

// listIngredients 公开的价格目录。
func listIngredients(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list []model.Ingredient
		if err := db.WithContext(c.Request.Context()).Order("name").Find(&list).Error; err != nil {
			fail(c, err)
			return
		}
		views := make([]ingredientView, 0, len(list))
		for _, ing := range list {
			views = append(views, toIngredientView(ing))
		}
		c.JSON(http.StatusOK, gin.H{"ingredients": views})
	}
}

// createIngredient 新增目录条目（管理端）。
func createIngredient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ingredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, unit and a positive pricePerUnit are required"})
			return
		}

		ing := &model.Ingredient{
			Name:         strings.TrimSpace(req.Name),
			Unit:         strings.TrimSpace(req.Unit),
			PricePerUnit: pricing.ToPaise(req.PricePerUnit),
		}
		if err := db.WithContext(c.Request.Context()).Create(ing).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Ingredient already exists: " + ing.Name})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ingredient": toIngredientView(*ing)})
	}
}

// updateIngredient 更新目录条目（管理端）。
func updateIngredient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
			return
		}

		var req ingredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, unit and a positive pricePerUnit are required"})
			return
		}

		ctx := c.Request.Context()
		var ing model.Ingredient
		if err := db.WithContext(ctx).First(&ing, uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
				return
			}
			fail(c, err)
			return
		}

		updates := map[string]any{
			"name":           strings.TrimSpace(req.Name),
			"unit":           strings.TrimSpace(req.Unit),
			"price_per_unit": pricing.ToPaise(req.PricePerUnit),
		}
		if err := db.WithContext(ctx).Model(&ing).Updates(updates).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ingredient": toIngredientView(ing)})
	}
}

// deleteIngredient 删除目录条目（管理端）。
func deleteIngredient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
			return
		}

		res := db.WithContext(c.Request.Context()).Delete(&model.Ingredient{}, uint(id))
		if res.Error != nil {
			fail(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
	}
}

// calculatePrice 独立计价预览：逐条按目录计价并汇总。
func calculatePrice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Ingredients []struct {
				Name     string `json:"name" binding:"required"`
				Quantity string `json:"quantity" binding:"required"`
			} `json:"ingredients" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredients with name and quantity are required"})
			return
		}

		items := make([]pricing.LineItem, 0, len(req.Ingredients))
		for _, ing := range req.Ingredients {
			items = append(items, pricing.LineItem{Name: ing.Name, Quantity: ing.Quantity})
		}

		quote, err := pricing.CalculatePrice(c.Request.Context(), db, items)
		if err != nil {
			fail(c, err)
			return
		}

		type itemView struct {
			Name         string  `json:"name"`
			Quantity     string  `json:"quantity"`
			Unit         string  `json:"unit"`
			PricePerUnit float64 `json:"pricePerUnit"`
			Price        float64 `json:"price"`
		}
		views := make([]itemView, 0, len(quote.Items))
		for _, it := range quote.Items {
			views = append(views, itemView{
				Name:         it.Name,
				Quantity:     it.Quantity,
				Unit:         it.Unit,
				PricePerUnit: pricing.ToRupees(it.PricePerUnit),
				Price:        pricing.ToRupees(it.Price),
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      views,
			"totalPrice": pricing.ToRupees(quote.TotalPrice),
		})
	}
}
