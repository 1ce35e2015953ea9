package router

import (
	"net/http"

	"recipe_vault/internal/middleware"
	"recipe_vault/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recipeIDsRequest 书签 / 购物清单批量操作共用的请求体。
type recipeIDsRequest struct {
	RecipeIDs []uint `json:"recipeIds" binding:"required,min=1"`
}

// listBookmarks 当前用户的书签。
func listBookmarks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		recipes, err := service.ListBookmarks(c.Request.Context(), db, userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookmarks": recipes})
	}
}

// addBookmarks 批量收藏。
func addBookmarks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req recipeIDsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe IDs"})
			return
		}

		if err := service.AddBookmarks(c.Request.Context(), db, userID, req.RecipeIDs); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bookmarks added successfully"})
	}
}

// removeBookmarks 批量取消收藏。
func removeBookmarks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req recipeIDsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe IDs"})
			return
		}

		removed, err := service.RemoveBookmarks(c.Request.Context(), db, userID, req.RecipeIDs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bookmarks removed successfully", "removed": removed})
	}
}

// listShoppingList 按加入顺序返回购物清单。
func listShoppingList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		recipes, err := service.ListShoppingList(c.Request.Context(), db, userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"shoppingList": recipes})
	}
}

// addToShoppingList 把菜谱加入购物清单（幂等）。
func addToShoppingList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req recipeIDsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if err := service.AddToShoppingList(c.Request.Context(), db, userID, req.RecipeIDs); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recipes added to shopping list"})
	}
}

// removeFromShoppingList 移出购物清单并放回书签。
func removeFromShoppingList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req recipeIDsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		if err := service.RemoveFromShoppingList(c.Request.Context(), db, userID, req.RecipeIDs); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recipes moved back to bookmarks"})
	}
}

// calculateShoppingList 按人数缩放所选菜谱的食材清单。
func calculateShoppingList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Selections []service.Selection `json:"selections" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No recipe selections provided"})
			return
		}

		recipes, err := service.BuildScaledList(c.Request.Context(), db, req.Selections)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}
