package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"recipe_vault/internal/middleware"
	"recipe_vault/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recipeRequest 创建 / 更新菜谱的请求体。
type recipeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Procedure   string `json:"procedure"`
	Type        string `json:"type"`
	Diet        string `json:"diet"`
	Spiciness   string `json:"spiciness"`
	Ingredients []struct {
		Name     string `json:"name" binding:"required"`
		Quantity string `json:"quantity" binding:"required"`
		Notes    string `json:"notes"`
	} `json:"ingredients" binding:"required,min=1"`
}

func recipeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return 0, false
	}
	return uint(id), true
}

// listRecipes 公开的菜谱列表。
func listRecipes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var recipes []model.Recipe
		if err := db.WithContext(c.Request.Context()).Preload("Ingredients").Find(&recipes).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}

// getRecipe 单个菜谱详情。
func getRecipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := recipeIDParam(c)
		if !ok {
			return
		}
		var recipe model.Recipe
		err := db.WithContext(c.Request.Context()).Preload("Ingredients").First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
				return
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
	}
}

// createRecipe 新建菜谱，创建者取自令牌。
func createRecipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var req recipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe name and at least one ingredient are required"})
			return
		}

		recipe := &model.Recipe{
			Name:          strings.TrimSpace(req.Name),
			Description:   req.Description,
			Image:         req.Image,
			Procedure:     req.Procedure,
			CharType:      req.Type,
			CharDiet:      req.Diet,
			CharSpiciness: req.Spiciness,
			CreatedBy:     userID,
		}
		if recipe.Image == "" {
			recipe.Image = model.DefaultRecipeImage
		}
		for _, ing := range req.Ingredients {
			recipe.Ingredients = append(recipe.Ingredients, model.RecipeIngredient{
				Name:     strings.TrimSpace(ing.Name),
				Quantity: strings.TrimSpace(ing.Quantity),
				Notes:    ing.Notes,
			})
		}

		if err := db.WithContext(c.Request.Context()).Create(recipe).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Recipe created successfully", "recipe": recipe})
	}
}

// listMyRecipes 当前用户创建的菜谱。
func listMyRecipes(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var recipes []model.Recipe
		err := db.WithContext(c.Request.Context()).
			Where("created_by = ?", userID).
			Preload("Ingredients").
			Find(&recipes).Error
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}

// updateRecipe 整体替换菜谱内容，仅限创建者。
// 食材行采用先删后建：行是快照而非独立实体，不做差量合并。
func updateRecipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		id, ok := recipeIDParam(c)
		if !ok {
			return
		}

		var req recipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe name and at least one ingredient are required"})
			return
		}

		ctx := c.Request.Context()
		var recipe model.Recipe
		err := db.WithContext(ctx).First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
				return
			}
			fail(c, err)
			return
		}
		if recipe.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own recipes"})
			return
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			updates := map[string]any{
				"name":           strings.TrimSpace(req.Name),
				"description":    req.Description,
				"procedure":      req.Procedure,
				"char_type":      req.Type,
				"char_diet":      req.Diet,
				"char_spiciness": req.Spiciness,
			}
			if req.Image != "" {
				updates["image"] = req.Image
			}
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}

			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
				return err
			}
			rows := make([]model.RecipeIngredient, 0, len(req.Ingredients))
			for _, ing := range req.Ingredients {
				rows = append(rows, model.RecipeIngredient{
					RecipeID: recipe.ID,
					Name:     strings.TrimSpace(ing.Name),
					Quantity: strings.TrimSpace(ing.Quantity),
					Notes:    ing.Notes,
				})
			}
			return tx.Create(&rows).Error
		})
		if err != nil {
			fail(c, err)
			return
		}

		if err := db.WithContext(ctx).Preload("Ingredients").First(&recipe, recipe.ID).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": recipe})
	}
}

// deleteRecipe 删除菜谱，仅限创建者。
func deleteRecipe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		id, ok := recipeIDParam(c)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		var recipe model.Recipe
		err := db.WithContext(ctx).First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
				return
			}
			fail(c, err)
			return
		}
		if recipe.CreatedBy != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own recipes"})
			return
		}

		if err := db.WithContext(ctx).Delete(&recipe).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
	}
}
