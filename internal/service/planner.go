package service

import (
	"context"
	"errors"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"
	"recipe_vault/internal/pricing"

	"gorm.io/gorm"
)

// Selection 一条缩放选择：菜谱 + 本次用餐的成人 / 儿童数。
type Selection struct {
	RecipeID uint `json:"recipeId"`
	Adults   int  `json:"adults"`
	Kids     int  `json:"kids"`
}

// ScaledIngredient 缩放后的食材行，仅在响应中存在，不落库。
type ScaledIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// ScaledRecipe 单个菜谱的缩放结果。
type ScaledRecipe struct {
	RecipeID    uint               `json:"recipeId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Ingredients []ScaledIngredient `json:"ingredients"`
}

// BuildScaledList 按人数缩放所选菜谱的食材清单，供结账前预览。
// 系数必须为正——缩放器本身不校验系数，门禁在这里；
// 查不到的菜谱跳过（与移动端行为一致），不视为错误。
func BuildScaledList(ctx context.Context, db *gorm.DB, selections []Selection) ([]ScaledRecipe, error) {
	if len(selections) == 0 {
		return nil, apperr.BadRequest("No recipe selections provided")
	}

	out := make([]ScaledRecipe, 0, len(selections))
	for _, sel := range selections {
		if sel.Adults < 0 || sel.Kids < 0 {
			return nil, apperr.BadRequest("Diner counts must not be negative for recipe %d", sel.RecipeID)
		}
		multiplier := pricing.Multiplier(sel.Adults, sel.Kids)
		if multiplier <= 0 {
			return nil, apperr.BadRequest("At least one adult or kid is required for recipe %d", sel.RecipeID)
		}

		var recipe model.Recipe
		err := db.WithContext(ctx).Preload("Ingredients").First(&recipe, sel.RecipeID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, apperr.ServerError(err, "recipe lookup failed: %v", err)
		}

		scaled := ScaledRecipe{
			RecipeID:    recipe.ID,
			Name:        recipe.Name,
			Description: recipe.Description,
			Ingredients: make([]ScaledIngredient, 0, len(recipe.Ingredients)),
		}
		for _, ing := range recipe.Ingredients {
			scaled.Ingredients = append(scaled.Ingredients, ScaledIngredient{
				Name:     ing.Name,
				Quantity: pricing.Scale(ing.Quantity, multiplier),
				Notes:    ing.Notes,
			})
		}
		out = append(out, scaled)
	}

	return out, nil
}
