package service

import (
	"context"
	"errors"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"gorm.io/gorm"
)

// 书签与购物清单是同一批菜谱引用的两个工作集：
// 书签是长期收藏，购物清单是已选定、待下单的子集。

// loadUser 取用户，不存在时统一返回 NotFound。
func loadUser(ctx context.Context, db *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	if err := db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.ServerError(err, "user lookup failed: %v", err)
	}
	return &user, nil
}

// AddBookmarks 把菜谱加入书签，已存在的条目跳过。
func AddBookmarks(ctx context.Context, db *gorm.DB, userID uint, recipeIDs []uint) error {
	if _, err := loadUser(ctx, db, userID); err != nil {
		return err
	}
	for _, rid := range recipeIDs {
		entry := model.BookmarkEntry{UserID: userID, RecipeID: rid}
		err := db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, rid).
			FirstOrCreate(&entry).Error
		if err != nil {
			return apperr.ServerError(err, "bookmark create failed: %v", err)
		}
	}
	return nil
}

// RemoveBookmarks 批量取消书签。
func RemoveBookmarks(ctx context.Context, db *gorm.DB, userID uint, recipeIDs []uint) (int64, error) {
	if len(recipeIDs) == 0 {
		return 0, apperr.BadRequest("Invalid recipe IDs")
	}
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Delete(&model.BookmarkEntry{})
	if res.Error != nil {
		return 0, apperr.ServerError(res.Error, "bookmark delete failed: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, apperr.NotFound("No bookmarks found to remove")
	}
	return res.RowsAffected, nil
}

// ListBookmarks 返回用户书签中的菜谱。
func ListBookmarks(ctx context.Context, db *gorm.DB, userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := db.WithContext(ctx).
		Joins("JOIN bookmark_entries ON bookmark_entries.recipe_id = recipes.id").
		Where("bookmark_entries.user_id = ?", userID).
		Preload("Ingredients").
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.ServerError(err, "bookmark list failed: %v", err)
	}
	return recipes, nil
}

// AddToShoppingList 把菜谱加入购物清单，已存在的跳过（幂等）。
func AddToShoppingList(ctx context.Context, db *gorm.DB, userID uint, recipeIDs []uint) error {
	if len(recipeIDs) == 0 {
		return apperr.BadRequest("Invalid input")
	}
	if _, err := loadUser(ctx, db, userID); err != nil {
		return err
	}
	for _, rid := range recipeIDs {
		entry := model.ShoppingListEntry{UserID: userID, RecipeID: rid}
		err := db.WithContext(ctx).
			Where("user_id = ? AND recipe_id = ?", userID, rid).
			FirstOrCreate(&entry).Error
		if err != nil {
			return apperr.ServerError(err, "shopping list add failed: %v", err)
		}
	}
	return nil
}

// RemoveFromShoppingList 把菜谱移出购物清单并放回书签（可逆操作）。
func RemoveFromShoppingList(ctx context.Context, db *gorm.DB, userID uint, recipeIDs []uint) error {
	if len(recipeIDs) == 0 {
		return apperr.BadRequest("Invalid input")
	}
	if _, err := loadUser(ctx, db, userID); err != nil {
		return err
	}

	err := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Delete(&model.ShoppingListEntry{}).Error
	if err != nil {
		return apperr.ServerError(err, "shopping list remove failed: %v", err)
	}

	// 放回书签，避免「从清单移除」变成「彻底丢失」
	return AddBookmarks(ctx, db, userID, recipeIDs)
}

// ListShoppingList 按加入顺序返回购物清单中的菜谱。
func ListShoppingList(ctx context.Context, db *gorm.DB, userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := db.WithContext(ctx).
		Joins("JOIN shopping_list_entries ON shopping_list_entries.recipe_id = recipes.id").
		Where("shopping_list_entries.user_id = ?", userID).
		Order("shopping_list_entries.id").
		Preload("Ingredients").
		Find(&recipes).Error
	if err != nil {
		return nil, apperr.ServerError(err, "shopping list fetch failed: %v", err)
	}
	return recipes, nil
}

// ShoppingListRecipeIDs 返回购物清单里的菜谱 ID 集合，供下单校验。
func ShoppingListRecipeIDs(ctx context.Context, db *gorm.DB, userID uint) (map[uint]bool, error) {
	var entries []model.ShoppingListEntry
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, apperr.ServerError(err, "shopping list fetch failed: %v", err)
	}
	ids := make(map[uint]bool, len(entries))
	for _, e := range entries {
		ids[e.RecipeID] = true
	}
	return ids, nil
}
