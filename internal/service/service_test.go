package service

import (
	"path/filepath"
	"testing"

	"recipe_vault/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.BookmarkEntry{},
		&model.ShoppingListEntry{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Ingredient{},
		&model.Order{},
		&model.OrderRecipe{},
		&model.OrderItem{},
		&model.OrderItemIngredient{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{
		Username:    "tester",
		Email:       "tester@example.com",
		Password:    []byte("x"),
		ProfileName: "Tester",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRecipe(t *testing.T, db *gorm.DB, name string, ingredients ...model.RecipeIngredient) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{
		Name:        name,
		Description: name + " description",
		Image:       model.DefaultRecipeImage,
		CreatedBy:   1,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func addToList(t *testing.T, db *gorm.DB, userID uint, recipeIDs ...uint) {
	t.Helper()
	for _, rid := range recipeIDs {
		require.NoError(t, db.Create(&model.ShoppingListEntry{UserID: userID, RecipeID: rid}).Error)
	}
}
