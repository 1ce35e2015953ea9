package service

import (
	"context"
	"testing"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarksAddIdempotent(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	ctx := context.Background()

	require.NoError(t, AddBookmarks(ctx, db, user.ID, []uint{recipe.ID}))
	require.NoError(t, AddBookmarks(ctx, db, user.ID, []uint{recipe.ID}))

	recipes, err := ListBookmarks(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Dal Rice", recipes[0].Name)
}

func TestRemoveBookmarksNotFound(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	ctx := context.Background()

	_, err := RemoveBookmarks(ctx, db, user.ID, []uint{42})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = RemoveBookmarks(ctx, db, user.ID, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))
}

func TestShoppingListRoundTrip(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	ctx := context.Background()

	require.NoError(t, AddToShoppingList(ctx, db, user.ID, []uint{recipe.ID}))
	list, err := ListShoppingList(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// 从清单移除会放回书签，而不是彻底丢失
	require.NoError(t, RemoveFromShoppingList(ctx, db, user.ID, []uint{recipe.ID}))

	list, err = ListShoppingList(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	bookmarks, err := ListBookmarks(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, recipe.ID, bookmarks[0].ID)
}

func TestShoppingListPreservesOrder(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	first := seedRecipe(t, db, "First")
	second := seedRecipe(t, db, "Second")
	ctx := context.Background()

	// 加入顺序与菜谱 ID 顺序相反
	require.NoError(t, AddToShoppingList(ctx, db, user.ID, []uint{second.ID}))
	require.NoError(t, AddToShoppingList(ctx, db, user.ID, []uint{first.ID}))

	list, err := ListShoppingList(ctx, db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
}

func TestShoppingListUnknownUser(t *testing.T) {
	db := openTestDB(t)
	err := AddToShoppingList(context.Background(), db, 999, []uint{1})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, "User not found", err.Error())
}

func TestShoppingListRecipeIDs(t *testing.T) {
	db := openTestDB(t)
	user := seedUser(t, db)
	recipe := seedRecipe(t, db, "Dal Rice")
	other := seedRecipe(t, db, "Other")
	addToList(t, db, user.ID, recipe.ID)
	ctx := context.Background()

	ids, err := ShoppingListRecipeIDs(ctx, db, user.ID)
	require.NoError(t, err)
	assert.True(t, ids[recipe.ID])
	assert.False(t, ids[other.ID])
}

func TestPlannerScalesByDiners(t *testing.T) {
	db := openTestDB(t)
	recipe := seedRecipe(t, db, "Dal Rice",
		model.RecipeIngredient{Name: "Rice", Quantity: "0.5 kg"},
		model.RecipeIngredient{Name: "Salt", Quantity: "a pinch"},
	)
	ctx := context.Background()

	// 2 大人 + 1 小孩 → 系数 2.5
	out, err := BuildScaledList(ctx, db, []Selection{{RecipeID: recipe.ID, Adults: 2, Kids: 1}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0].Ingredients, 2)
	assert.Equal(t, "1.25 kg", out[0].Ingredients[0].Quantity)
	// 无法解析的数量原样透传
	assert.Equal(t, "a pinch", out[0].Ingredients[1].Quantity)
}

func TestPlannerRejectsZeroDiners(t *testing.T) {
	db := openTestDB(t)
	recipe := seedRecipe(t, db, "Dal Rice")
	ctx := context.Background()

	_, err := BuildScaledList(ctx, db, []Selection{{RecipeID: recipe.ID}})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeBadRequest))

	_, err = BuildScaledList(ctx, db, nil)
	require.Error(t, err)
	assert.Equal(t, "No recipe selections provided", err.Error())
}

func TestPlannerSkipsUnknownRecipes(t *testing.T) {
	db := openTestDB(t)
	recipe := seedRecipe(t, db, "Dal Rice",
		model.RecipeIngredient{Name: "Rice", Quantity: "0.5 kg"})
	ctx := context.Background()

	out, err := BuildScaledList(ctx, db, []Selection{
		{RecipeID: 999, Adults: 1},
		{RecipeID: recipe.ID, Adults: 1},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, recipe.ID, out[0].RecipeID)
}
