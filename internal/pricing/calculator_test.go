package pricing

import (
	"context"
	"path/filepath"
	"testing"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Ingredient{}))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []model.Ingredient{
		{Name: "Rice", Unit: "kg", PricePerUnit: 6000},
		{Name: "Dal", Unit: "kg", PricePerUnit: 12000},
		{Name: "Milk", Unit: "litre", PricePerUnit: 5500},
	}
	require.NoError(t, db.Create(&rows).Error)
}

func TestCalculatePrice(t *testing.T) {
	db := openCatalogDB(t)
	seedCatalog(t, db)

	quote, err := CalculatePrice(context.Background(), db, []LineItem{
		{Name: "Rice", Quantity: "1.00 kg"},
		{Name: "Dal", Quantity: "0.25 kg"},
		{Name: "Milk", Quantity: "1/2 litre"},
	})
	require.NoError(t, err)
	require.Len(t, quote.Items, 3)

	assert.Equal(t, int64(6000), quote.Items[0].Price)
	assert.Equal(t, int64(3000), quote.Items[1].Price)
	assert.Equal(t, int64(2750), quote.Items[2].Price)
	assert.Equal(t, "kg", quote.Items[0].Unit)

	// 总价必须恰好等于各行之和，整数加法无容差。
	var sum int64
	for _, it := range quote.Items {
		sum += it.Price
	}
	assert.Equal(t, sum, quote.TotalPrice)
}

func TestCalculatePriceMissingIngredient(t *testing.T) {
	db := openCatalogDB(t)
	seedCatalog(t, db)

	quote, err := CalculatePrice(context.Background(), db, []LineItem{
		{Name: "Rice", Quantity: "1 kg"},
		{Name: "Saffron", Quantity: "1 g"},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Contains(t, err.Error(), "Saffron")
	// 整单失败，不返回部分结果
	assert.Empty(t, quote.Items)
	assert.Zero(t, quote.TotalPrice)
}

func TestCalculatePriceInvalidQuantity(t *testing.T) {
	db := openCatalogDB(t)
	seedCatalog(t, db)

	_, err := CalculatePrice(context.Background(), db, []LineItem{
		{Name: "Rice", Quantity: "a handful"},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidFormat))
	assert.Contains(t, err.Error(), "a handful")
}

func TestCalculatePriceCaseSensitiveMatch(t *testing.T) {
	db := openCatalogDB(t)
	seedCatalog(t, db)

	_, err := CalculatePrice(context.Background(), db, []LineItem{
		{Name: "rice", Quantity: "1 kg"},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}
