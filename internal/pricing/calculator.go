package pricing

import (
	"context"
	"errors"
	"math"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/model"

	"gorm.io/gorm"
)

// LineItem 待计价条目：名称 + 已缩放的数量字符串。
type LineItem struct {
	Name     string
	Quantity string
}

// PricedItem 计价结果行。单位取自目录，金额单位派萨。
type PricedItem struct {
	Name         string
	Quantity     string
	Unit         string
	PricePerUnit int64
	Price        int64
}

// Quote 整单计价结果。
type Quote struct {
	Items      []PricedItem
	TotalPrice int64
}

// CalculatePrice 将条目逐一按目录计价并汇总。
// 目录按名称精确匹配（大小写敏感）；任何一条失败则整单失败，不返回部分结果：
//   - 目录缺名 → NotFound，指明缺失的食材名
//   - 数量无法解析 → InvalidFormat，指明违规的数量字符串
func CalculatePrice(ctx context.Context, db *gorm.DB, items []LineItem) (Quote, error) {
	quote := Quote{Items: make([]PricedItem, 0, len(items))}

	for _, item := range items {
		var ing model.Ingredient
		err := db.WithContext(ctx).Where("name = ?", item.Name).First(&ing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Quote{}, apperr.NotFound("Ingredient not found: %s", item.Name)
			}
			return Quote{}, apperr.ServerError(err, "ingredient lookup failed: %v", err)
		}

		amount, ok := ParseAmount(item.Quantity)
		if !ok {
			return Quote{}, apperr.InvalidFormat("Invalid quantity format: %s", item.Quantity)
		}

		price := int64(math.Round(amount * float64(ing.PricePerUnit)))
		quote.Items = append(quote.Items, PricedItem{
			Name:         item.Name,
			Quantity:     item.Quantity,
			Unit:         ing.Unit,
			PricePerUnit: ing.PricePerUnit,
			Price:        price,
		})
		quote.TotalPrice += price
	}

	return quote, nil
}
