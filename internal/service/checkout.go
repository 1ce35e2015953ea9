package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/logger"
	"recipe_vault/internal/model"
	"recipe_vault/internal/pricing"
	"recipe_vault/internal/queue"
	rediskey "recipe_vault/pkg/redis"

	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EventPublisher 下单事件出口，生产实现是 Kafka Producer。
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt queue.OrderPlacedEvent) error
}

// Checkout 是下单管线：校验（纯门禁）→ 事务落单并扣除购物清单 → 事件通知。
// RDB 与 Events 允许为 nil：没有 Redis 就没有用户级结账锁，
// 事务内的条件扣除仍然保证清单条目不会被消费两次。
type Checkout struct {
	DB      *gorm.DB
	RDB     *rd.Client
	Events  EventPublisher
	LockTTL time.Duration
}

// OrderIngredientInput 订单条目内的食材行。价格用指针区分「缺失」与 0。
type OrderIngredientInput struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Price    *float64 `json:"price"`
}

// OrderItemInput 每菜谱一条的订单条目。
type OrderItemInput struct {
	Recipe      string                 `json:"recipe"`
	Name        string                 `json:"name"`
	Price       *float64               `json:"price"`
	Ingredients []OrderIngredientInput `json:"ingredients"`
}

// PlaceOrderInput 下单请求体（§外部接口）。
type PlaceOrderInput struct {
	RecipeIDs       []string         `json:"recipeIds"`
	DeliveryAddress string           `json:"deliveryAddress"`
	Items           []OrderItemInput `json:"items"`
	TotalPrice      *float64         `json:"totalPrice"`
}

// PlacedOrder 下单结果。金额单位派萨。
type PlacedOrder struct {
	OrderNo    string
	TotalPrice int64
	ItemCount  int
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// newOrderNo 生成对外订单号。
func newOrderNo() string {
	return "RV" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12])
}

// Validate 执行下单前的全部校验，按序快速失败，第一条违规即返回。
// 纯门禁：不做任何写入。返回解析好的菜谱 ID（保持请求顺序）。
func (s *Checkout) Validate(ctx context.Context, userID uint, in PlaceOrderInput) ([]uint, error) {
	if len(in.RecipeIDs) == 0 {
		return nil, apperr.BadRequest("No recipe IDs provided")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, apperr.BadRequest("Delivery address is required")
	}
	if len(in.Items) == 0 {
		return nil, apperr.BadRequest("Order items are required")
	}
	if !finite(in.TotalPrice) || *in.TotalPrice <= 0 {
		return nil, apperr.BadRequest("Invalid or missing total price")
	}

	if _, err := loadUser(ctx, s.DB, userID); err != nil {
		return nil, err
	}

	// 购物清单成员资格：全有或全无，一个越界 ID 即否决整单。
	listIDs, err := ShoppingListRecipeIDs(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	recipeIDs := make([]uint, 0, len(in.RecipeIDs))
	var missing []string
	for _, raw := range in.RecipeIDs {
		id, parseErr := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
		if parseErr != nil || !listIDs[uint(id)] {
			missing = append(missing, strings.TrimSpace(raw))
			continue
		}
		recipeIDs = append(recipeIDs, uint(id))
	}
	if len(missing) > 0 {
		return nil, apperr.BadRequest("Recipes not in shopping list: %s", strings.Join(missing, ", "))
	}

	for i, item := range in.Items {
		if strings.TrimSpace(item.Recipe) == "" {
			return nil, apperr.BadRequest("Order item %d is missing a recipe reference", i+1)
		}
		if _, err := strconv.ParseUint(strings.TrimSpace(item.Recipe), 10, 32); err != nil {
			return nil, apperr.BadRequest("Order item %d has an invalid recipe reference: %s", i+1, item.Recipe)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, apperr.BadRequest("Order item %d is missing a name", i+1)
		}
		if !finite(item.Price) {
			return nil, apperr.BadRequest("Order item %q has an invalid price", item.Name)
		}
		if len(item.Ingredients) == 0 {
			return nil, apperr.BadRequest("Order item %q has no ingredients", item.Name)
		}
		for j, ing := range item.Ingredients {
			if strings.TrimSpace(ing.Name) == "" {
				return nil, apperr.BadRequest("Ingredient %d in item %q is missing a name", j+1, item.Name)
			}
			if strings.TrimSpace(ing.Quantity) == "" {
				return nil, apperr.BadRequest("Ingredient %q in item %q is missing a quantity", ing.Name, item.Name)
			}
			if !finite(ing.Price) {
				return nil, apperr.BadRequest("Ingredient %q in item %q has an invalid price", ing.Name, item.Name)
			}
		}
	}

	return recipeIDs, nil
}

// PlaceOrder 校验并落单。
// 持久化与购物清单扣除在同一事务内完成；扣除是条件式的
// （remove-if-all-present），并发结账输掉竞争的一方整单回滚。
func (s *Checkout) PlaceOrder(ctx context.Context, userID uint, in PlaceOrderInput) (PlacedOrder, error) {
	// 用户级结账锁：同一用户同时只放行一笔。Redis 出错时放行，
	// 事务内的条件扣除仍兜底。
	if s.RDB != nil {
		token := uuid.New().String()
		ok, err := rediskey.AcquireCheckoutLock(ctx, s.RDB, userID, token, s.LockTTL)
		if err != nil {
			logger.Warn("checkout lock unavailable", zap.Uint("user_id", userID), zap.Error(err))
		} else if !ok {
			return PlacedOrder{}, apperr.BadRequest("Another checkout is already in progress")
		} else {
			defer func() {
				if relErr := rediskey.ReleaseCheckoutLock(ctx, s.RDB, userID, token); relErr != nil {
					logger.Warn("checkout lock release failed", zap.Uint("user_id", userID), zap.Error(relErr))
				}
			}()
		}
	}

	recipeIDs, err := s.Validate(ctx, userID, in)
	if err != nil {
		return PlacedOrder{}, err
	}

	order := &model.Order{
		OrderNo:         newOrderNo(),
		UserID:          userID,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		TotalPrice:      pricing.ToPaise(*in.TotalPrice),
		Status:          model.OrderPending,
	}
	for _, rid := range recipeIDs {
		order.Recipes = append(order.Recipes, model.OrderRecipe{RecipeID: rid})
	}
	for _, item := range in.Items {
		rid, _ := strconv.ParseUint(strings.TrimSpace(item.Recipe), 10, 32)
		oi := model.OrderItem{
			RecipeID:   uint(rid),
			RecipeName: strings.TrimSpace(item.Name),
			Price:      pricing.ToPaise(*item.Price),
		}
		for _, ing := range item.Ingredients {
			oi.Ingredients = append(oi.Ingredients, model.OrderItemIngredient{
				Name:     ing.Name,
				Quantity: ing.Quantity,
				Price:    pricing.ToPaise(*ing.Price),
			})
		}
		order.Items = append(order.Items, oi)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return apperr.ServerError(err, "Error creating order: %v", err)
		}

		// 条件扣除：校验到此处之间清单可能已被并发结账消费，
		// 行数不足说明输掉了竞争，整单回滚。
		res := tx.Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
			Delete(&model.ShoppingListEntry{})
		if res.Error != nil {
			return apperr.ServerError(res.Error, "Error updating shopping list: %v", res.Error)
		}
		if res.RowsAffected != int64(len(recipeIDs)) {
			return apperr.BadRequest("Shopping list changed during checkout, please try again")
		}
		return nil
	})
	if err != nil {
		return PlacedOrder{}, err
	}

	// 订单已提交，事件通知尽力而为，失败只记日志不回滚。
	if s.Events != nil {
		evt := queue.OrderPlacedEvent{
			OrderNo:    order.OrderNo,
			UserID:     userID,
			TotalPrice: order.TotalPrice,
			ItemCount:  len(order.Items),
		}
		if pubErr := s.Events.PublishOrderPlaced(ctx, evt); pubErr != nil {
			logger.Warn("order event publish failed", zap.String("order_no", order.OrderNo), zap.Error(pubErr))
		}
	}

	return PlacedOrder{
		OrderNo:    order.OrderNo,
		TotalPrice: order.TotalPrice,
		ItemCount:  len(order.Items),
	}, nil
}
