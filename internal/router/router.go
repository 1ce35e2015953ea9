package router

import (
	"net/http"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/config"
	"recipe_vault/internal/middleware"
	"recipe_vault/internal/queue"
	"recipe_vault/internal/service"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup 注册全部 HTTP 路由。
func Setup(r *gin.Engine, db *gorm.DB, rdb *rd.Client, producer *queue.Producer, cfg config.AppConfig) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	authSvc := &service.Auth{DB: db, JWTSecret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	checkout := &service.Checkout{DB: db, RDB: rdb, LockTTL: cfg.CheckoutLockTTL}
	if producer != nil {
		checkout.Events = producer
	}

	// 公开接口
	r.POST("/api/auth/register", register(authSvc))
	r.POST("/api/auth/login", login(authSvc))
	r.GET("/api/recipes", listRecipes(db))
	r.GET("/api/recipes/:id", getRecipe(db))
	r.GET("/api/ingredients", listIngredients(db))
	r.POST("/api/ingredients/calculate", calculatePrice(db))

	// 登录后接口
	authed := r.Group("/api", middleware.RequireAuth(cfg.JWTSecret))
	{
		authed.GET("/users/me", currentUser(db))

		authed.POST("/recipes", createRecipe(db))
		authed.GET("/recipes/user", listMyRecipes(db))
		authed.PUT("/recipes/:id", updateRecipe(db))
		authed.DELETE("/recipes/:id", deleteRecipe(db))

		authed.GET("/bookmarks", listBookmarks(db))
		authed.POST("/bookmarks", addBookmarks(db))
		authed.DELETE("/bookmarks", removeBookmarks(db))

		authed.GET("/shopping-list", listShoppingList(db))
		authed.POST("/shopping-list/add", addToShoppingList(db))
		authed.POST("/shopping-list/remove", removeFromShoppingList(db))
		authed.POST("/shopping-list/calculate", calculateShoppingList(db))

		authed.POST("/orders",
			middleware.RedisRateLimit(rdb, cfg.OrderRateLimit, cfg.OrderRateWindow),
			placeOrder(checkout))
		authed.GET("/orders", listOrders(db))
		authed.GET("/orders/:orderNo", getOrder(db))
	}

	// 管理接口：目录维护与订单状态流转
	admin := r.Group("/api", middleware.RequireAdmin(cfg.AdminToken))
	{
		admin.POST("/ingredients", createIngredient(db))
		admin.PUT("/ingredients/:id", updateIngredient(db))
		admin.DELETE("/ingredients/:id", deleteIngredient(db))
		admin.PATCH("/orders/:orderNo/status", advanceOrderStatus(db))
	}
}

// fail 按错误类别写出 {"error": msg} 响应。
func fail(c *gin.Context, err error) {
	e := apperr.From(err)
	c.JSON(e.HTTPStatus(), gin.H{"error": e.Message})
}
