package main

import (
	"recipe_vault/internal/config"
	"recipe_vault/internal/logger"
	"recipe_vault/internal/model"
	"recipe_vault/internal/queue"
	"recipe_vault/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	// .env 可选，缺失时直接用环境变量与默认值
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load", zap.Error(err))
	}

	// 1. 连接 SQLite，自动建表
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	if err := db.AutoMigrate(
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
	); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	// 2. Redis：限流 + 结账锁。连不上只降级告警，不阻止启动。
	rdb := rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})

	// 3. Kafka 生产者：下单事件
	producer := queue.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	r := gin.Default()
	router.Setup(r, db, rdb, producer, cfg)

	logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server exit", zap.Error(err))
	}
}
