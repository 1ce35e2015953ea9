package main

import (
	"context"
	"os/signal"
	"syscall"

	"recipe_vault/internal/config"
	"recipe_vault/internal/logger"
	"recipe_vault/internal/queue"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// 履约进程：消费下单事件，把订单从 Pending 推进到 Processing。
// 与 API 进程共用同一个数据库文件，独立启停。
func main() {
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load", zap.Error(err))
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}

	consumer := queue.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, db)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("fulfillment consumer starting",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", cfg.KafkaGroupID))

	consumer.Run(ctx)
	logger.Info("fulfillment consumer stopped")
}
