package queue

import (
	"context"
	"encoding/json"

	"recipe_vault/internal/logger"
	"recipe_vault/internal/model"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Consumer 消费下单事件，把订单从 Pending 推进到 Processing。
// 状态流转本身由外部系统驱动，这里是接单环节的模拟实现。
type Consumer struct {
	r  *kafka.Reader
	db *gorm.DB
}

func NewConsumer(brokers []string, topic, groupID string, db *gorm.DB) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		db: db,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / 连接断开等
		}

		var evt OrderPlacedEvent
		if err := json.Unmarshal(m.Value, &evt); err != nil {
			logger.Warn("consumer unmarshal", zap.Error(err))
			continue
		}
		if err := evt.Validate(); err != nil {
			logger.Warn("consumer drop invalid event", zap.Error(err))
			continue
		}

		// 条件更新天然幂等：重复消息命中 0 行，直接当作成功。
		res := c.db.Model(&model.Order{}).
			Where("order_no = ? AND status = ?", evt.OrderNo, model.OrderPending).
			Update("status", model.OrderProcessing)
		if res.Error != nil {
			logger.Error("consumer advance order", zap.String("order_no", evt.OrderNo), zap.Error(res.Error))
			continue
		}
		if res.RowsAffected > 0 {
			logger.Info("order accepted for processing", zap.String("order_no", evt.OrderNo))
		}
	}
}
