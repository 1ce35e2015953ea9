package queue

import "fmt"

// OrderPlacedEvent 是写入 Kafka 的下单成功事件。
// 金额单位派萨，与存储保持一致。
type OrderPlacedEvent struct {
	OrderNo    string `json:"order_no"`
	UserID     uint   `json:"user_id"`
	TotalPrice int64  `json:"total_price"`
	ItemCount  int    `json:"item_count"`
}

// Validate 做最小字段校验，防止消费者处理脏消息。
func (e OrderPlacedEvent) Validate() error {
	if e.OrderNo == "" {
		return fmt.Errorf("order_no is required")
	}
	if e.UserID == 0 {
		return fmt.Errorf("user_id is required")
	}
	if e.TotalPrice <= 0 {
		return fmt.Errorf("total_price must be > 0")
	}
	if e.ItemCount <= 0 {
		return fmt.Errorf("item_count must be > 0")
	}
	return nil
}
