package model

import (
	"time"

	"gorm.io/gorm"
)

// Ingredient 价格目录条目：名称唯一，定价按目录单位计。
// 由管理端 CRUD 维护，计价管线只读。
type Ingredient struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Unit string `gorm:"size:32;not null" json:"unit"` // kg、litre 等
	// PricePerUnit 单位：派萨（1/100 卢比），避免浮点货币误差
	PricePerUnit int64 `gorm:"not null" json:"-"`
}

func (Ingredient) TableName() string { return "ingredients" }
