package model

import (
	"time"

	"gorm.io/gorm"
)

// 新菜谱未提供图片时使用的占位图。
const DefaultRecipeImage = "https://via.placeholder.com/300"

// Recipe 菜谱：描述 + 做法 + 内嵌的自由文本食材行
type Recipe struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"size:512" json:"image"`
	// Procedure 按行存储做法步骤
	Procedure string `gorm:"type:text" json:"procedure"`

	CharType      string `gorm:"size:64" json:"type"`
	CharDiet      string `gorm:"size:64" json:"diet"`
	CharSpiciness string `gorm:"size:64" json:"spiciness,omitempty"`

	CreatedBy uint `gorm:"not null;index" json:"createdBy"`

	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
}

func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient 菜谱食材行。Quantity 是自由文本（如 "1/2 cup"），
// 与目录按名称匹配而非外键，菜谱取出后视为不可变。
type RecipeIngredient struct {
	ID       uint `gorm:"primarykey" json:"-"`
	RecipeID uint `gorm:"not null;index" json:"-"`

	Name     string `gorm:"size:255;not null" json:"name"`
	Quantity string `gorm:"size:64;not null" json:"quantity"`
	Notes    string `gorm:"size:255" json:"notes,omitempty"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients" }
