package model

import (
	"time"

	"gorm.io/gorm"
)

// User 应用用户：资料 + 书签 + 购物清单
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"size:32" json:"phone,omitempty"`
	// Password 仅存 bcrypt 哈希，永不下发
	Password []byte `gorm:"not null" json:"-"`

	ProfileName     string     `gorm:"size:255" json:"profileName,omitempty"`
	ProfileDOB      *time.Time `json:"profileDob,omitempty"`
	ProfileLocation string     `gorm:"size:255" json:"profileLocation,omitempty"`
}

func (User) TableName() string { return "users" }

// BookmarkEntry 收藏夹条目：用户长期保存的菜谱。
type BookmarkEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   uint `gorm:"not null;index;uniqueIndex:uniq_bookmark,priority:1" json:"userId"`
	RecipeID uint `gorm:"not null;uniqueIndex:uniq_bookmark,priority:2" json:"recipeId"`
}

func (BookmarkEntry) TableName() string { return "bookmark_entries" }

// ShoppingListEntry 购物清单条目：已选定、待下单的菜谱。
// 自增 ID 保留加入顺序；(user_id, recipe_id) 唯一保证集合语义。
type ShoppingListEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID   uint `gorm:"not null;index;uniqueIndex:uniq_shopping,priority:1" json:"userId"`
	RecipeID uint `gorm:"not null;uniqueIndex:uniq_shopping,priority:2" json:"recipeId"`
}

func (ShoppingListEntry) TableName() string { return "shopping_list_entries" }
