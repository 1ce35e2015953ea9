package redis

import "fmt"

// CheckoutLockKey 标记某用户是否有一笔进行中的结账。
func CheckoutLockKey(userID uint) string {
	return fmt.Sprintf("recipe_vault:checkout:lock:%d", userID)
}
