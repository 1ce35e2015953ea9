package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword 生成 bcrypt 哈希（默认 cost）。
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword 比对明文与存储哈希。
func CheckPassword(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
