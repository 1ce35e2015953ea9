package router

import (
	"errors"
	"net/http"

	"recipe_vault/internal/middleware"
	"recipe_vault/internal/model"
	"recipe_vault/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// register 注册并直接签发令牌。
func register(svc *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		user, token, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, service.ErrUserExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "User with this username, email or phone already exists"})
				return
			}
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

// login 邮箱 + 密码登录。
func login(svc *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
			return
		}

		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user credentials"})
				return
			}
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}

// currentUser 返回令牌对应的用户资料。
func currentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		var user model.User
		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
