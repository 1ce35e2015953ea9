package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"recipe_vault/internal/apperr"
	"recipe_vault/internal/auth"
	"recipe_vault/internal/model"

	"gorm.io/gorm"
)

// ErrInvalidCredentials 密码不匹配；handler 映射为 401。
var ErrInvalidCredentials = errors.New("invalid user credentials")

// ErrUserExists 用户名 / 邮箱 / 手机号已被占用；handler 映射为 409。
var ErrUserExists = errors.New("user already exists")

// Auth 负责注册与登录。
type Auth struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

// RegisterInput 注册请求。
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	ProfileName string `json:"profileName"`
	ProfileDOB  string `json:"profileDob"` // YYYY-MM-DD，可选
	Location    string `json:"profileLocation"`
}

// Register 创建用户并签发访问令牌。用户名统一转小写存储。
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" || strings.TrimSpace(in.ProfileName) == "" {
		return nil, "", apperr.BadRequest("All fields are required: username, email, password, name")
	}

	var count int64
	q := a.DB.WithContext(ctx).Model(&model.User{}).
		Where("username = ? OR email = ?", username, email)
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		q = a.DB.WithContext(ctx).Model(&model.User{}).
			Where("username = ? OR email = ? OR phone = ?", username, email, phone)
	}
	if err := q.Count(&count).Error; err != nil {
		return nil, "", apperr.ServerError(err, "user lookup failed: %v", err)
	}
	if count > 0 {
		return nil, "", ErrUserExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.ServerError(err, "password hashing failed: %v", err)
	}

	user := &model.User{
		Username:        username,
		Email:           email,
		Phone:           strings.TrimSpace(in.Phone),
		Password:        hash,
		ProfileName:     strings.TrimSpace(in.ProfileName),
		ProfileLocation: strings.TrimSpace(in.Location),
	}
	if in.ProfileDOB != "" {
		dob, err := time.Parse("2006-01-02", in.ProfileDOB)
		if err != nil {
			return nil, "", apperr.BadRequest("Invalid profileDob, expected YYYY-MM-DD")
		}
		user.ProfileDOB = &dob
	}

	if err := a.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", apperr.ServerError(err, "user creation failed: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email, a.JWTSecret, a.TokenTTL)
	if err != nil {
		return nil, "", apperr.ServerError(err, "token generation failed: %v", err)
	}
	return user, token, nil
}

// Login 按邮箱认证并签发访问令牌。
func (a *Auth) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	var user model.User
	err := a.DB.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.NotFound("User does not exist")
		}
		return nil, "", apperr.ServerError(err, "user lookup failed: %v", err)
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, a.JWTSecret, a.TokenTTL)
	if err != nil {
		return nil, "", apperr.ServerError(err, "token generation failed: %v", err)
	}
	return &user, token, nil
}
