package service

import (
	"errors"
	"log"
	"time"

	"ai-site-server/internal/common"
	"ai-site-server/internal/config"
	"ai-site-server/internal/model"
	"ai-site-server/internal/repository"
	"ai-site-server/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userStore repository.UserStore
}

func NewAuthService(userStore repository.UserStore) *AuthService {
	return &AuthService{userStore: userStore}
}

// Register 注册新用户并签发登录 Token。
// 用户名或邮箱任一已被占用时返回 Conflict，不产生任何写入。
func (s *AuthService) Register(username, email, password string) (string, *model.User, error) {
	exists, err := s.userStore.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		log.Printf("Register existence check error: %v", err)
		return "", nil, common.NewInternalError(err.Error())
	}
	if exists {
		return "", nil, common.NewConflictError("already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, common.NewInternalError(err.Error())
	}

	user := model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userStore.Create(&user); err != nil {
		log.Printf("Register create error: %v", err)
		return "", nil, common.NewInternalError(err.Error())
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Login 校验邮箱与密码并签发新 Token。
// 邮箱不存在与密码错误返回同一个错误，避免账号枚举。
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.userStore.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Login lookup error: %v", err)
			return "", nil, common.NewInternalError(err.Error())
		}
		return "", nil, common.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, common.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyToken 解析 Token 并返回其绑定的用户 ID。
func (s *AuthService) VerifyToken(tokenString string) (uint, error) {
	claims, err := utils.ParseLoginToken(tokenString)
	if err != nil {
		return 0, common.NewUnauthorizedError("bad token")
	}
	return claims.ID, nil
}

func (s *AuthService) issueToken(userID uint) (string, error) {
	cfg := config.Get()
	token, err := utils.GenerateLoginToken(userID, time.Hour*time.Duration(cfg.JWT.ExpirationHours))
	if err != nil {
		log.Printf("issueToken error: %v", err)
		return "", common.NewInternalError(err.Error())
	}
	return token, nil
}
