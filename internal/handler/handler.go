package handler

import (
	"ai-site-server/internal/repository"
	"ai-site-server/internal/service"
)

type Handler struct {
	auth      *service.AuthService
	avatar    *service.AvatarService
	chat      *service.ChatService
	userStore repository.UserStore
}

func New(auth *service.AuthService, avatar *service.AvatarService, chat *service.ChatService, userStore repository.UserStore) *Handler {
	return &Handler{
		auth:      auth,
		avatar:    avatar,
		chat:      chat,
		userStore: userStore,
	}
}
