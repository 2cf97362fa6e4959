package router

import (
	"ai-site-server/internal/config"
	"ai-site-server/internal/handler"
	"ai-site-server/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	handler *handler.Handler
}

func NewRouter(h *handler.Handler) *Router {
	return &Router{handler: h}
}

func (rt *Router) Init(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/auth/register", rt.handler.Register)
	api.POST("/auth/login", rt.handler.Login)

	uploadLimit := middleware.UploadBodyLimit(config.Get().Upload.MaxAvatarSize)
	api.POST("/upload/avatar", uploadLimit, rt.handler.UploadAvatar)

	api.POST("/chat", rt.handler.Chat)
}
