package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ai-site-server/internal/config"
	"ai-site-server/internal/db"
	"ai-site-server/internal/handler"
	"ai-site-server/internal/repository"
	"ai-site-server/internal/router"
	"ai-site-server/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	config.InitConfig("")

	gormDB, err := db.Open(config.Get().Database)
	if err != nil {
		log.Fatal("❌ ", err)
	}

	avatarPath := config.Get().Upload.AvatarPath
	checkSecurePath(avatarPath)
	if err := os.MkdirAll(avatarPath, 0755); err != nil {
		log.Fatal("❌ 无法创建头像目录: ", err)
	}

	userStore := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userStore)
	avatarService := service.NewAvatarService(userStore)
	chatService := service.NewChatService(nil)
	h := handler.New(authService, avatarService, chatService, userStore)

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	router.NewRouter(h).Init(r)

	// 头像目录作为静态资源公开
	avatarRoute := strings.TrimSuffix(config.Get().Upload.AvatarURLPrefix, "/")
	r.StaticFS(avatarRoute, gin.Dir(avatarPath, false))

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"error": "API not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/uploads") {
			c.JSON(404, gin.H{"error": "Upload not found"})
			return
		}
		c.JSON(404, gin.H{"error": "not found"})
	})

	// 打印启动欢迎语
	printWelcomeMessage()

	// 停机配置
	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		// 服务连接
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ 服务强制关闭:", err)
	}
	log.Println("✅ 服务已退出")
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Println(" │   🚀  AI Site Server")
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	fmt.Printf(" │   🤖  对话模型 : %s\n", config.Get().Chat.Model)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func checkSecurePath(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		log.Fatalf("❌ 路径解析失败: %v", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}

	// 检查是否直接指向项目根目录
	if absPath == cwd {
		log.Fatalf("❌ 安全配置错误: 静态资源目录 '%s' 不能设置为项目根目录！这会导致源代码泄露。", path)
	}
}
