package service

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"ai-site-server/internal/config"
	"ai-site-server/internal/model"
	"ai-site-server/internal/repository"

	"github.com/google/uuid"
)

type AvatarService struct {
	userStore repository.UserStore
}

func NewAvatarService(userStore repository.UserStore) *AvatarService {
	return &AvatarService{userStore: userStore}
}

// SaveAvatar 将上传文件落盘并更新用户头像字段，返回公开访问路径。
// 文件名使用 uuid 生成，避免同名/同时间戳上传互相覆盖。
func (s *AvatarService) SaveAvatar(user *model.User, file *multipart.FileHeader) (string, error) {
	cfg := config.Get()
	avatarRoot := cfg.Upload.AvatarPath
	if avatarRoot == "" {
		avatarRoot = "uploads/avatars"
	}

	// 自动创建文件夹
	if err := os.MkdirAll(avatarRoot, 0755); err != nil {
		log.Printf("MkdirAll error: %v\n", err)
		return "", errors.New("系统错误: 无法创建存储目录")
	}

	// 生成唯一文件名
	ext := strings.ToLower(filepath.Ext(file.Filename))
	newFilename := uuid.New().String() + ext
	dstPath := filepath.Join(avatarRoot, newFilename)

	// 打开源文件
	src, err := file.Open()
	if err != nil {
		log.Printf("File open error: %v\n", err)
		return "", errors.New("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	// 创建目标文件
	out, err := os.Create(dstPath)
	if err != nil {
		log.Printf("File create error: %v\n", err)
		return "", errors.New("系统错误: 无法创建文件")
	}
	defer func() { _ = out.Close() }()

	// 复制内容
	if _, err = io.Copy(out, src); err != nil {
		log.Printf("File save error: %v\n", err)
		return "", errors.New("文件保存失败")
	}

	// 保存旧头像路径用于后续删除
	oldAvatar := user.Avatar

	prefix := cfg.Upload.AvatarURLPrefix
	if prefix == "" {
		prefix = "/uploads/avatars/"
	}
	publicPath := prefix + newFilename

	// 更新数据库
	if err := s.userStore.UpdateAvatar(user, publicPath); err != nil {
		_ = os.Remove(dstPath) // 回滚文件
		log.Printf("DB Update avatar error: %v\n", err)
		return "", errors.New("系统错误: 数据库更新失败")
	}

	// 删除旧头像
	if oldAvatar != "" {
		if old := strings.TrimPrefix(oldAvatar, prefix); old != oldAvatar {
			_ = os.Remove(filepath.Join(avatarRoot, filepath.Base(old)))
		}
	}

	return publicPath, nil
}
