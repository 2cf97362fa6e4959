package model

import (
	"time"
)

type User struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `json:"username" gorm:"unique;not null"`
	Email     string `json:"email" gorm:"unique;index;size:255;not null"`
	Password  string `json:"-" gorm:"not null"` // bcrypt 哈希，永不存明文
	Avatar    string `json:"avatar"`            // 公开访问路径，未上传时为空
}
