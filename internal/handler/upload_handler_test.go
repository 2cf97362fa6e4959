package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ai-site-server/internal/model"
	"ai-site-server/internal/utils"

	"github.com/gin-gonic/gin"
)

func multipartAvatar(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("avatar", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("写入分段失败: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("关闭 writer 失败: %v", err)
	}
	return &body, w.FormDataContentType()
}

// 测试内容：缺失 Authorization 头时返回 401 missing token 且不产生任何落盘文件。
func TestUploadAvatar_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestHandler(t)

	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(oldwd) }()

	r := gin.New()
	r.POST("/api/upload/avatar", testHandler.UploadAvatar)

	body, contentType := multipartAvatar(t, "a.png", []byte("0123456789"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d body=%s", w.Code, w.Body.String())
	}

	var errResp struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &errResp)
	if errResp.Error != "missing token" {
		t.Fatalf("非预期错误信息 %q", errResp.Error)
	}

	if _, err := os.Stat(filepath.Join("uploads", "avatars")); !os.IsNotExist(err) {
		t.Fatalf("期望未产生任何落盘文件, err=%v", err)
	}
}

// 测试内容：非法 Token 与已删除用户的 Token 均返回 401 bad token。
func TestUploadAvatar_BadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestHandler(t)

	r := gin.New()
	r.POST("/api/upload/avatar", testHandler.UploadAvatar)

	// 签名合法但用户不存在的 token
	orphanToken, err := utils.GenerateLoginToken(9999, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken: %v", err)
	}

	badTokens := map[string]string{
		"非法 token":      "garbage.token.value",
		"无对应用户的 token": orphanToken,
	}
	for name, token := range badTokens {
		body, contentType := multipartAvatar(t, "a.png", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: 期望 401，实际为 %d body=%s", name, w.Code, w.Body.String())
		}
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &errResp)
		if errResp.Error != "bad token" {
			t.Fatalf("%s: 非预期错误信息 %q", name, errResp.Error)
		}
	}
}

// 测试内容：合法 Token 上传成功，返回的路径指向与上传一致的文件内容。
func TestUploadAvatar_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestHandler(t)

	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	defer func() { _ = os.Chdir(oldwd) }()

	u := model.User{Username: "alice", Password: "x", Email: "a@example.com"}
	_ = gdb.Create(&u).Error
	token, err := utils.GenerateLoginToken(u.ID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken: %v", err)
	}

	r := gin.New()
	r.POST("/api/upload/avatar", testHandler.UploadAvatar)

	content := []byte("0123456789")
	body, contentType := multipartAvatar(t, "me.png", content)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Avatar string `json:"avatar"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp.Avatar, "/uploads/avatars/") {
		t.Fatalf("非预期头像路径 %q", resp.Avatar)
	}

	data, err := os.ReadFile(filepath.Join("uploads", "avatars", filepath.Base(resp.Avatar)))
	if err != nil {
		t.Fatalf("读取落盘文件失败: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Fatalf("落盘内容与上传内容不一致")
	}

	var got model.User
	_ = gdb.First(&got, u.ID).Error
	if got.Avatar != resp.Avatar {
		t.Fatalf("期望 avatar %q，实际为 %q", resp.Avatar, got.Avatar)
	}
}

// 测试内容：合法 Token 但缺少文件字段时返回 400。
func TestUploadAvatar_NoFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := setupTestHandler(t)

	u := model.User{Username: "alice", Password: "x", Email: "a@example.com"}
	_ = gdb.Create(&u).Error
	token, _ := utils.GenerateLoginToken(u.ID, time.Hour)

	r := gin.New()
	r.POST("/api/upload/avatar", testHandler.UploadAvatar)

	req := httptest.NewRequest(http.MethodPost, "/api/upload/avatar", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
}
