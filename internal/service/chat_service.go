package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"ai-site-server/internal/common"
	"ai-site-server/internal/config"
)

// ChatMessage 按原样转发给上游，不做结构校验。
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionReq struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResp struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type ChatService struct {
	client *http.Client
}

func NewChatService(client *http.Client) *ChatService {
	if client == nil {
		cfg := config.Get()
		client = &http.Client{Timeout: time.Duration(cfg.Chat.TimeoutSeconds) * time.Second}
	}
	return &ChatService{client: client}
}

// Relay 将对话消息转发到上游 chat-completion 接口并取回首个回复。
// 任何上游失败只记录日志，对外统一返回 "relay failed"，不泄露上游细节。
func (s *ChatService) Relay(ctx context.Context, messages []ChatMessage) (string, error) {
	cfg := config.Get()

	key := strings.TrimSpace(cfg.Chat.APIKey)
	if key == "" {
		log.Println("chat relay: 未配置上游 API Key")
		return "", common.NewInternalError("relay failed")
	}

	body := chatCompletionReq{
		Model:       cfg.Chat.Model,
		Messages:    messages,
		Temperature: cfg.Chat.Temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		log.Printf("chat relay marshal error: %v", err)
		return "", common.NewInternalError("relay failed")
	}

	base := strings.TrimRight(cfg.Chat.BaseURL, "/")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		log.Printf("chat relay request error: %v", err)
		return "", common.NewInternalError("relay failed")
	}
	httpReq.Header.Set("Authorization", "Bearer "+key)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		log.Printf("chat relay upstream error: %v", err)
		return "", common.NewInternalError("relay failed")
	}
	defer func() { _ = resp.Body.Close() }()

	slurp, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		log.Printf("chat relay upstream non-2xx: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(slurp)))
		return "", common.NewInternalError("relay failed")
	}

	var upstream chatCompletionResp
	if err := json.Unmarshal(slurp, &upstream); err != nil {
		log.Printf("chat relay decode error: %v", err)
		return "", common.NewInternalError("relay failed")
	}
	if len(upstream.Choices) == 0 {
		log.Println("chat relay: 上游未返回任何 choice")
		return "", common.NewInternalError("relay failed")
	}

	return upstream.Choices[0].Message.Content, nil
}
