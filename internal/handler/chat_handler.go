package handler

import (
	"net/http"

	"ai-site-server/internal/common/httpx"
	"ai-site-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Chat 将对话消息转发给上游模型并返回回复。
func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		Messages []service.ChatMessage `json:"messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	reply, err := h.chat.Relay(c.Request.Context(), req.Messages)
	if err != nil {
		httpx.WriteServiceError(c, err, "relay failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
