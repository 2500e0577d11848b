package chat

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"sica-kitchen/internal/core/chat"
	"sica-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatRequest 對話請求
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse 對話響應
type ChatResponse struct {
	SessionID string                 `json:"session_id"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
}

// OrchestratorFactory 依會話 ID 創建協調器
type OrchestratorFactory func(sessionID string) *chat.Orchestrator

// Handler 對話處理器，每個會話各自持有一個協調器
type Handler struct {
	factory  OrchestratorFactory
	sessions sync.Map // sessionID -> *chat.Orchestrator
}

// NewHandler 創建對話處理器
func NewHandler(factory OrchestratorFactory) *Handler {
	return &Handler{factory: factory}
}

// orchestrator 取得或建立會話的協調器
func (h *Handler) orchestrator(sessionID string) *chat.Orchestrator {
	if o, ok := h.sessions.Load(sessionID); ok {
		return o.(*chat.Orchestrator)
	}
	o, _ := h.sessions.LoadOrStore(sessionID, h.factory(sessionID))
	return o.(*chat.Orchestrator)
}

// HandleChat 處理一則對話訊息
// 未帶 session_id 時自動分配，回應一律帶回 session_id 供後續輪次使用
func (h *Handler) HandleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Message must not be empty",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = common.GenerateUUID()
	}

	resp, err := h.orchestrator(sessionID).ProcessMessage(c.Request.Context(), req.Message)
	if err != nil {
		status, code := mapError(err)
		common.LogError("對話處理失敗",
			zap.String("session_id", sessionID),
			zap.Int("status", status),
			zap.Error(err),
		)
		c.JSON(status, gin.H{
			"error":      err.Error(),
			"code":       code,
			"session_id": sessionID,
		})
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		SessionID: sessionID,
		Message:   resp.Message,
		Data:      resp.Data,
	})
}

// mapError 把流程錯誤對應到 HTTP 狀態碼
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrNoRecipesFound):
		return http.StatusNotFound, "NO_RECIPES_FOUND"
	case errors.Is(err, common.ErrEmptyExtraction):
		return http.StatusUnprocessableEntity, "NO_INGREDIENTS_FOUND"
	case errors.Is(err, common.ErrTimeout):
		return http.StatusGatewayTimeout, common.ErrCodeGatewayTimeout
	case errors.Is(err, common.ErrAuthenticationFailed):
		return http.StatusBadGateway, "UPSTREAM_AUTH_FAILED"
	case errors.Is(err, common.ErrClassificationFailed),
		errors.Is(err, common.ErrEmptyAIResponse):
		return http.StatusBadGateway, "AI_SERVICE_ERROR"
	default:
		return http.StatusInternalServerError, common.ErrCodeInternalError
	}
}
