package handler

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"drawing-backend/internal/cache"
	"drawing-backend/internal/element"
	"drawing-backend/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
	maxTitleLen  = 200
)

// ChatHandler 캔버스 문서 CRUD 핸들러
type ChatHandler struct {
	db    *gorm.DB
	cache *cache.ChatCache
}

// NewChatHandler ChatHandler 생성. cache는 nil 허용 (비활성화)
func NewChatHandler(db *gorm.DB, chatCache *cache.ChatCache) *ChatHandler {
	return &ChatHandler{db: db, cache: chatCache}
}

// ChatRequest 생성/수정 요청 바디
type ChatRequest struct {
	Title    string            `json:"title"`
	Elements []element.Element `json:"elements"`
}

// ChatResponse 단건 응답
type ChatResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Elements  []element.Element `json:"elements"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func toChatResponse(chat *model.Chat) (*ChatResponse, error) {
	elements := []element.Element{}
	if chat.Elements != "" {
		if err := json.Unmarshal([]byte(chat.Elements), &elements); err != nil {
			return nil, err
		}
	}
	return &ChatResponse{
		ID:        chat.ID,
		Title:     chat.Title,
		Elements:  elements,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}, nil
}

// validateChatRequest 제목 + 요소 검증
func validateChatRequest(req *ChatRequest, titleRequired bool) []element.FieldError {
	var details []element.FieldError

	title := strings.TrimSpace(req.Title)
	if titleRequired && title == "" {
		details = append(details, element.FieldError{Field: "title", Message: "title is required"})
	}
	if len(title) > maxTitleLen {
		details = append(details, element.FieldError{Field: "title", Message: "title must be at most 200 characters"})
	}

	details = append(details, element.ValidateDocument(req.Elements)...)
	return details
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// postgres 23505 / sqlite UNIQUE 제약 메시지 폴백
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// CreateChat 새 문서 생성
func (h *ChatHandler) CreateChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if details := validateChatRequest(&req, true); len(details) > 0 {
		return respondValidationError(c, details)
	}

	if req.Elements == nil {
		req.Elements = []element.Element{}
	}
	elementsJSON, err := json.Marshal(req.Elements)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid elements")
	}

	chat := model.Chat{
		ID:       model.NewChatID(),
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		Elements: string(elementsJSON),
	}

	if err := h.db.Create(&chat).Error; err != nil {
		if isDuplicateKeyError(err) {
			return respondError(c, fiber.StatusConflict, "chat already exists")
		}
		log.Printf("❌ Failed to create chat: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "failed to create chat")
	}

	resp, err := toChatResponse(&chat)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "failed to serialize chat")
	}
	return respondCreated(c, resp)
}

// ListChats 내 문서 목록 (페이지네이션 + 제목 검색)
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	page := c.QueryInt("page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	search := strings.TrimSpace(c.Query("search"))

	query := h.db.Model(&model.Chat{}).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("❌ Failed to count chats: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "failed to list chats")
	}

	var chats []model.Chat
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&chats).Error; err != nil {
		log.Printf("❌ Failed to list chats: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "failed to list chats")
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for i := range chats {
		resp, err := toChatResponse(&chats[i])
		if err != nil {
			log.Printf("❌ Failed to serialize chat %s: %v", chats[i].ID, err)
			return respondError(c, fiber.StatusInternalServerError, "failed to list chats")
		}
		responses = append(responses, resp)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return respondOK(c, fiber.Map{
		"data":       responses,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	})
}

// findOwnedChat 소유자 스코프로 조회. 미소유 문서는 존재 여부를 숨기고 404를 낸다.
func (h *ChatHandler) findOwnedChat(chatID string, userID int64) (*model.Chat, error) {
	var chat model.Chat
	err := h.db.Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetChat 단건 조회
func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	chatID := c.Params("id")
	if !model.ValidChatID(chatID) {
		return respondError(c, fiber.StatusBadRequest, "invalid chat id")
	}

	// 소유자 확인은 항상 DB를 거친다. 캐시는 역직렬화된 본문만 아낀다.
	chat, err := h.findOwnedChat(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "chat not found")
		}
		log.Printf("❌ Failed to get chat %s: %v", chatID, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to get chat")
	}

	if cached, err := h.cache.GetChat(c.UserContext(), chatID); err == nil {
		var resp ChatResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return respondOK(c, &resp)
		}
	}

	resp, err := toChatResponse(chat)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "failed to serialize chat")
	}

	if body, err := json.Marshal(resp); err == nil {
		h.cache.SetChat(c.UserContext(), chatID, string(body))
	}

	return respondOK(c, resp)
}

// UpdateChat 제목/요소 수정
func (h *ChatHandler) UpdateChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	chatID := c.Params("id")
	if !model.ValidChatID(chatID) {
		return respondError(c, fiber.StatusBadRequest, "invalid chat id")
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if details := validateChatRequest(&req, false); len(details) > 0 {
		return respondValidationError(c, details)
	}

	chat, err := h.findOwnedChat(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "chat not found")
		}
		log.Printf("❌ Failed to get chat %s: %v", chatID, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to update chat")
	}

	updates := map[string]interface{}{}
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if req.Elements != nil {
		elementsJSON, err := json.Marshal(req.Elements)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid elements")
		}
		updates["elements"] = string(elementsJSON)
	}

	if len(updates) > 0 {
		if err := h.db.Model(chat).Updates(updates).Error; err != nil {
			log.Printf("❌ Failed to update chat %s: %v", chatID, err)
			return respondError(c, fiber.StatusInternalServerError, "failed to update chat")
		}
		h.cache.Invalidate(c.UserContext(), chatID)
	}

	resp, err := toChatResponse(chat)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "failed to serialize chat")
	}
	return respondOK(c, resp)
}

// SaveElements 요소 배열 전체 교체 (last-write-wins)
func (h *ChatHandler) SaveElements(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	chatID := c.Params("id")
	if !model.ValidChatID(chatID) {
		return respondError(c, fiber.StatusBadRequest, "invalid chat id")
	}

	var req struct {
		Elements []element.Element `json:"elements"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if req.Elements == nil {
		return respondValidationError(c, []element.FieldError{
			{Field: "elements", Message: "elements is required"},
		})
	}

	if details := element.ValidateDocument(req.Elements); len(details) > 0 {
		return respondValidationError(c, details)
	}

	chat, err := h.findOwnedChat(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "chat not found")
		}
		log.Printf("❌ Failed to get chat %s: %v", chatID, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to save elements")
	}

	elementsJSON, err := json.Marshal(req.Elements)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid elements")
	}

	if err := h.db.Model(chat).Update("elements", string(elementsJSON)).Error; err != nil {
		log.Printf("❌ Failed to save elements for chat %s: %v", chatID, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to save elements")
	}
	h.cache.Invalidate(c.UserContext(), chatID)

	chat.Elements = string(elementsJSON)
	resp, err := toChatResponse(chat)
	if err != nil {
		log.Printf("❌ Failed to serialize chat %s: %v", chatID, err)
		return respondError(c, fiber.StatusInternalServerError, "failed to save elements")
	}
	return respondOK(c, resp)
}

// DeleteChat 문서 삭제
func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int64)

	chatID := c.Params("id")
	if !model.ValidChatID(chatID) {
		return respondError(c, fiber.StatusBadRequest, "invalid chat id")
	}

	result := h.db.Where("id = ? AND user_id = ?", chatID, userID).Delete(&model.Chat{})
	if result.Error != nil {
		log.Printf("❌ Failed to delete chat %s: %v", chatID, result.Error)
		return respondError(c, fiber.StatusInternalServerError, "failed to delete chat")
	}
	if result.RowsAffected == 0 {
		return respondError(c, fiber.StatusNotFound, "chat not found")
	}

	h.cache.Invalidate(c.UserContext(), chatID)
	return respondMessage(c, "chat deleted")
}
