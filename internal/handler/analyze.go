package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"drawing-backend/internal/ai"
)

// AnalyzeHandler 코드 분석 핸들러
type AnalyzeHandler struct {
	client *ai.Client
}

// NewAnalyzeHandler AnalyzeHandler 생성
func NewAnalyzeHandler(client *ai.Client) *AnalyzeHandler {
	return &AnalyzeHandler{client: client}
}

// AnalyzeRequest 코드 분석 요청
type AnalyzeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// AnalyzeCode 코드 실행 결과 예측 + 설명 반환
// 분석 실패도 성공 응답으로 내려간다. 실패 내용은 output/explanation에 담긴다.
func (h *AnalyzeHandler) AnalyzeCode(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid request body")
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "javascript"
	}

	result := h.client.AnalyzeCode(c.UserContext(), req.Code, language)

	return respondOK(c, result)
}
