package handler

import (
	"github.com/gofiber/fiber/v2"

	"drawing-backend/internal/element"
)

// respondOK 성공 응답 (200)
func respondOK(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondCreated 생성 응답 (201)
func respondCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// respondMessage 데이터 없이 메시지만 반환
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// respondError 에러 응답
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// respondValidationError 필드별 검증 실패 응답 (400)
func respondValidationError(c *fiber.Ctx, details []element.FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "validation failed",
		"details": details,
	})
}
