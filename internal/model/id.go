package model

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// chatIDPattern 24자리 hex (저장소 네이티브 object-id 인코딩)
var chatIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewChatID 새 채팅 ID 생성 (12바이트 랜덤 → 24자리 hex)
func NewChatID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 실패는 런타임이 망가진 상태
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// ValidChatID ID 형식 검증. 비즈니스 로직 도달 전에 걸러내는 용도.
func ValidChatID(id string) bool {
	return chatIDPattern.MatchString(id)
}
