package model

import (
	"time"
)

// User 사용자
type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Nickname   string    `gorm:"type:varchar(100);not null" json:"nickname"`
	ProfileImg *string   `gorm:"type:text" json:"profile_img,omitempty"`
	Provider   *string   `gorm:"type:varchar(50)" json:"provider,omitempty"`
	ProviderID *string   `gorm:"type:varchar(255)" json:"provider_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Chats []Chat `gorm:"foreignKey:UserID" json:"chats,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Chat 저장된 캔버스 문서
// Elements는 요소 배열 전체를 JSONB로 보관한다. 편집 중인 문서는 분리된 사본이고
// 저장/로드 시점에만 여기와 동기화된다. 동시 저장은 last-write-wins (버전 체크 없음).
type Chat struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_chats_user_created" json:"user_id"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	Elements  string    `gorm:"type:jsonb;not null;default:'[]'" json:"elements"` // JSON array of elements
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_chats_user_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Chat) TableName() string {
	return "chats"
}
