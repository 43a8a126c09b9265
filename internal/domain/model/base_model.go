package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 共用時間欄位，DeletedAt 讓 gorm 使用軟刪除
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
