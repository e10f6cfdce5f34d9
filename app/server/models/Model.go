package models

import "time"

// Model 类似 gorm.Model ，补上了 JSON 字段名，删除时直接移除记录而不是软删除
type Model struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
