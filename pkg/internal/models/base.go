package models

import "time"

// BaseModel is embedded by every persisted entity. Rows are removed
// physically, categories included, so no soft-delete column here.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
