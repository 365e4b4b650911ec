package models

import "time"

// Base contains common columns for all tables. CreatedAt is set once by
// GORM at insert time and never updated afterwards.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
