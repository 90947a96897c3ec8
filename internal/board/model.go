package board

import (
	"time"
)

type Board struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	IsPrivate bool      `json:"is_private"`
	UserID    string    `json:"user_id" gorm:"index"`
}

func (Board) TableName() string {
	return "boards"
}
