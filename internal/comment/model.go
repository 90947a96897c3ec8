package comment

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Text      string    `json:"text"`
	PinID     string    `json:"pin_id" gorm:"index"`
	UserID    string    `json:"user_id"`
}

func (Comment) TableName() string {
	return "comments"
}
