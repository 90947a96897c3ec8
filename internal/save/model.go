package save

import (
	"time"
)

type Save struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_saves_user_pin"`
	PinID     string    `json:"pin_id" gorm:"uniqueIndex:idx_saves_user_pin"`
}

func (Save) TableName() string {
	return "saves"
}
