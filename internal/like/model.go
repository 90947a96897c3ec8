package like

import (
	"time"
)

type Like struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_likes_user_pin"`
	PinID     string    `json:"pin_id" gorm:"uniqueIndex:idx_likes_user_pin"`
}

type LikeResponse struct {
	PinID     string `json:"pin_id"`
	LikeCount int64  `json:"count"`
	IsLiked   bool   `json:"liked"`
}

func (Like) TableName() string {
	return "likes"
}
