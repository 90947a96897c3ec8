package follow

import (
	"time"
)

type Follow struct {
	ID          string    `gorm:"primaryKey"` // UUID
	CreatedAt   time.Time
	FollowerID  string `gorm:"uniqueIndex:idx_follows_pair"`
	FollowingID string `gorm:"uniqueIndex:idx_follows_pair"`
}

func (Follow) TableName() string {
	return "follows"
}
