package pin

import (
	"time"
)

type Pin struct {
	ID          string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"` // clé de stockage normalisée, jamais une URL signée
	UserID      string    `json:"user_id" gorm:"index"`
	BoardID     *string   `json:"board_id" gorm:"index"` // appartenance à un seul board
	Tags        []Tag     `json:"tags,omitempty" gorm:"many2many:pin_tags"`
}

type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey"` // UUID
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
}

func (Pin) TableName() string {
	return "pins"
}

func (Tag) TableName() string {
	return "tags"
}
