package user

import "time"

type User struct {
	ID             string `gorm:"primaryKey"` // UUID
	CreatedAt      time.Time
	Email          string  `gorm:"uniqueIndex"`
	HashedPassword *string // nul pour les comptes OAuth
	Name           string
	Image          string // clé de stockage, jamais une URL signée
	Birthdate      *time.Time
}
