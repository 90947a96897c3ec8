package save

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
)

// Toggle bascule l'état d'enregistrement d'un pin pour un utilisateur.
// L'insertion passe par ON CONFLICT DO NOTHING sur l'index unique
// (user_id, pin_id) : deux toggles concurrents ne peuvent jamais produire
// plus d'une ligne pour la même paire.
func Toggle(userID, pinID string) (bool, error) {
	saved := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pin_id"}},
			DoNothing: true,
		}).Create(&Save{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			UserID:    userID,
			PinID:     pinID,
		})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			// La ligne n'existait pas : le pin est maintenant enregistré
			saved = true
			return nil
		}

		// La ligne existait déjà : on la supprime (désenregistrement)
		return tx.Where("user_id = ? AND pin_id = ?", userID, pinID).Delete(&Save{}).Error
	})

	return saved, err
}

// IsSaved indique si l'utilisateur a enregistré ce pin
func IsSaved(userID, pinID string) (bool, error) {
	var count int64
	if err := database.DB.Model(&Save{}).
		Where("user_id = ? AND pin_id = ?", userID, pinID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
