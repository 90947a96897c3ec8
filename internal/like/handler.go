package like

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
)

// Toggle bascule le like d'un pin. Même mécanique que le toggle
// d'enregistrement : insertion ON CONFLICT DO NOTHING sur l'index unique
// (user_id, pin_id), suppression si la ligne existait déjà.
func Toggle(userID, pinID string) (bool, error) {
	liked := false

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "pin_id"}},
			DoNothing: true,
		}).Create(&Like{
			ID:        uuid.New().String(),
			CreatedAt: time.Now(),
			UserID:    userID,
			PinID:     pinID,
		})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			liked = true
			return nil
		}

		return tx.Where("user_id = ? AND pin_id = ?", userID, pinID).Delete(&Like{}).Error
	})

	return liked, err
}

// ToggleLike POST /api/likes/:pinId
func ToggleLike(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	pinID := c.Param("pinId")

	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var pinCount int64
	if err := database.DB.Table("pins").Where("id = ?", pinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	liked, err := Toggle(userID, pinID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du like"})
		logs.LogJSON("ERROR", "Like toggle error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
	logs.LogJSON("INFO", "Like toggled", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"pinID":  pinID,
		"liked":  liked,
	})
}

// GetLikeStatus GET /api/likes/:pinId
func GetLikeStatus(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("pinId")
	userID := c.GetString("user_id") // peut être vide si non connecté

	var pinCount int64
	if err := database.DB.Table("pins").Where("id = ?", pinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	c.JSON(http.StatusOK, getLikeStatus(pinID, userID))
}

// getLikeStatus retourne le nombre de likes et l'état pour le viewer
func getLikeStatus(pinID, userID string) LikeResponse {
	var likeCount int64
	database.DB.Model(&Like{}).Where("pin_id = ?", pinID).Count(&likeCount)

	var isLiked bool
	if userID != "" {
		var count int64
		database.DB.Model(&Like{}).Where("user_id = ? AND pin_id = ?", userID, pinID).Count(&count)
		isLiked = count > 0
	}

	return LikeResponse{
		PinID:     pinID,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	}
}
