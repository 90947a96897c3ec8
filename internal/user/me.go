package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/storage"
)

// GetMe GET /api/profile
func GetMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	// Avatar signé pour affichage ; clé brute en cas d'échec
	avatarURL := u.Image
	if u.Image != "" {
		if signed, err := storage.GetImageURL(u.Image); err == nil {
			avatarURL = signed
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"image":      avatarURL,
			"birthdate":  u.Birthdate,
			"created_at": u.CreatedAt,
		},
	})
}

// UpdateMe PUT /api/profile
func UpdateMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	var u User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var input struct {
		Name      string `json:"name"`
		Image     string `json:"image"` // clé de stockage renvoyée par /api/images/upload
		Birthdate string `json:"birthdate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Name != "" {
		u.Name = input.Name
	}
	if input.Image != "" {
		newKey := storage.NormalizeKey(input.Image)

		// Suppression de l'ancien avatar si remplacé
		if u.Image != "" && u.Image != newKey {
			if err := storage.DeleteFromS3(u.Image); err != nil {
				logs.LogJSON("WARN", "Old avatar deletion failed", map[string]interface{}{
					"error":  err.Error(),
					"route":  route,
					"userID": userID,
				})
			}
		}
		u.Image = newKey
	}
	if input.Birthdate != "" {
		birthdate, err := time.Parse("2006-01-02", input.Birthdate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date de naissance invalide"})
			return
		}
		u.Birthdate = &birthdate
	}

	if err := database.DB.Save(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		logs.LogJSON("ERROR", "User update error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profil mis à jour",
		"user": gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"image":     u.Image,
			"birthdate": u.Birthdate,
		},
	})
	logs.LogJSON("INFO", "User updated successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}
