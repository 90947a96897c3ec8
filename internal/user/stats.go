package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/utils"
)

// GetUserStats GET /api/users/:id/stats
func GetUserStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.Param("id")
	viewerID := c.GetString("user_id")

	var userCount int64
	if err := database.DB.Model(&User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if userCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var followersCount, followingCount, pinCount int64
	if err := database.DB.Table("follows").Where("following_id = ?", userID).Count(&followersCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Error fetching user stats", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}
	if err := database.DB.Table("follows").Where("follower_id = ?", userID).Count(&followingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if err := database.DB.Table("pins").Where("user_id = ?", userID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}

	response := gin.H{
		"followersCount": followersCount,
		"followingCount": followingCount,
		"pinCount":       pinCount,
	}

	if viewerID != "" && viewerID != userID {
		isFollowing, err := utils.IsFollowing(viewerID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la vérification du suivi"})
			logs.LogJSON("ERROR", "Error during follow-up verification", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": viewerID,
			})
			return
		}
		response["isFollowing"] = isFollowing
	}

	c.JSON(http.StatusOK, response)
}
