package follow

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/user"
)

// GetFollowData GET /api/users/:id/follow-data : followers et suivis d'un utilisateur
func GetFollowData(c *gin.Context) {
	userID := c.Param("id")

	var userCount int64
	if err := database.DB.Model(&user.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if userCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	followers, err := usersByFollowColumn("following_id", userID, "follower_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération followers"})
		return
	}

	following, err := usersByFollowColumn("follower_id", userID, "following_id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des suivis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"following": following,
	})
}

func usersByFollowColumn(whereColumn, userID, pluckColumn string) ([]gin.H, error) {
	var ids []string
	if err := database.DB.Model(&Follow{}).
		Where(whereColumn+" = ?", userID).
		Pluck(pluckColumn, &ids).Error; err != nil {
		return nil, err
	}

	response := []gin.H{}
	if len(ids) == 0 {
		return response, nil
	}

	var users []user.User
	if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, u := range users {
		response = append(response, gin.H{
			"id":    u.ID,
			"name":  u.Name,
			"image": u.Image,
		})
	}
	return response, nil
}
