package follow

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/user"
	"github.com/gin-gonic/gin"
)

// FollowUser POST /api/follow
func FollowUser(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")

	var input struct {
		FollowingID string `json:"followingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FollowingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Utilisateur à suivre requis"})
		return
	}
	followingID := input.FollowingID

	if followerID == followingID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de se suivre soi-même"})
		logs.LogJSON("WARN", "Impossible to follow yourself", map[string]interface{}{
			"route":  route,
			"userID": followerID,
		})
		return
	}

	var userCount int64
	if err := database.DB.Model(&user.User{}).Where("id = ?", followingID).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if userCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var existing Follow
	if err := database.DB.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Déjà suivi"})
		logs.LogJSON("WARN", "Already followed", map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followingID : %s", followingID),
		})
		return
	}

	newFollow := Follow{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		FollowerID:  followerID,
		FollowingID: followingID,
	}

	if err := database.DB.Create(&newFollow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout du follow"})
		logs.LogJSON("ERROR", "Error adding follow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followingID : %s", followingID),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Utilisateur suivi"})
	logs.LogJSON("INFO", "Followed user", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("followingID : %s", followingID),
	})
}

// UnfollowUser DELETE /api/follow
func UnfollowUser(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")

	var input struct {
		FollowingID string `json:"followingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FollowingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Utilisateur à ne plus suivre requis"})
		return
	}
	followingID := input.FollowingID

	if err := database.DB.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&Follow{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur unfollow"})
		logs.LogJSON("ERROR", "Error unfollow", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followingID : %s", followingID),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur unfollow"})
	logs.LogJSON("INFO", "User unfollow", map[string]interface{}{
		"route":  route,
		"userID": followerID,
		"extra":  fmt.Sprintf("followingID : %s", followingID),
	})
}

// GetFollowing GET /api/following
func GetFollowing(c *gin.Context) {
	route := c.FullPath()
	followerID := c.GetString("user_id")

	var follows []Follow
	if err := database.DB.
		Where("follower_id = ?", followerID).
		Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des suivis"})
		logs.LogJSON("ERROR", "Error retrieving followed users", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": followerID,
		})
		return
	}

	var ids []string
	for _, f := range follows {
		ids = append(ids, f.FollowingID)
	}

	var usersFollowed []user.User
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Find(&usersFollowed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs suivis"})
			return
		}
	}

	response := make([]gin.H, 0, len(usersFollowed))
	for _, u := range usersFollowed {
		response = append(response, gin.H{
			"id":    u.ID,
			"name":  u.Name,
			"image": u.Image,
		})
	}

	c.JSON(http.StatusOK, gin.H{"following": response})
	logs.LogJSON("INFO", "Recovering the list of users followed", map[string]interface{}{
		"route":  route,
		"userID": followerID,
	})
}

// GetFollowers GET /api/followers/:id
func GetFollowers(c *gin.Context) {
	route := c.FullPath()
	userID := c.Param("id")

	var follows []Follow
	if err := database.DB.
		Where("following_id = ?", userID).
		Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération followers"})
		logs.LogJSON("ERROR", "Error recovery followers", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	var ids []string
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}

	var followers []user.User
	if len(ids) > 0 {
		if err := database.DB.Where("id IN ?", ids).Find(&followers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs followers"})
			return
		}
	}

	response := make([]gin.H, 0, len(followers))
	for _, u := range followers {
		response = append(response, gin.H{
			"id":    u.ID,
			"name":  u.Name,
			"image": u.Image,
		})
	}

	c.JSON(http.StatusOK, gin.H{"followers": response})
	logs.LogJSON("INFO", "Recovering the list of user followers", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}
