package comment

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
)

const maxCommentLength = 500

// GetComments GET /api/pins/:id/comments
func GetComments(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")

	var pinCount int64
	if err := database.DB.Table("pins").Where("id = ?", pinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	var comments []Comment
	if err := database.DB.
		Where("pin_id = ?", pinID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des commentaires"})
		logs.LogJSON("ERROR", "Error fetching comments", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": pinID,
		})
		return
	}

	// Auteurs de la page, récupérés en une seule requête
	ids := make([]string, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.UserID)
	}

	type author struct {
		ID    string
		Name  string
		Image string
	}
	authors := map[string]author{}
	if len(ids) > 0 {
		var rows []author
		if err := database.DB.Table("users").Select("id", "name", "image").
			Where("id IN ?", ids).Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
			return
		}
		for _, r := range rows {
			authors[r.ID] = r
		}
	}

	response := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		a := authors[cm.UserID]
		response = append(response, gin.H{
			"id":         cm.ID,
			"created_at": cm.CreatedAt,
			"text":       cm.Text,
			"pin_id":     cm.PinID,
			"user": gin.H{
				"id":    a.ID,
				"name":  a.Name,
				"image": a.Image,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"comments": response})
}

// CreateComment POST /api/pins/:id/comments
func CreateComment(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	text := strings.TrimSpace(input.Content)
	if text == "" || len(text) > maxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Commentaire invalide (1 à 500 caractères)"})
		return
	}

	var pinCount int64
	if err := database.DB.Table("pins").Where("id = ?", pinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	comment := Comment{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Text:      text,
		PinID:     pinID,
		UserID:    userID,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du commentaire"})
		logs.LogJSON("ERROR", "Comment creation error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commentaire ajouté avec succès",
		"comment": comment,
	})
	logs.LogJSON("INFO", "Comment created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"pinID":  pinID,
	})
}

// DeleteComment DELETE /api/comments/:id
func DeleteComment(c *gin.Context) {
	route := c.FullPath()
	commentID := c.Param("id")
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var comment Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commentaire non trouvé"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas autorisé à supprimer ce commentaire"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du commentaire"})
		logs.LogJSON("ERROR", "Comment deletion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commentaire supprimé avec succès"})
	logs.LogJSON("INFO", "Comment deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}
