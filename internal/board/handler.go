package board

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/pin"
)

// CreateBoard POST /api/boards
func CreateBoard(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Name      string `json:"name"`
		IsPrivate bool   `json:"isPrivate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom du board requis"})
		return
	}

	newBoard := Board{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Title:     strings.TrimSpace(input.Name),
		IsPrivate: input.IsPrivate,
		UserID:    userID,
	}

	if err := database.DB.Create(&newBoard).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du board"})
		logs.LogJSON("ERROR", "Board creation error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"board": newBoard})
	logs.LogJSON("INFO", "Board created", map[string]interface{}{
		"route":   route,
		"userID":  userID,
		"boardID": newBoard.ID,
	})
}

// GetBoards GET /api/boards : boards de l'utilisateur avec compteur et miniature
func GetBoards(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var boards []Board
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des boards"})
		logs.LogJSON("ERROR", "Error fetching boards", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	response := make([]gin.H, 0, len(boards))
	for _, b := range boards {
		var pinCount int64
		database.DB.Table("pins").Where("board_id = ?", b.ID).Count(&pinCount)

		// Dernier pin ajouté, pour la miniature
		var cover pin.Pin
		hasCover := database.DB.
			Where("board_id = ?", b.ID).
			Order("created_at DESC, id DESC").
			First(&cover).Error == nil

		entry := gin.H{
			"id":         b.ID,
			"created_at": b.CreatedAt,
			"title":      b.Title,
			"is_private": b.IsPrivate,
			"pin_count":  pinCount,
		}
		if hasCover {
			entry["cover_image_url"] = cover.ImageURL
		}
		response = append(response, entry)
	}

	c.JSON(http.StatusOK, gin.H{"boards": response})
}

// GetBoard GET /api/boards/:boardId
func GetBoard(c *gin.Context) {
	boardID := c.Param("boardId")
	userID := c.GetString("user_id")

	var b Board
	if err := database.DB.First(&b, "id = ?", boardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board non trouvé"})
		return
	}

	// Un board privé n'est visible que par son propriétaire
	if b.IsPrivate && b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès non autorisé à ce board"})
		return
	}

	var pins []pin.Pin
	if err := database.DB.
		Where("board_id = ?", boardID).
		Order("created_at DESC, id DESC").
		Find(&pins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins"})
		return
	}

	urls := pin.SignImageURLs(pins)
	pinList := make([]gin.H, 0, len(pins))
	for i, p := range pins {
		pinList = append(pinList, gin.H{
			"id":          p.ID,
			"created_at":  p.CreatedAt,
			"user_id":     p.UserID,
			"title":       p.Title,
			"description": p.Description,
			"image_url":   urls[i],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"board": gin.H{
			"id":         b.ID,
			"created_at": b.CreatedAt,
			"title":      b.Title,
			"is_private": b.IsPrivate,
			"user_id":    b.UserID,
			"pins":       pinList,
		},
	})
}

// UpdateBoard PATCH /api/boards/:boardId
func UpdateBoard(c *gin.Context) {
	route := c.FullPath()
	boardID := c.Param("boardId")
	userID := c.GetString("user_id")

	var b Board
	if err := database.DB.First(&b, "id = ?", boardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board non trouvé"})
		return
	}

	if b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas propriétaire de ce board"})
		return
	}

	var input struct {
		Title     *string `json:"title"`
		IsPrivate *bool   `json:"isPrivate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		b.Title = strings.TrimSpace(*input.Title)
	}
	if input.IsPrivate != nil {
		b.IsPrivate = *input.IsPrivate
	}

	if err := database.DB.Save(&b).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du board"})
		logs.LogJSON("ERROR", "Board update error", map[string]interface{}{
			"error":   err.Error(),
			"route":   route,
			"userID":  userID,
			"boardID": boardID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"board": b})
}

// DeleteBoard DELETE /api/boards/:boardId
func DeleteBoard(c *gin.Context) {
	route := c.FullPath()
	boardID := c.Param("boardId")
	userID := c.GetString("user_id")

	var b Board
	if err := database.DB.First(&b, "id = ?", boardID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board non trouvé"})
		return
	}

	if b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas propriétaire de ce board"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Les pins du board redeviennent sans board, ils ne sont pas supprimés
		if err := tx.Table("pins").Where("board_id = ?", boardID).
			Update("board_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du board"})
		logs.LogJSON("ERROR", "Board deletion error", map[string]interface{}{
			"error":   err.Error(),
			"route":   route,
			"userID":  userID,
			"boardID": boardID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board supprimé avec succès"})
	logs.LogJSON("INFO", "Board deleted", map[string]interface{}{
		"route":   route,
		"userID":  userID,
		"boardID": boardID,
	})
}

// AttachPin POST /api/boards/:boardId : enregistre un pin dans un board.
// Un pin n'appartient qu'à un seul board : l'attacher ailleurs le déplace.
func AttachPin(c *gin.Context) {
	route := c.FullPath()
	boardID := c.Param("boardId")
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		PinID string `json:"pinId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.PinID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pin ID requis"})
		return
	}

	var b Board
	if err := database.DB.First(&b, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board non trouvé"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}

	if b.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas propriétaire de ce board"})
		return
	}

	var p pin.Pin
	if err := database.DB.First(&p, "id = ?", input.PinID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	if p.BoardID != nil && *p.BoardID == boardID {
		c.JSON(http.StatusConflict, gin.H{"error": "Pin déjà présent dans ce board"})
		return
	}

	if err := database.DB.Model(&p).Update("board_id", boardID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'ajout au board"})
		logs.LogJSON("ERROR", "Board attach error", map[string]interface{}{
			"error":   err.Error(),
			"route":   route,
			"userID":  userID,
			"boardID": boardID,
			"pinID":   input.PinID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pin ajouté au board"})
	logs.LogJSON("INFO", "Pin attached to board", map[string]interface{}{
		"route":   route,
		"userID":  userID,
		"boardID": boardID,
		"pinID":   input.PinID,
	})
}
