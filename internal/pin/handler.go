package pin

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/storage"
)

// GetPins GET /api/pins : fil paginé par curseur, trié du plus récent au plus ancien
func GetPins(c *gin.Context) {
	route := c.FullPath()
	cursor := c.Query("cursor")
	viewerID := c.GetString("user_id") // peut être vide si non connecté

	pins, nextCursor, err := ListPins(cursor, FeedLimit)
	if err != nil {
		if errors.Is(err, ErrInvalidCursor) {
			// Curseur inconnu : page vide et fin de pagination
			c.JSON(http.StatusOK, gin.H{"pins": []gin.H{}, "nextCursor": nil})
			logs.LogJSON("WARN", "Invalid feed cursor", map[string]interface{}{
				"route":  route,
				"cursor": cursor,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins"})
		logs.LogJSON("ERROR", "Error fetching pins", map[string]interface{}{
			"error": err.Error(),
			"route": route,
		})
		return
	}

	flags, err := SavedFlags(viewerID, pins)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins"})
		logs.LogJSON("ERROR", "Error fetching saved flags", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": viewerID,
		})
		return
	}

	urls := SignImageURLs(pins)

	response := make([]gin.H, 0, len(pins))
	for i, p := range pins {
		response = append(response, gin.H{
			"id":          p.ID,
			"created_at":  p.CreatedAt,
			"user_id":     p.UserID,
			"board_id":    p.BoardID,
			"title":       p.Title,
			"description": p.Description,
			"image_url":   urls[i],
			"saved":       flags[p.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"pins":       response,
		"nextCursor": nextCursor,
	})
}

// CreatePin POST /api/pins
func CreatePin(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ImageURL    string   `json:"imageUrl"`
		BoardID     string   `json:"boardId"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Title == "" || input.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titre et image requis"})
		return
	}

	var userCount int64
	if err := database.DB.Table("users").Where("id = ?", userID).Count(&userCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}
	if userCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	var boardID *string
	if input.BoardID != "" {
		var ownerID string
		row := database.DB.Table("boards").Select("user_id").Where("id = ?", input.BoardID).Row()
		if err := row.Scan(&ownerID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board non trouvé"})
			return
		}
		if ownerID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'êtes pas propriétaire de ce board"})
			return
		}
		boardID = &input.BoardID
	}

	newPin := Pin{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    storage.NormalizeKey(input.ImageURL),
		UserID:      userID,
		BoardID:     boardID,
	}

	// Tags : création si absent, association sinon
	for _, name := range input.Tags {
		if name == "" {
			continue
		}
		var tag Tag
		if err := database.DB.Where("name = ?", name).
			Attrs(Tag{ID: uuid.New().String(), CreatedAt: time.Now()}).
			FirstOrCreate(&tag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du tag"})
			logs.LogJSON("ERROR", "Tag creation error", map[string]interface{}{
				"error":  err.Error(),
				"route":  route,
				"userID": userID,
			})
			return
		}
		newPin.Tags = append(newPin.Tags, tag)
	}

	if err := database.DB.Create(&newPin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du pin"})
		logs.LogJSON("ERROR", "Pin creation error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	// URL d'affichage signée ; en cas d'échec on retourne la clé brute
	displayURL := newPin.ImageURL
	if signed, err := storage.GetImageURL(newPin.ImageURL); err == nil {
		displayURL = signed
	} else {
		logs.LogJSON("WARN", "Signed URL generation failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": newPin.ID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pin créé avec succès",
		"pin": gin.H{
			"id":          newPin.ID,
			"created_at":  newPin.CreatedAt,
			"user_id":     newPin.UserID,
			"board_id":    newPin.BoardID,
			"title":       newPin.Title,
			"description": newPin.Description,
			"image_url":   displayURL,
		},
	})
	logs.LogJSON("INFO", "Pin created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"pinID":  newPin.ID,
	})
}

// GetPinByID GET /api/pins/:id
func GetPinByID(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")
	viewerID := c.GetString("user_id")

	var p Pin
	if err := database.DB.Preload("Tags").First(&p, "id = ?", pinID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	var author struct {
		ID    string
		Name  string
		Image string
	}
	if err := database.DB.Table("users").Select("id", "name", "image").
		Where("id = ?", p.UserID).Scan(&author).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": pinID,
		})
		return
	}

	flags, err := SavedFlags(viewerID, []Pin{p})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}

	displayURL := p.ImageURL
	if signed, err := storage.GetImageURL(p.ImageURL); err == nil {
		displayURL = signed
	}

	c.JSON(http.StatusOK, gin.H{
		"pin": gin.H{
			"id":          p.ID,
			"created_at":  p.CreatedAt,
			"title":       p.Title,
			"description": p.Description,
			"image_url":   displayURL,
			"board_id":    p.BoardID,
			"tags":        p.Tags,
			"saved":       flags[p.ID],
			"user": gin.H{
				"id":    author.ID,
				"name":  author.Name,
				"image": author.Image,
			},
		},
	})
}

// DeletePin DELETE /api/pins/:id
func DeletePin(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var p Pin
	if err := database.DB.First(&p, "id = ? AND user_id = ?", pinID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé ou vous n'êtes pas autorisé à le supprimer"})
		return
	}

	if p.ImageURL != "" {
		if err := storage.DeleteFromS3(p.ImageURL); err != nil {
			// L'entrée en base est supprimée même si l'objet S3 reste orphelin
			logs.LogJSON("WARN", "S3 object deletion failed", map[string]interface{}{
				"error": err.Error(),
				"route": route,
				"pinID": pinID,
			})
		}
	}

	if err := database.DB.Delete(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du pin"})
		logs.LogJSON("ERROR", "Pin deletion error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pin supprimé avec succès"})
	logs.LogJSON("INFO", "Pin deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"pinID":  pinID,
	})
}

// GetRecommendedPins GET /api/pins/:id/recommended : pins récents hors pin courant
func GetRecommendedPins(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")

	var pinCount int64
	if err := database.DB.Model(&Pin{}).Where("id = ?", pinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	var pins []Pin
	if err := database.DB.
		Where("id <> ?", pinID).
		Order("created_at DESC, id DESC").
		Limit(10).
		Find(&pins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins"})
		logs.LogJSON("ERROR", "Error fetching recommended pins", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": pinID,
		})
		return
	}

	urls := SignImageURLs(pins)
	response := make([]gin.H, 0, len(pins))
	for i, p := range pins {
		response = append(response, gin.H{
			"id":        p.ID,
			"title":     p.Title,
			"image_url": urls[i],
			"user_id":   p.UserID,
		})
	}

	c.JSON(http.StatusOK, gin.H{"pins": response})
}

// GetSignedURL GET /api/pins/:id/signed-url
func GetSignedURL(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")

	var p Pin
	if err := database.DB.First(&p, "id = ?", pinID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	signed, err := storage.GetImageURL(p.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de l'URL signée"})
		logs.LogJSON("ERROR", "Signed URL generation failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": pinID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signed, "expires_in": int(storage.ReadURLExpiry.Seconds())})
}

// DownloadPin GET /api/pins/:id/download : proxy de téléchargement de l'image
func DownloadPin(c *gin.Context) {
	route := c.FullPath()
	pinID := c.Param("id")

	var p Pin
	if err := database.DB.First(&p, "id = ?", pinID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	signed, err := storage.GetImageURL(p.ImageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de l'URL signée"})
		logs.LogJSON("ERROR", "Signed URL generation failed", map[string]interface{}{
			"error": err.Error(),
			"route": route,
			"pinID": pinID,
		})
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().Get(signed)
	if err != nil || resp.IsError() {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors du téléchargement de l'image"})
		logs.LogJSON("ERROR", "Image download failed", map[string]interface{}{
			"route": route,
			"pinID": pinID,
		})
		return
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Title))
	c.Data(http.StatusOK, contentType, resp.Body())
}
