package save

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/pin"
)

// ToggleSave POST /api/saves
func ToggleSave(c *gin.Context) {
	route := c.FullPath()
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

	var pinCount int64
	if err := database.DB.Table("pins").Where("id = ?", input.PinID).Count(&pinCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Database error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  input.PinID,
		})
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	saved, err := Toggle(userID, input.PinID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'enregistrement"})
		logs.LogJSON("ERROR", "Save toggle error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  input.PinID,
		})
		return
	}

	message := "Enregistrement supprimé"
	if saved {
		message = "Pin enregistré"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
	logs.LogJSON("INFO", "Save toggled", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"pinID":  input.PinID,
		"saved":  saved,
	})
}

// GetSaveStatus GET /api/saves/:pinId
func GetSaveStatus(c *gin.Context) {
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
		return
	}
	if pinCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pin non trouvé"})
		return
	}

	saved, err := IsSaved(userID, pinID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogJSON("ERROR", "Save status error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"pinID":  pinID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// GetSavedPins GET /api/profile/saved-pins : pins enregistrés, paginés par curseur
func GetSavedPins(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	cursor := c.Query("cursor")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	query := database.DB.Model(&Save{}).Where("user_id = ?", userID)

	if cursor != "" {
		var cursorSave Save
		err := database.DB.Select("id", "created_at").
			First(&cursorSave, "id = ? AND user_id = ?", cursor, userID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"pins": []gin.H{}, "nextCursor": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
			return
		}

		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursorSave.CreatedAt, cursorSave.CreatedAt, cursorSave.ID,
		)
	}

	var saves []Save
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(pin.FeedLimit + 1).
		Find(&saves).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins enregistrés"})
		logs.LogJSON("ERROR", "Error fetching saved pins", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	var nextCursor *string
	if len(saves) > pin.FeedLimit {
		saves = saves[:pin.FeedLimit]
		last := saves[len(saves)-1].ID
		nextCursor = &last
	}

	pinIDs := make([]string, 0, len(saves))
	for _, s := range saves {
		pinIDs = append(pinIDs, s.PinID)
	}

	var pins []pin.Pin
	if len(pinIDs) > 0 {
		if err := database.DB.Where("id IN ?", pinIDs).Find(&pins).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des pins enregistrés"})
			return
		}
	}

	byID := make(map[string]pin.Pin, len(pins))
	for _, p := range pins {
		byID[p.ID] = p
	}

	ordered := make([]pin.Pin, 0, len(saves))
	savedAt := make(map[string]interface{}, len(saves))
	for _, s := range saves {
		if p, ok := byID[s.PinID]; ok {
			ordered = append(ordered, p)
			savedAt[p.ID] = s.CreatedAt
		}
	}

	urls := pin.SignImageURLs(ordered)

	response := make([]gin.H, 0, len(ordered))
	for i, p := range ordered {
		response = append(response, gin.H{
			"id":          p.ID,
			"created_at":  p.CreatedAt,
			"user_id":     p.UserID,
			"title":       p.Title,
			"description": p.Description,
			"image_url":   urls[i],
			"saved_at":    savedAt[p.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"pins":       response,
		"nextCursor": nextCursor,
	})
}
