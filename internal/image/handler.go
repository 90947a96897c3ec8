package image

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/storage"
)

// RequestUploadURL POST /api/images/upload
// Le client téléverse ensuite directement vers S3 avec l'URL signée,
// sans jamais passer par le serveur applicatif.
func RequestUploadURL(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var input struct {
		ContentType string `json:"contentType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ContentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de contenu requis"})
		return
	}

	if !strings.HasPrefix(input.ContentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de contenu invalide"})
		return
	}

	uploadURL, publicURL, key, err := storage.GenerateUploadURL(userID, input.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération de l'URL d'upload"})
		logs.LogJSON("ERROR", "Upload URL generation failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"publicUrl": publicURL,
		"key":       key,
	})
	logs.LogJSON("INFO", "Upload URL generated", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"key":    key,
	})
}
