package image

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newUploadContext(t *testing.T, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/images/upload", bytes.NewBuffer(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRequestUploadURLValidation(t *testing.T) {
	// Non authentifié
	c, w := newUploadContext(t, gin.H{"contentType": "image/png"})
	RequestUploadURL(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Type de contenu manquant
	c, w = newUploadContext(t, gin.H{})
	c.Set("user_id", "u1")
	RequestUploadURL(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Seules les images sont acceptées
	tests := []struct {
		name        string
		contentType string
	}{
		{name: "PDF document", contentType: "application/pdf"},
		{name: "Plain text", contentType: "text/plain"},
		{name: "Video", contentType: "video/mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newUploadContext(t, gin.H{"contentType": tt.contentType})
			c.Set("user_id", "u1")
			RequestUploadURL(c)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Type de contenu invalide", body["error"])
		})
	}
}
