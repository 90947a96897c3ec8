package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/pin"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/testutils"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	c.Request = httptest.NewRequest(method, target, reqBody)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

type feedResponse struct {
	Pins []struct {
		ID       string `json:"id"`
		ImageURL string `json:"image_url"`
		Saved    bool   `json:"saved"`
	} `json:"pins"`
	NextCursor *string `json:"nextCursor"`
}

// Scénario de bout en bout : création d'un pin, fil anonyme puis fil du
// viewer après enregistrement.
func TestFeedSavedAnnotation(t *testing.T) {
	testutils.SetupDB(t, &user.User{}, &pin.Pin{}, &pin.Tag{}, &Save{})

	u1 := user.User{ID: "u1", CreatedAt: time.Now(), Email: "u1@example.com", Name: "U1"}
	assert.NoError(t, database.DB.Create(&u1).Error)

	// Création du pin via le handler
	c, w := newTestContext(t, http.MethodPost, "/api/pins", gin.H{
		"title":    "Mon pin",
		"imageUrl": "uploads/abc.jpg",
	})
	c.Set("user_id", "u1")
	pin.CreatePin(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// La clé persistée reste la clé normalisée, jamais une URL signée
	var p pin.Pin
	assert.NoError(t, database.DB.First(&p, "user_id = ?", "u1").Error)
	assert.Equal(t, "images/uploads/abc.jpg", p.ImageURL)

	// Fil anonyme : saved=false
	c, w = newTestContext(t, http.MethodGet, "/api/pins", nil)
	pin.GetPins(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var feed feedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Len(t, feed.Pins, 1)
	assert.Equal(t, p.ID, feed.Pins[0].ID)
	assert.False(t, feed.Pins[0].Saved)

	// Enregistrement puis relecture du fil en tant que u1 : saved=true
	saved, err := Toggle("u1", p.ID)
	assert.NoError(t, err)
	assert.True(t, saved)

	c, w = newTestContext(t, http.MethodGet, "/api/pins", nil)
	c.Set("user_id", "u1")
	pin.GetPins(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	assert.Len(t, feed.Pins, 1)
	assert.True(t, feed.Pins[0].Saved)

	// Après lecture, la clé stockée n'a pas bougé
	var after pin.Pin
	assert.NoError(t, database.DB.First(&after, "id = ?", p.ID).Error)
	assert.Equal(t, "images/uploads/abc.jpg", after.ImageURL)
}

func TestToggleSaveHandlerValidation(t *testing.T) {
	testutils.SetupDB(t, &user.User{}, &pin.Pin{}, &pin.Tag{}, &Save{})

	// Non authentifié
	c, w := newTestContext(t, http.MethodPost, "/api/saves", gin.H{"pinId": "p1"})
	ToggleSave(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Pin ID manquant
	c, w = newTestContext(t, http.MethodPost, "/api/saves", gin.H{})
	c.Set("user_id", "u1")
	ToggleSave(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Pin inexistant
	c, w = newTestContext(t, http.MethodPost, "/api/saves", gin.H{"pinId": "absent"})
	c.Set("user_id", "u1")
	ToggleSave(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSavedPinsPagination(t *testing.T) {
	testutils.SetupDB(t, &user.User{}, &pin.Pin{}, &pin.Tag{}, &Save{})

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	const total = 25
	for i := 0; i < total; i++ {
		p := pin.Pin{
			ID:        fmt.Sprintf("pin-%03d", i),
			CreatedAt: base,
			Title:     fmt.Sprintf("Pin %d", i),
			ImageURL:  fmt.Sprintf("images/u2/%03d.jpg", i),
			UserID:    "u2",
		}
		assert.NoError(t, database.DB.Create(&p).Error)
		s := Save{
			ID:        fmt.Sprintf("save-%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UserID:    "u1",
			PinID:     p.ID,
		}
		assert.NoError(t, database.DB.Create(&s).Error)
	}

	c, w := newTestContext(t, http.MethodGet, "/api/profile/saved-pins", nil)
	c.Set("user_id", "u1")
	GetSavedPins(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var page1 feedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page1))
	assert.Len(t, page1.Pins, pin.FeedLimit)
	assert.NotNil(t, page1.NextCursor)

	c, w = newTestContext(t, http.MethodGet, "/api/profile/saved-pins?cursor="+*page1.NextCursor, nil)
	c.Set("user_id", "u1")
	GetSavedPins(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var page2 feedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page2))
	assert.Len(t, page2.Pins, total-pin.FeedLimit)
	assert.Nil(t, page2.NextCursor)

	// Aucun doublon entre les deux pages
	seen := map[string]bool{}
	for _, p := range append(page1.Pins, page2.Pins...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	assert.Len(t, seen, total)

	// Curseur inconnu : page vide, pagination terminée
	c, w = newTestContext(t, http.MethodGet, "/api/profile/saved-pins?cursor=inconnu", nil)
	c.Set("user_id", "u1")
	GetSavedPins(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var empty feedResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Empty(t, empty.Pins)
	assert.Nil(t, empty.NextCursor)
}
