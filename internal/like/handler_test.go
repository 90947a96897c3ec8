package like

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/pin"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/testutils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLikeContext(t *testing.T, target, pinID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, target, nil)
	c.Params = gin.Params{{Key: "pinId", Value: pinID}}
	return c, w
}

func seedPin(t *testing.T, id string) {
	t.Helper()
	p := pin.Pin{
		ID:        id,
		CreatedAt: time.Now(),
		Title:     "Pin " + id,
		ImageURL:  "images/u2/" + id + ".jpg",
		UserID:    "u2",
	}
	assert.NoError(t, database.DB.Create(&p).Error)
}

func countLikes(t *testing.T, userID, pinID string) int64 {
	t.Helper()
	var count int64
	err := database.DB.Model(&Like{}).
		Where("user_id = ? AND pin_id = ?", userID, pinID).
		Count(&count).Error
	assert.NoError(t, err)
	return count
}

func TestToggleParity(t *testing.T) {
	testutils.SetupDB(t, &pin.Pin{}, &pin.Tag{}, &Like{})
	seedPin(t, "p1")

	liked, err := Toggle("u1", "p1")
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, countLikes(t, "u1", "p1"))

	liked, err = Toggle("u1", "p1")
	assert.NoError(t, err)
	assert.False(t, liked)
	assert.EqualValues(t, 0, countLikes(t, "u1", "p1"))

	liked, err = Toggle("u1", "p1")
	assert.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 1, countLikes(t, "u1", "p1"))
}

func TestToggleLikeHandler(t *testing.T) {
	testutils.SetupDB(t, &pin.Pin{}, &pin.Tag{}, &Like{})
	seedPin(t, "p1")

	// Non authentifié
	c, w := newLikeContext(t, "/api/likes/p1", "p1")
	ToggleLike(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Pin inexistant
	c, w = newLikeContext(t, "/api/likes/absent", "absent")
	c.Set("user_id", "u1")
	ToggleLike(c)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Premier toggle : liked=true
	c, w = newLikeContext(t, "/api/likes/p1", "p1")
	c.Set("user_id", "u1")
	ToggleLike(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]bool
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body["liked"])
}

func TestGetLikeStatusCounts(t *testing.T) {
	testutils.SetupDB(t, &pin.Pin{}, &pin.Tag{}, &Like{})
	seedPin(t, "p1")

	_, err := Toggle("u1", "p1")
	assert.NoError(t, err)
	_, err = Toggle("u2", "p1")
	assert.NoError(t, err)

	// Viewer connecté ayant liké
	status := getLikeStatus("p1", "u1")
	assert.Equal(t, "p1", status.PinID)
	assert.EqualValues(t, 2, status.LikeCount)
	assert.True(t, status.IsLiked)

	// Viewer connecté n'ayant pas liké
	status = getLikeStatus("p1", "u3")
	assert.EqualValues(t, 2, status.LikeCount)
	assert.False(t, status.IsLiked)

	// Viewer anonyme
	status = getLikeStatus("p1", "")
	assert.EqualValues(t, 2, status.LikeCount)
	assert.False(t, status.IsLiked)
}
