package pin

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/testutils"
)

// saveRow reproduit la table saves sans dépendre du package save
type saveRow struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    string
	PinID     string
}

func (saveRow) TableName() string {
	return "saves"
}

func seedPins(t *testing.T, count int) []Pin {
	t.Helper()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	pins := make([]Pin, 0, count)
	for i := 0; i < count; i++ {
		p := Pin{
			ID: fmt.Sprintf("pin-%03d", i),
			// Un timestamp partagé par paire pour exercer le départage par id
			CreatedAt: base.Add(time.Duration(i/2) * time.Minute),
			UpdatedAt: base,
			Title:     fmt.Sprintf("Pin %d", i),
			ImageURL:  fmt.Sprintf("images/u1/photo-%03d.jpg", i),
			UserID:    "u1",
		}
		if err := database.DB.Create(&p).Error; err != nil {
			t.Fatalf("seed pin: %v", err)
		}
		pins = append(pins, p)
	}
	return pins
}

func TestListPinsPaginationTotality(t *testing.T) {
	testutils.SetupDB(t, &Pin{}, &Tag{})

	const total = 45
	seedPins(t, total)

	seen := map[string]int{}
	var ordered []Pin

	cursor := ""
	pages := 0
	for {
		pins, nextCursor, err := ListPins(cursor, FeedLimit)
		assert.NoError(t, err)
		pages++

		for _, p := range pins {
			seen[p.ID]++
			ordered = append(ordered, p)
		}

		if nextCursor == nil {
			assert.LessOrEqual(t, len(pins), FeedLimit)
			break
		}
		assert.Len(t, pins, FeedLimit)
		cursor = *nextCursor
	}

	// Chaque pin est énuméré exactement une fois
	assert.Equal(t, 3, pages)
	assert.Len(t, seen, total)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "pin %s énuméré %d fois", id, n)
	}

	// Ordre total (created_at DESC, id DESC), y compris sur timestamps égaux
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.CreatedAt.Equal(cur.CreatedAt) {
			assert.Greater(t, prev.ID, cur.ID)
		} else {
			assert.True(t, prev.CreatedAt.After(cur.CreatedAt))
		}
	}
}

func TestListPinsInvalidCursor(t *testing.T) {
	testutils.SetupDB(t, &Pin{}, &Tag{})
	seedPins(t, 5)

	pins, nextCursor, err := ListPins("pin-inexistant", FeedLimit)
	assert.ErrorIs(t, err, ErrInvalidCursor)
	assert.Nil(t, pins)
	assert.Nil(t, nextCursor)
}

func TestListPinsLastPageHasNoCursor(t *testing.T) {
	testutils.SetupDB(t, &Pin{}, &Tag{})
	seedPins(t, FeedLimit)

	pins, nextCursor, err := ListPins("", FeedLimit)
	assert.NoError(t, err)
	assert.Len(t, pins, FeedLimit)
	assert.Nil(t, nextCursor)
}

func TestSavedFlagsBatched(t *testing.T) {
	testutils.SetupDB(t, &Pin{}, &Tag{}, &saveRow{})
	pins := seedPins(t, 6)

	for _, p := range []Pin{pins[0], pins[3]} {
		err := database.DB.Create(&saveRow{
			ID:        "save-" + p.ID,
			CreatedAt: time.Now(),
			UserID:    "viewer",
			PinID:     p.ID,
		}).Error
		assert.NoError(t, err)
	}

	flags, err := SavedFlags("viewer", pins)
	assert.NoError(t, err)
	assert.True(t, flags[pins[0].ID])
	assert.True(t, flags[pins[3].ID])
	assert.False(t, flags[pins[1].ID])
	assert.False(t, flags[pins[5].ID])

	// Sans viewer, aucun flag
	flags, err = SavedFlags("", pins)
	assert.NoError(t, err)
	assert.Empty(t, flags)
}

func TestSignImageURLsFallsBackToRawKey(t *testing.T) {
	testutils.SetupDB(t, &Pin{}, &Tag{})
	pins := seedPins(t, 3)

	// Sans client S3 initialisé, la clé brute est conservée
	urls := SignImageURLs(pins)
	assert.Len(t, urls, len(pins))
	for i, p := range pins {
		assert.Equal(t, p.ImageURL, urls[i])
	}
}
