package pin

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Pinterest-Back/internal/database"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/logs"
	"github.com/ArthurDelaporte/Pinterest-Back/internal/storage"
)

// FeedLimit est la taille de page fixe du fil
const FeedLimit = 20

// ErrInvalidCursor signale un curseur qui ne correspond à aucun pin existant
var ErrInvalidCursor = errors.New("curseur invalide")

// ListPins retourne une page de pins triée par (created_at DESC, id DESC).
// Le curseur est l'id du dernier pin de la page précédente ; la page suivante
// reprend strictement après lui dans l'ordre total. Un curseur inconnu
// retourne ErrInvalidCursor.
func ListPins(cursor string, limit int) ([]Pin, *string, error) {
	if limit <= 0 {
		limit = FeedLimit
	}

	query := database.DB.Model(&Pin{})

	if cursor != "" {
		// Validation explicite du curseur : la ligne doit toujours exister
		var cursorPin Pin
		err := database.DB.Select("id", "created_at").First(&cursorPin, "id = ?", cursor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrInvalidCursor
			}
			return nil, nil, err
		}

		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursorPin.CreatedAt, cursorPin.CreatedAt, cursorPin.ID,
		)
	}

	// Une ligne de plus que la page pour savoir s'il existe une suite
	var pins []Pin
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&pins).Error; err != nil {
		return nil, nil, err
	}

	var nextCursor *string
	if len(pins) > limit {
		pins = pins[:limit]
		last := pins[len(pins)-1].ID
		nextCursor = &last
	}

	return pins, nextCursor, nil
}

// SavedFlags calcule en une seule requête l'état "enregistré" du viewer
// pour tous les pins de la page.
func SavedFlags(viewerID string, pins []Pin) (map[string]bool, error) {
	flags := make(map[string]bool, len(pins))
	if viewerID == "" || len(pins) == 0 {
		return flags, nil
	}

	ids := make([]string, 0, len(pins))
	for _, p := range pins {
		ids = append(ids, p.ID)
	}

	var savedIDs []string
	if err := database.DB.Table("saves").
		Where("user_id = ? AND pin_id IN ?", viewerID, ids).
		Pluck("pin_id", &savedIDs).Error; err != nil {
		return nil, err
	}

	for _, id := range savedIDs {
		flags[id] = true
	}
	return flags, nil
}

// SignImageURLs génère en parallèle les URLs signées d'affichage d'une page.
// En cas d'échec de signature, la clé brute est conservée pour ce pin.
func SignImageURLs(pins []Pin) []string {
	urls := make([]string, len(pins))

	var wg sync.WaitGroup
	for i := range pins {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			signed, err := storage.GetImageURL(pins[i].ImageURL)
			if err != nil {
				logs.LogJSON("WARN", "Signed URL generation failed", map[string]interface{}{
					"error": err.Error(),
					"pinID": pins[i].ID,
				})
				urls[i] = pins[i].ImageURL
				return
			}
			urls[i] = signed
		}(i)
	}
	wg.Wait()

	return urls
}
