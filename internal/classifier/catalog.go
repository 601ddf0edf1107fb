package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"finbot/internal/domain"
)

type catalogFile struct {
	Intents []domain.Intent `json:"intents"`
}

// LoadCatalog reads the static intent catalog from a JSON file
func LoadCatalog(path string) ([]domain.Intent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intent catalog: %w", err)
	}

	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse intent catalog: %w", err)
	}

	if len(catalog.Intents) == 0 {
		return nil, fmt.Errorf("intent catalog %s contains no intents", path)
	}

	return catalog.Intents, nil
}
