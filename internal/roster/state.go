package roster

import (
	"encoding/json"
	"os"
	"time"

	"ThrowSentinel/internal/model"
)

// LoadState reads the roster state from a JSON file. Returns a zero state if
// the file doesn't exist.
func LoadState(filePath string) (*model.RosterState, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.RosterState{}, nil
		}
		return nil, err
	}
	var state model.RosterState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the roster state to a JSON file.
func SaveState(filePath string, state *model.RosterState) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, data, 0644)
}
