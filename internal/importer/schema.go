package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// SessionImportSchema is the top-level JSON structure for session import.
type SessionImportSchema struct {
	Sessions []SessionImport `json:"sessions"`
}

// SessionImport is one logged session. Start and End accept any timestamp
// representation ParseInstant understands.
type SessionImport struct {
	ID               string `json:"id,omitempty"`
	TaskID           string `json:"task_id,omitempty"`
	Start            any    `json:"start"`
	End              any    `json:"end"`
	TimeSpentMinutes *int   `json:"time_spent_minutes,omitempty"`
	Quantity         *int   `json:"quantity,omitempty"`
	Note             string `json:"note,omitempty"`
}

// LoadSessionImport reads and parses a session import JSON file.
func LoadSessionImport(path string) (*SessionImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSessionImport(data)
}

// ParseSessionImport decodes an import document, keeping numeric timestamps
// as json.Number so epoch values keep full precision.
func ParseSessionImport(data []byte) (*SessionImportSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var schema SessionImportSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
