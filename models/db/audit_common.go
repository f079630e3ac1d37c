package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"crewing-backend/models"
)

type EntityChanges struct {
	Description string         `json:"description"`
	Data        []FieldChanges `json:"data"`
}

type FieldChanges struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

func (j EntityChanges) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *EntityChanges) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// TokenList stores an ordered list of match tokens as a jsonb column.
type TokenList []models.MatchToken

func (j TokenList) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TokenList) Scan(value any) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// Codes extracts the stable codes, keeping order.
func (j TokenList) Codes() []models.MatchTokenCode {
	codes := make([]models.MatchTokenCode, 0, len(j))
	for _, t := range j {
		codes = append(codes, t.Code)
	}
	return codes
}

func (j TokenList) HasCode(code models.MatchTokenCode) bool {
	for _, t := range j {
		if t.Code == code {
			return true
		}
	}
	return false
}
