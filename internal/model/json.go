package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// RunRecord is the persisted form of a pipeline run
type RunRecord struct {
	ID              int64        `json:"id" db:"id"`
	Search          string       `json:"search" db:"search"`
	Parameters      JSONDocument `json:"parameters" db:"parameters"`
	SearchURL       string       `json:"search_url" db:"search_url"`
	Properties      JSONDocument `json:"properties" db:"properties"`
	Recommendations JSONDocument `json:"recommendations" db:"recommendations"`
	Summary         string       `json:"summary" db:"summary"`
	Report          string       `json:"report" db:"report"`
	TotalTokens     int          `json:"total_tokens" db:"total_tokens"`
	Took            int64        `json:"took_ms" db:"took_ms"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// JSONDocument represents an arbitrary JSON value stored in a jsonb column
type JSONDocument []byte

// MarshalDocument encodes v into a JSONDocument
func MarshalDocument(v interface{}) (JSONDocument, error) {
	if v == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSONDocument(bytes), nil
}

// Value implements driver.Valuer interface
func (d JSONDocument) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return []byte(d), nil
}

// Scan implements sql.Scanner interface
func (d *JSONDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*d = append((*d)[0:0], v...)
		return nil
	case string:
		*d = JSONDocument(v)
		return nil
	}
	return errors.New("unsupported type for JSONDocument")
}

// MarshalJSON implements json.Marshaler interface
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return []byte(d), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	*d = append((*d)[0:0], data...)
	return nil
}
