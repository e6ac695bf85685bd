// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. The ID is assigned once in BeforeCreate and
// never mutated afterwards.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// StringList is a JSON-serialized string slice column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Specification is one key/value technical attribute of a product.
type Specification struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SpecificationList []Specification

func (l SpecificationList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SpecificationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Documentation is a typed link to a product document.
type Documentation struct {
	Type DocType `json:"type"`
	URL  string  `json:"url"`
}

type DocumentationList []Documentation

func (l DocumentationList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *DocumentationList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Compliance is a certification or standard label the product satisfies.
type Compliance struct {
	Name string `json:"name"`
}

type ComplianceList []Compliance

func (l ComplianceList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ComplianceList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, dest)
}
