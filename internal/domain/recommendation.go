package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// IntArray stores a list of product IDs as a JSON array column.
type IntArray []int

// Value implements the driver.Valuer interface for database serialization.
// Parameters: none.
// Returns:
//   - driver.Value: JSON-encoded string representation of the slice.
//   - error: non-nil if marshaling fails.
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]int(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
// Parameters:
//   - value: raw database value to decode.
//
// Returns:
//   - error: non-nil if decoding fails or the type is unexpected.
func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = IntArray{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan IntArray")
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return err
	}
	if ids == nil {
		ids = []int{}
	}
	*a = IntArray(ids)
	return nil
}

// Recommendation is one served prediction. Rows are appended, never updated.
type Recommendation struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	InputProducts       IntArray  `gorm:"type:text;not null" json:"input_products"`
	RecommendedProducts IntArray  `gorm:"type:text;not null" json:"recommended_products"`
	CreatedAt           time.Time `gorm:"index:idx_recommendations_created_at" json:"created_at"`
}

// TableName returns the database table name for Recommendation.
func (Recommendation) TableName() string {
	return "product_recommendations"
}
