package models

import "time"

// Preference stores user preferences as key-value pairs.
type Preference struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Preference) TableName() string {
	return "preferences"
}

// Common preference keys.
const (
	PreferenceSearchQuery = "search_query"
)
