package models

import "strings"

// Airport represents one row of the preloaded airport catalog.
// The catalog is read-only for the lifetime of the process.
type Airport struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	IATACode   string `gorm:"column:iata_code;size:3;index" json:"iata_code"`
	Passengers int64  `json:"passengers"`
}

// TableName specifies the table name for GORM.
func (Airport) TableName() string {
	return "airport"
}

// Matches reports whether the airport matches a search query.
// The match is a case-insensitive substring match against the airport
// name or its IATA code. An empty query matches everything.
func (a Airport) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.IATACode), q)
}

// AirportIndex builds a lookup from IATA code to airport, used to
// resolve a favorite's codes to display data in O(1).
func AirportIndex(airports []Airport) map[string]Airport {
	index := make(map[string]Airport, len(airports))
	for _, a := range airports {
		index[a.IATACode] = a
	}
	return index
}
