package models

// Favorite represents a saved departure→destination route.
// The natural key is the (departure, destination) code pair; ID is a
// storage surrogate and carries no meaning outside the database.
type Favorite struct {
	ID              int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartureCode   string `gorm:"column:departure_code;size:3;not null;uniqueIndex:idx_favorite_route" json:"departure_code"`
	DestinationCode string `gorm:"column:destination_code;size:3;not null;uniqueIndex:idx_favorite_route" json:"destination_code"`
}

// TableName specifies the table name for GORM.
func (Favorite) TableName() string {
	return "favorite"
}

// RouteKey is the natural key of a favorite route.
type RouteKey struct {
	Departure   string
	Destination string
}

// Key returns the favorite's natural key.
func (f Favorite) Key() RouteKey {
	return RouteKey{Departure: f.DepartureCode, Destination: f.DestinationCode}
}

// RouteSet builds a membership set over the favorites' natural keys,
// used to answer "is this candidate route already a favorite" in O(1).
func RouteSet(favorites []Favorite) map[RouteKey]struct{} {
	set := make(map[RouteKey]struct{}, len(favorites))
	for _, f := range favorites {
		set[f.Key()] = struct{}{}
	}
	return set
}
