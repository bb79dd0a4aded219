package models

import "testing"

func TestAirportMatches(t *testing.T) {
	airport := Airport{ID: 1, Name: "Humberto Delgado Airport", IATACode: "LIS"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches everything", "", true},
		{"exact code", "LIS", true},
		{"lowercase code", "lis", true},
		{"partial code", "li", true},
		{"name substring", "delgado", true},
		{"name substring mixed case", "HuMbErTo", true},
		{"no match", "porto", false},
		{"code of another airport", "OPO", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := airport.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestAirportIndex(t *testing.T) {
	airports := []Airport{
		{ID: 1, Name: "Los Angeles International Airport", IATACode: "LAX"},
		{ID: 2, Name: "John F. Kennedy International Airport", IATACode: "JFK"},
	}

	index := AirportIndex(airports)

	if len(index) != 2 {
		t.Fatalf("index size = %d, want 2", len(index))
	}
	if index["LAX"].ID != 1 {
		t.Errorf("index[LAX].ID = %d, want 1", index["LAX"].ID)
	}
	if index["JFK"].Name != "John F. Kennedy International Airport" {
		t.Errorf("index[JFK].Name = %q", index["JFK"].Name)
	}
	if _, ok := index["OPO"]; ok {
		t.Error("index should not contain OPO")
	}
}

func TestRouteSet(t *testing.T) {
	favorites := []Favorite{
		{ID: 1, DepartureCode: "LAX", DestinationCode: "JFK"},
		{ID: 2, DepartureCode: "LIS", DestinationCode: "OPO"},
	}

	set := RouteSet(favorites)

	if len(set) != 2 {
		t.Fatalf("set size = %d, want 2", len(set))
	}
	if _, ok := set[RouteKey{Departure: "LAX", Destination: "JFK"}]; !ok {
		t.Error("set should contain LAX→JFK")
	}
	// Direction matters: the reverse route is a different key.
	if _, ok := set[RouteKey{Departure: "JFK", Destination: "LAX"}]; ok {
		t.Error("set should not contain JFK→LAX")
	}
}

func TestFavoriteKey(t *testing.T) {
	f := Favorite{ID: 7, DepartureCode: "LIS", DestinationCode: "OPO"}
	key := f.Key()
	if key.Departure != "LIS" || key.Destination != "OPO" {
		t.Errorf("Key() = %+v", key)
	}
}
