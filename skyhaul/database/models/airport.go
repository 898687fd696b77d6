package models

import "github.com/uptrace/bun"

// Airport is reference data seeded from the OurAirports CSV dump.
// Coordinates are nullable on purpose: some rows in the dump lack
// geodata, and offer generation must tolerate that.
type Airport struct {
	bun.BaseModel `bun:"table:airports,alias:ap"`

	Ident      string   `bun:"ident,pk"`
	Type       string   `bun:"type,notnull"`
	Name       string   `bun:"name,notnull"`
	IsoCountry string   `bun:"iso_country"`
	Latitude   *float64 `bun:"latitude"`
	Longitude  *float64 `bun:"longitude"`
}

// HasCoordinates reports whether both coordinates are present.
func (a *Airport) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}
