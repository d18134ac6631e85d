package models

// DefaultPadawanLimit is how many candidates a Jedi may mentor at once.
const DefaultPadawanLimit = 3

type Jedi struct {
	ID           int64  `bson:"_id" json:"id" db:"id"`
	Name         string `bson:"name" json:"name" db:"name"`
	PlanetID     int64  `bson:"planet_id" json:"planet_id" db:"planet_id"`
	PadawanCount int    `bson:"padawan_count" json:"-" db:"padawan_count"`
}

// JediSummary is a Jedi annotated with the number of assigned candidates.
type JediSummary struct {
	ID            int64  `bson:"_id" json:"id" db:"id"`
	Name          string `bson:"name" json:"name" db:"name"`
	PlanetID      int64  `bson:"planet_id" json:"planet_id" db:"planet_id"`
	PlanetName    string `bson:"planet_name" json:"planet_name" db:"planet_name"`
	PadawansCount int    `bson:"padawans_count" json:"padawans_count" db:"padawans_count"`
}
