package models

const (
	MinCandidateAge = 20
	MaxCandidateAge = 100
)

type Candidate struct {
	ID       int64  `bson:"_id" json:"id" db:"id"`
	Name     string `bson:"name" json:"name" db:"name"`
	PlanetID int64  `bson:"planet_id" json:"planet_id" db:"planet_id"`
	Age      int    `bson:"age" json:"age" db:"age"`
	Email    string `bson:"email" json:"email" db:"email"`
	JediID   *int64 `bson:"jedi_id" json:"jedi_id" db:"jedi_id"`
}

// ValidAge reports whether age is within the accepted candidate range.
func ValidAge(age int) bool {
	return age >= MinCandidateAge && age <= MaxCandidateAge
}

// IsPadawan reports whether a Jedi has accepted the candidate.
func (c *Candidate) IsPadawan() bool {
	return c.JediID != nil
}
