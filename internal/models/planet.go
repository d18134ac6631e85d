package models

type Planet struct {
	ID   int64  `bson:"_id" json:"id" db:"id"`
	Name string `bson:"name" json:"name" db:"name"`
}
