package models

type Answer struct {
	ID           int64  `bson:"_id" json:"id" db:"id"`
	QuestionID   int64  `bson:"question_id" json:"question_id" db:"question_id"`
	CandidateID  int64  `bson:"candidate_id" json:"candidate_id" db:"candidate_id"`
	Value        bool   `bson:"value" json:"value" db:"value"`
	QuestionText string `bson:"-" json:"question_text,omitempty" db:"question_text"`
}
