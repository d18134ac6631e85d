package models

type Question struct {
	ID   int64  `bson:"_id" json:"id" db:"id"`
	Text string `bson:"text" json:"text" db:"text"`
}

type Order struct {
	ID   int64  `bson:"_id" json:"id" db:"id"`
	Name string `bson:"name" json:"name" db:"name"`
	Code int    `bson:"code" json:"code" db:"code"`
}

// Challenge is the ordered question sequence taken by candidates of an order.
type Challenge struct {
	ID          int64   `bson:"_id" json:"id" db:"id"`
	OrderID     int64   `bson:"order_id" json:"order_id" db:"order_id"`
	OrderCode   int     `bson:"order_code" json:"order_code" db:"order_code"`
	QuestionIDs []int64 `bson:"question_ids" json:"question_ids" db:"-"`
}

// Position returns the zero-based index of questionID in the sequence,
// or -1 when the question is not part of the challenge.
func (c *Challenge) Position(questionID int64) int {
	for i, id := range c.QuestionIDs {
		if id == questionID {
			return i
		}
	}
	return -1
}

// Next returns the question following questionID. The second result is
// false when questionID is the last question or is not in the sequence.
func (c *Challenge) Next(questionID int64) (int64, bool) {
	pos := c.Position(questionID)
	if pos < 0 || pos+1 >= len(c.QuestionIDs) {
		return 0, false
	}
	return c.QuestionIDs[pos+1], true
}
