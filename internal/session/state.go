// Package session keeps per-visitor state of the recruitment flows in
// Redis, addressed by a signed cookie.
package session

import "errors"

type Phase string

const (
	PhaseUnregistered Phase = "unregistered"
	PhaseAnswering    Phase = "answering"
	PhaseCompleted    Phase = "completed"
)

var ErrUnregistered = errors.New("no candidate registered in this session")

// State is everything a visitor accumulates across requests. A candidate
// goes unregistered -> answering -> completed; a mentor binding is
// independent of the quiz.
type State struct {
	CandidateID int64          `json:"candidate_id,omitempty"`
	OrderCode   int            `json:"order_code,omitempty"`
	Answers     map[int64]bool `json:"answers,omitempty"`
	Completed   bool           `json:"completed,omitempty"`
	JediID      int64          `json:"jedi_id,omitempty"`
}

func (s *State) Phase() Phase {
	switch {
	case s.CandidateID == 0:
		return PhaseUnregistered
	case s.Completed:
		return PhaseCompleted
	default:
		return PhaseAnswering
	}
}

// BindCandidate starts the quiz of orderCode for a freshly registered
// candidate, dropping answers of any previous candidate.
func (s *State) BindCandidate(candidateID int64, orderCode int) {
	s.CandidateID = candidateID
	s.OrderCode = orderCode
	s.Answers = map[int64]bool{}
	s.Completed = false
}

func (s *State) RecordAnswer(questionID int64, value bool) error {
	if s.Phase() != PhaseAnswering {
		return ErrUnregistered
	}
	if s.Answers == nil {
		s.Answers = map[int64]bool{}
	}
	s.Answers[questionID] = value
	return nil
}

func (s *State) Complete() error {
	if s.Phase() != PhaseAnswering {
		return ErrUnregistered
	}
	s.Completed = true
	return nil
}

func (s *State) BindMentor(jediID int64) {
	s.JediID = jediID
}

func (s *State) HasMentor() bool {
	return s.JediID != 0
}

func (s *State) Reset() {
	*s = State{}
}
