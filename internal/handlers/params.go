package handlers

import (
	"strconv"
	"strings"
)

// parseQuestionRef splits the "<order>_<question>" part of a quiz URL.
func parseQuestionRef(ref string) (code int, questionID int64, ok bool) {
	orderPart, questionPart, found := strings.Cut(ref, "_")
	if !found {
		return 0, 0, false
	}
	code, err := strconv.Atoi(orderPart)
	if err != nil || code < 0 {
		return 0, 0, false
	}
	questionID, err = strconv.ParseInt(questionPart, 10, 64)
	if err != nil || questionID <= 0 {
		return 0, 0, false
	}
	return code, questionID, true
}

// parseCandidateRef reads the id out of "<id>_answer".
func parseCandidateRef(ref string) (int64, bool) {
	idPart, found := strings.CutSuffix(ref, "_answer")
	if !found {
		return 0, false
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
