package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/imon025/quizi-backend/internal/model"
)

// AutoGrade scores one question against one submitted answer. Description
// questions are never auto-gradable and an empty submission never earns
// marks. Comparison trims whitespace and lowercases both sides, so option
// keys match case-insensitively. Earned marks are the only output: for
// gradable types a nonzero return means the answer was correct, so no
// separate correctness flag is kept per question.
func AutoGrade(q *model.Question, submitted string) int {
	if q.QuestionType == model.QuestionTypeDescription {
		return 0
	}
	ans := normalizeAnswer(submitted)
	if ans == "" {
		return 0
	}
	if ans == normalizeAnswer(q.CorrectOption) {
		return q.PointValue
	}
	return 0
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// manualScore extracts a usable numeric override from teacher feedback.
// Accepts a JSON number or a numeric string; anything else reports no
// override so grading falls through to the automatic path.
func manualScore(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	// json.Unmarshal leaves a float64 at zero for JSON null, which would
	// read as an override of 0. A null score means the override is cleared.
	if string(bytes.TrimSpace(raw)) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(v), true
		}
	}
	return 0, false
}

// ComputeScore grades a full answer set against the quiz's current question
// bank. For each question a usable manual override in feedback wins
// unconditionally; otherwise the answer is auto-graded. Questions absent
// from the answer map grade as empty submissions. The result is a pure
// function of its inputs.
func ComputeScore(bank []model.Question, answers model.AnswerMap, feedback model.FeedbackMap) int {
	total := 0
	for i := range bank {
		q := &bank[i]
		key := q.ID.String()
		if fb, ok := feedback[key]; ok {
			if score, ok := manualScore(fb.Score); ok {
				total += score
				continue
			}
		}
		total += AutoGrade(q, answers[key])
	}
	return total
}

// TotalMarks sums point values over a question set. The persisted quiz
// total is maintained by the same summation done in SQL alongside question
// mutations; this is the in-process counterpart used when snapshotting a
// submission.
func TotalMarks(bank []model.Question) int {
	total := 0
	for i := range bank {
		total += bank[i].PointValue
	}
	return total
}
