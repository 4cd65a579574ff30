package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/imon025/quizi-backend/internal/model"
)

func mcq(correct string, points int) model.Question {
	return model.Question{
		ID:            uuid.New(),
		OptionA:       "alpha",
		OptionB:       "bravo",
		CorrectOption: correct,
		PointValue:    points,
		QuestionType:  model.QuestionTypeMCQ,
	}
}

func TestAutoGrade(t *testing.T) {
	q := mcq("a", 5)

	tests := []struct {
		name      string
		submitted string
		want      int
	}{
		{"exact match", "a", 5},
		{"uppercase match", "A", 5},
		{"padded match", "  a  ", 5},
		{"padded uppercase", " A ", 5},
		{"wrong answer", "b", 0},
		{"empty submission", "", 0},
		{"whitespace only", "   ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AutoGrade(&q, tt.submitted); got != tt.want {
				t.Errorf("AutoGrade(%q) = %d, want %d", tt.submitted, got, tt.want)
			}
		})
	}
}

func TestAutoGradeDescriptionNeverScores(t *testing.T) {
	q := model.Question{
		ID:            uuid.New(),
		CorrectOption: "essay text",
		PointValue:    10,
		QuestionType:  model.QuestionTypeDescription,
	}
	if got := AutoGrade(&q, "essay text"); got != 0 {
		t.Errorf("description question scored %d, want 0", got)
	}
}

func TestAutoGradeEmptyCorrectOption(t *testing.T) {
	// A gradable question with an empty correct option must not award
	// marks to an empty submission.
	q := mcq("", 5)
	if got := AutoGrade(&q, ""); got != 0 {
		t.Errorf("empty vs empty scored %d, want 0", got)
	}
}

func TestAutoGradeTrueFalse(t *testing.T) {
	q := model.Question{
		ID:            uuid.New(),
		OptionA:       "True",
		OptionB:       "False",
		CorrectOption: "true",
		PointValue:    2,
		QuestionType:  model.QuestionTypeTrueFalse,
	}
	if got := AutoGrade(&q, "TRUE"); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
	if got := AutoGrade(&q, "false"); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestComputeScoreScenario(t *testing.T) {
	// Two questions worth 5 and 10; a correct first answer in the wrong
	// case and a missing second answer score 5 of 15.
	q1 := mcq("a", 5)
	q2 := mcq("b", 10)
	bank := []model.Question{q1, q2}

	answers := model.AnswerMap{q1.ID.String(): "A"}

	if got := ComputeScore(bank, answers, nil); got != 5 {
		t.Errorf("score = %d, want 5", got)
	}
	if got := TotalMarks(bank); got != 15 {
		t.Errorf("total = %d, want 15", got)
	}
}

func TestComputeScoreDeterministic(t *testing.T) {
	q1 := mcq("a", 3)
	q2 := mcq("c", 7)
	bank := []model.Question{q1, q2}
	answers := model.AnswerMap{q1.ID.String(): "a", q2.ID.String(): "c"}

	first := ComputeScore(bank, answers, nil)
	for i := 0; i < 10; i++ {
		if got := ComputeScore(bank, answers, nil); got != first {
			t.Fatalf("score changed between runs: %d then %d", first, got)
		}
	}
	if first != 10 {
		t.Errorf("score = %d, want 10", first)
	}
}

func TestComputeScoreMissingEqualsEmpty(t *testing.T) {
	q := mcq("a", 5)
	bank := []model.Question{q}

	missing := ComputeScore(bank, model.AnswerMap{}, nil)
	empty := ComputeScore(bank, model.AnswerMap{q.ID.String(): ""}, nil)
	if missing != empty {
		t.Errorf("missing answer scored %d, empty answer %d; they must match", missing, empty)
	}
}

func TestComputeScoreManualOverride(t *testing.T) {
	q1 := mcq("a", 5)
	desc := model.Question{
		ID:           uuid.New(),
		PointValue:   10,
		QuestionType: model.QuestionTypeDescription,
	}
	bank := []model.Question{q1, desc}

	answers := model.AnswerMap{
		q1.ID.String():   "a",
		desc.ID.String(): "an essay",
	}
	feedback := model.FeedbackMap{
		desc.ID.String(): {Score: json.RawMessage(`8`), Comment: "good"},
	}

	if got := ComputeScore(bank, answers, feedback); got != 13 {
		t.Errorf("score = %d, want 13", got)
	}
}

func TestComputeScoreOverrideBeatsAutoGrade(t *testing.T) {
	// An override wins even when the auto-grade would award full marks.
	q := mcq("a", 5)
	bank := []model.Question{q}
	answers := model.AnswerMap{q.ID.String(): "a"}
	feedback := model.FeedbackMap{q.ID.String(): {Score: json.RawMessage(`2`)}}

	if got := ComputeScore(bank, answers, feedback); got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}

func TestComputeScoreMalformedOverrideFallsThrough(t *testing.T) {
	q := mcq("a", 5)
	bank := []model.Question{q}
	answers := model.AnswerMap{q.ID.String(): "a"}

	tests := []struct {
		name string
		raw  json.RawMessage
		want int
	}{
		{"non-numeric string", json.RawMessage(`"excellent"`), 5},
		{"null", json.RawMessage(`null`), 5},
		{"object", json.RawMessage(`{"value":3}`), 5},
		{"absent score", nil, 5},
		{"numeric string", json.RawMessage(`"3"`), 3},
		{"float", json.RawMessage(`3.9`), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := model.FeedbackMap{q.ID.String(): {Score: tt.raw}}
			if got := ComputeScore(bank, answers, feedback); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeScoreNullScoreClearsOverride(t *testing.T) {
	// Setting the score to null removes an earlier override and restores
	// auto-grading; it must not read as an override of zero.
	q := mcq("a", 5)
	bank := []model.Question{q}
	answers := model.AnswerMap{q.ID.String(): "a"}

	overridden := ComputeScore(bank, answers, model.FeedbackMap{
		q.ID.String(): {Score: json.RawMessage(`2`)},
	})
	if overridden != 2 {
		t.Fatalf("score = %d, want 2 while overridden", overridden)
	}

	cleared := ComputeScore(bank, answers, model.FeedbackMap{
		q.ID.String(): {Score: json.RawMessage(`null`)},
	})
	if cleared != 5 {
		t.Errorf("score = %d, want 5 after clearing the override", cleared)
	}
}

func TestComputeScoreIgnoresUnknownQuestions(t *testing.T) {
	// Answers and feedback for questions no longer in the bank contribute
	// nothing.
	q := mcq("a", 5)
	bank := []model.Question{q}
	gone := uuid.New().String()

	answers := model.AnswerMap{q.ID.String(): "a", gone: "b"}
	feedback := model.FeedbackMap{gone: {Score: json.RawMessage(`100`)}}

	if got := ComputeScore(bank, answers, feedback); got != 5 {
		t.Errorf("score = %d, want 5", got)
	}
}

func TestComputeScoreNoClamping(t *testing.T) {
	q := mcq("a", 5)
	bank := []model.Question{q}
	feedback := model.FeedbackMap{q.ID.String(): {Score: json.RawMessage(`50`)}}

	if got := ComputeScore(bank, model.AnswerMap{}, feedback); got != 50 {
		t.Errorf("score = %d, want 50 (overrides are not clamped)", got)
	}
}

func TestTotalMarksIdempotent(t *testing.T) {
	bank := []model.Question{mcq("a", 3), mcq("b", 4), mcq("c", 5)}
	first := TotalMarks(bank)
	if first != 12 {
		t.Fatalf("total = %d, want 12", first)
	}
	for i := 0; i < 5; i++ {
		if got := TotalMarks(bank); got != first {
			t.Fatalf("total changed between runs: %d then %d", first, got)
		}
	}
}
