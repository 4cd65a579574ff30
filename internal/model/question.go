package model

import "github.com/google/uuid"

// QuestionType enumerates the grading behaviors a question can have.
type QuestionType string

const (
	QuestionTypeMCQ         QuestionType = "mcq"
	QuestionTypeTrueFalse   QuestionType = "true_false"
	QuestionTypeDescription QuestionType = "description"
)

// Question belongs to exactly one quiz. CorrectOption holds the key of the
// correct option for auto-gradable types and is ignored for description
// questions.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	QuizID        uuid.UUID    `json:"quiz_id"`
	Text          string       `json:"text"`
	OptionA       string       `json:"option_a,omitempty"`
	OptionB       string       `json:"option_b,omitempty"`
	OptionC       string       `json:"option_c,omitempty"`
	OptionD       string       `json:"option_d,omitempty"`
	CorrectOption string       `json:"correct_option,omitempty"`
	PointValue    int          `json:"point_value"`
	QuestionType  QuestionType `json:"question_type"`
}

// Option pairs a stable answer key with its display text. The key travels
// with the text when option order is shuffled, so a submitted key always
// identifies the same content regardless of display position.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Options returns the question's non-empty options with their stable keys,
// in authored order.
func (q *Question) Options() []Option {
	all := []Option{
		{Key: "a", Text: q.OptionA},
		{Key: "b", Text: q.OptionB},
		{Key: "c", Text: q.OptionC},
		{Key: "d", Text: q.OptionD},
	}
	opts := make([]Option, 0, 4)
	for _, o := range all {
		if o.Text != "" {
			opts = append(opts, o)
		}
	}
	return opts
}

// QuestionForStudent is the student-facing view of a question. It never
// carries the correct option.
type QuestionForStudent struct {
	ID           uuid.UUID    `json:"id"`
	Text         string       `json:"text"`
	Options      []Option     `json:"options"`
	PointValue   int          `json:"point_value"`
	QuestionType QuestionType `json:"question_type"`
}

// AddQuestionRequest is the payload for adding a question to a quiz.
type AddQuestionRequest struct {
	Text          string `json:"text" binding:"required,min=1,max=2000"`
	OptionA       string `json:"option_a" binding:"omitempty,max=500"`
	OptionB       string `json:"option_b" binding:"omitempty,max=500"`
	OptionC       string `json:"option_c" binding:"omitempty,max=500"`
	OptionD       string `json:"option_d" binding:"omitempty,max=500"`
	CorrectOption string `json:"correct_option" binding:"omitempty,max=500"`
	PointValue    int    `json:"point_value" binding:"omitempty,min=1"`
	QuestionType  string `json:"question_type" binding:"required,oneof=mcq true_false description"`
}

// BulkQuestionsRequest is the payload for uploading multiple questions at once.
type BulkQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
