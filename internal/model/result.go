package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnswerMap maps string-encoded question ids to the submitted option key
// (or free text for description questions).
type AnswerMap map[string]string

// AnswerFeedback carries a teacher's per-question review. Score is kept raw
// so a malformed value degrades to "no override" instead of failing the
// whole regrade.
type AnswerFeedback struct {
	Score   json.RawMessage `json:"score,omitempty"`
	Comment string          `json:"comment,omitempty"`
}

// FeedbackMap maps string-encoded question ids to teacher feedback.
type FeedbackMap map[string]AnswerFeedback

// Result is one attempt record per (student, quiz, submission).
// TotalMarks is a snapshot taken at submission time and is deliberately not
// updated when the live quiz's total changes later.
type Result struct {
	ID                    uuid.UUID       `json:"id"`
	StudentID             int             `json:"student_id"`
	QuizID                uuid.UUID       `json:"quiz_id"`
	Score                 int             `json:"score"`
	TotalMarks            int             `json:"total_marks"`
	Answers               AnswerMap       `json:"answers"`
	Feedback              FeedbackMap     `json:"feedback,omitempty"`
	EyeTrackingViolations int             `json:"eye_tracking_violations"`
	Timeline              json.RawMessage `json:"timeline,omitempty"`
	CompletedAt           time.Time       `json:"completed_at"`
}

// SubmitAttemptRequest is the payload for submitting an answer set.
// The violation count and timeline are opaque proctoring inputs.
type SubmitAttemptRequest struct {
	Answers               map[string]string `json:"answers" binding:"required"`
	EyeTrackingViolations int               `json:"eye_tracking_violations" binding:"omitempty,min=0"`
	Timeline              json.RawMessage   `json:"timeline" binding:"omitempty"`
}

// RegradeRequest is the payload for a teacher-initiated regrade. Both
// patches are shallow per-question merges where the patch wins.
type RegradeRequest struct {
	Feedback map[string]AnswerFeedback `json:"feedback" binding:"omitempty"`
	Answers  map[string]string         `json:"answers" binding:"omitempty"`
}
