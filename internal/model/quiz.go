package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizStatus is the advisory lifecycle label of a quiz. Admission control
// uses the time window, not this field.
type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusScheduled QuizStatus = "scheduled"
	QuizStatusLive      QuizStatus = "live"
	QuizStatusEnded     QuizStatus = "ended"
)

// Quiz represents a timed, access-key gated assessment within a course.
// TotalMarks is derived from the quiz's questions and is only ever written
// by the aggregator recompute, never by user input once questions exist.
type Quiz struct {
	ID              uuid.UUID  `json:"id"`
	CourseID        int        `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	PassingMarks    int        `json:"passing_marks"`
	TotalMarks      int        `json:"total_marks"`
	AccessKey       string     `json:"access_key,omitempty"`
	// AttemptsCount caps how many questions one attempt serves.
	// Zero means the full pool.
	AttemptsCount    int  `json:"attempts_count"`
	MaxQuestions     int  `json:"max_questions"`
	ShuffleQuestions bool `json:"shuffle_questions"`
	ShuffleOptions   bool `json:"shuffle_options"`

	// Exam-integrity flags. Collection of proctoring data happens on the
	// client; the engine only stores what it is handed.
	FullscreenRequired bool `json:"fullscreen_required"`
	TabSwitchDetection bool `json:"tab_switch_detection"`
	EyeTrackingEnabled bool `json:"eye_tracking_enabled"`
	ViolationLimit     int  `json:"violation_limit"`

	Status    QuizStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateQuizRequest is the payload for creating a quiz.
type CreateQuizRequest struct {
	Title              string     `json:"title" binding:"required,min=3,max=255"`
	Description        string     `json:"description" binding:"omitempty,max=2000"`
	StartTime          *time.Time `json:"start_time" binding:"omitempty"`
	EndTime            *time.Time `json:"end_time" binding:"omitempty,gtfield=StartTime"`
	Deadline           *time.Time `json:"deadline" binding:"omitempty"`
	DurationMinutes    int        `json:"duration_minutes" binding:"required,min=1,max=480"`
	PassingMarks       int        `json:"passing_marks" binding:"omitempty,min=0"`
	AccessKey          string     `json:"access_key" binding:"omitempty,min=4,max=50"`
	AttemptsCount      int        `json:"attempts_count" binding:"omitempty,min=0"`
	MaxQuestions       int        `json:"max_questions" binding:"omitempty,min=0"`
	ShuffleQuestions   *bool      `json:"shuffle_questions" binding:"omitempty"`
	ShuffleOptions     *bool      `json:"shuffle_options" binding:"omitempty"`
	FullscreenRequired *bool      `json:"fullscreen_required" binding:"omitempty"`
	TabSwitchDetection *bool      `json:"tab_switch_detection" binding:"omitempty"`
	EyeTrackingEnabled *bool      `json:"eye_tracking_enabled" binding:"omitempty"`
	ViolationLimit     int        `json:"violation_limit" binding:"omitempty,min=0"`
	Status             string     `json:"status" binding:"omitempty,oneof=draft scheduled live ended"`
}

// ValidateKeyRequest is the payload for the pre-flight access check.
type ValidateKeyRequest struct {
	AccessKey string `json:"access_key"`
}

// StartAttemptRequest is the payload for starting an attempt.
type StartAttemptRequest struct {
	AccessKey string `json:"access_key"`
}
