package service

import (
	"testing"
	"time"

	"github.com/imon025/quizi-backend/internal/model"
)

func quizWithWindow(start, end *time.Time, key string) *model.Quiz {
	return &model.Quiz{StartTime: start, EndTime: end, AccessKey: key}
}

func TestValidateAccessKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		presented  string
		wantErr    error
	}{
		{"exact match", "secret42", "secret42", nil},
		{"wrong key", "secret42", "secret43", ErrInvalidAccessKey},
		{"case differs", "Secret", "secret", ErrInvalidAccessKey},
		{"whitespace differs", "secret", " secret", ErrInvalidAccessKey},
		{"both empty", "", "", nil},
		{"empty configured, non-empty presented", "", "anything", ErrInvalidAccessKey},
		{"non-empty configured, empty presented", "secret", "", ErrInvalidAccessKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccessKey(quizWithWindow(nil, nil, tt.configured), tt.presented)
			if err != tt.wantErr {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWindowBoundariesInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	quiz := quizWithWindow(&start, &end, "")

	if err := ValidateWindow(quiz, start); err != nil {
		t.Errorf("at exact start: got %v, want nil", err)
	}
	if err := ValidateWindow(quiz, end); err != nil {
		t.Errorf("at exact end: got %v, want nil", err)
	}
	if err := ValidateWindow(quiz, start.Add(-time.Nanosecond)); err != ErrQuizNotStarted {
		t.Errorf("before start: got %v, want ErrQuizNotStarted", err)
	}
	if err := ValidateWindow(quiz, end.Add(time.Nanosecond)); err != ErrQuizEnded {
		t.Errorf("after end: got %v, want ErrQuizEnded", err)
	}
	if err := ValidateWindow(quiz, start.Add(time.Hour)); err != nil {
		t.Errorf("inside window: got %v, want nil", err)
	}
}

func TestValidateWindowUnbounded(t *testing.T) {
	now := time.Now()
	if err := ValidateWindow(quizWithWindow(nil, nil, ""), now); err != nil {
		t.Errorf("no bounds: got %v, want nil", err)
	}

	past := now.Add(-time.Hour)
	if err := ValidateWindow(quizWithWindow(&past, nil, ""), now); err != nil {
		t.Errorf("open end: got %v, want nil", err)
	}

	future := now.Add(time.Hour)
	if err := ValidateWindow(quizWithWindow(nil, &future, ""), now); err != nil {
		t.Errorf("open start: got %v, want nil", err)
	}
}

func TestValidateAccessKeyCheckedBeforeWindow(t *testing.T) {
	start := time.Now().Add(time.Hour)
	quiz := quizWithWindow(&start, nil, "secret")

	// Wrong key on a not-yet-open quiz reports the key error, so callers
	// cannot probe the window with a bad key.
	if err := ValidateAccess(quiz, "wrong", time.Now()); err != ErrInvalidAccessKey {
		t.Errorf("got %v, want ErrInvalidAccessKey", err)
	}
	if err := ValidateAccess(quiz, "secret", time.Now()); err != ErrQuizNotStarted {
		t.Errorf("got %v, want ErrQuizNotStarted", err)
	}
}
