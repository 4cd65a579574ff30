package service

import (
	"time"

	"github.com/imon025/quizi-backend/internal/model"
)

// ValidateAccessKey compares the presented key against the quiz's configured
// key with exact string equality. A quiz configured with an empty key admits
// only an empty presented key.
func ValidateAccessKey(quiz *model.Quiz, presented string) error {
	if presented != quiz.AccessKey {
		return ErrInvalidAccessKey
	}
	return nil
}

// ValidateWindow checks that now falls inside the quiz's availability window.
// Both boundaries are inclusive: an attempt at exactly start_time or exactly
// end_time is admitted. A nil boundary means unbounded on that side.
func ValidateWindow(quiz *model.Quiz, now time.Time) error {
	if quiz.StartTime != nil && now.Before(*quiz.StartTime) {
		return ErrQuizNotStarted
	}
	if quiz.EndTime != nil && now.After(*quiz.EndTime) {
		return ErrQuizEnded
	}
	return nil
}

// ValidateAccess runs the key check then the window check against a single
// observed instant, so one admission decision cannot straddle the boundary.
func ValidateAccess(quiz *model.Quiz, presented string, now time.Time) error {
	if err := ValidateAccessKey(quiz, presented); err != nil {
		return err
	}
	return ValidateWindow(quiz, now)
}
