package service

import "errors"

// Domain errors surfaced by services. Handlers translate these into the
// response error taxonomy.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidAccessKey   = errors.New("invalid access key")
	ErrQuizNotStarted     = errors.New("quiz has not started yet")
	ErrQuizEnded          = errors.New("quiz has already ended")
	ErrNoQuestions        = errors.New("quiz has no questions")
	ErrAlreadySubmitted   = errors.New("attempt already submitted")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSelfJoinDisabled   = errors.New("course does not allow self enrollment")
	ErrAlreadyEnrolled    = errors.New("student already enrolled")
	ErrConflict           = errors.New("resource already exists")
)
