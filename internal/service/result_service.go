package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

// ResultService handles result retrieval with ownership checks. Lifecycle
// writes (submission, regrade) live in AttemptService.
type ResultService struct {
	results *repository.ResultRepository
	quizzes *repository.QuizRepository
	courses *repository.CourseRepository
	log     zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(
	results *repository.ResultRepository,
	quizzes *repository.QuizRepository,
	courses *repository.CourseRepository,
	log zerolog.Logger,
) *ResultService {
	return &ResultService{
		results: results,
		quizzes: quizzes,
		courses: courses,
		log:     log.With().Str("component", "result_service").Logger(),
	}
}

// GetForStudent retrieves a result owned by the given student.
func (s *ResultService) GetForStudent(ctx context.Context, id uuid.UUID, studentID int) (*model.Result, error) {
	res, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	if res.StudentID != studentID {
		return nil, ErrForbidden
	}
	return res, nil
}

// GetForTeacher retrieves a result belonging to a quiz in one of the
// teacher's courses.
func (s *ResultService) GetForTeacher(ctx context.Context, id uuid.UUID, teacherID int) (*model.Result, error) {
	res, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	quiz, err := s.quizzes.GetByID(ctx, res.QuizID)
	if err != nil {
		return nil, orNotFound(err)
	}
	course, err := s.courses.GetByID(ctx, quiz.CourseID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if course.TeacherID != teacherID {
		return nil, ErrForbidden
	}
	return res, nil
}

// ListForStudent retrieves a student's own results, newest first.
func (s *ResultService) ListForStudent(ctx context.Context, studentID int) ([]model.Result, error) {
	return s.results.ListByStudent(ctx, studentID)
}

// ListForTeacher retrieves every result under the teacher's courses.
func (s *ResultService) ListForTeacher(ctx context.Context, teacherID int) ([]model.Result, error) {
	return s.results.ListByTeacher(ctx, teacherID)
}
