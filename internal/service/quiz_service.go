package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

// QuizService handles quiz management for teachers and quiz listings for
// students.
type QuizService struct {
	quizzes  *repository.QuizRepository
	courses  *repository.CourseRepository
	cache    PoolCache
	notifier Notifier
	log      zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(
	quizzes *repository.QuizRepository,
	courses *repository.CourseRepository,
	cache PoolCache,
	notifier Notifier,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		courses:  courses,
		cache:    cache,
		notifier: notifier,
		log:      log.With().Str("component", "quiz_service").Logger(),
	}
}

// Create adds a quiz to a course owned by the given teacher. The quiz starts
// with a zero total; the total follows its questions from then on.
func (s *QuizService) Create(ctx context.Context, courseID, teacherID int, req *model.CreateQuizRequest) (*model.Quiz, error) {
	course, err := s.ownedCourse(ctx, courseID, teacherID)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		CourseID:        courseID,
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Deadline:        req.Deadline,
		DurationMinutes: req.DurationMinutes,
		PassingMarks:    req.PassingMarks,
		AccessKey:       req.AccessKey,
		AttemptsCount:   req.AttemptsCount,
		MaxQuestions:    req.MaxQuestions,
		ViolationLimit:  req.ViolationLimit,
		Status:          model.QuizStatusDraft,
	}
	applyQuizFlags(quiz, req)
	if req.Status != "" {
		quiz.Status = model.QuizStatus(req.Status)
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	s.log.Info().
		Str("quiz_id", quiz.ID.String()).
		Int("course_id", courseID).
		Msg("quiz created")

	s.notifier.Notify(ctx, model.Notification{
		Title:   "New Quiz",
		Message: fmt.Sprintf("Quiz %q was added to %q.", quiz.Title, course.Title),
		Type:    model.NotificationTypeQuiz,
	})
	return quiz, nil
}

// Get retrieves a quiz by id.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	return quiz, nil
}

// GetForStudent retrieves a quiz for an enrolled student with the access key
// redacted.
func (s *QuizService) GetForStudent(ctx context.Context, id uuid.UUID, studentID int) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	if _, err := s.courses.GetEnrollment(ctx, studentID, quiz.CourseID); err != nil {
		return nil, ErrForbidden
	}
	redacted := *quiz
	redacted.AccessKey = ""
	return &redacted, nil
}

// ListByCourse retrieves the quizzes of a course.
func (s *QuizService) ListByCourse(ctx context.Context, courseID int) ([]model.Quiz, error) {
	return s.quizzes.ListByCourse(ctx, courseID)
}

// Update modifies a quiz in a course owned by the given teacher and drops
// the cached question pool so the next attempt sees fresh settings.
func (s *QuizService) Update(ctx context.Context, id uuid.UUID, teacherID int, req *model.CreateQuizRequest) (*model.Quiz, error) {
	quiz, err := s.ownedQuiz(ctx, id, teacherID)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.StartTime = req.StartTime
	quiz.EndTime = req.EndTime
	quiz.Deadline = req.Deadline
	quiz.DurationMinutes = req.DurationMinutes
	quiz.PassingMarks = req.PassingMarks
	quiz.AccessKey = req.AccessKey
	quiz.AttemptsCount = req.AttemptsCount
	quiz.MaxQuestions = req.MaxQuestions
	quiz.ViolationLimit = req.ViolationLimit
	applyQuizFlags(quiz, req)
	if req.Status != "" {
		quiz.Status = model.QuizStatus(req.Status)
	}

	if err := s.quizzes.Update(ctx, quiz); err != nil {
		return nil, fmt.Errorf("update quiz: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, quiz.ID)
	}
	return quiz, nil
}

// Delete removes a quiz from a course owned by the given teacher.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID, teacherID int) error {
	if _, err := s.ownedQuiz(ctx, id, teacherID); err != nil {
		return err
	}
	if err := s.quizzes.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func applyQuizFlags(quiz *model.Quiz, req *model.CreateQuizRequest) {
	if req.ShuffleQuestions != nil {
		quiz.ShuffleQuestions = *req.ShuffleQuestions
	}
	if req.ShuffleOptions != nil {
		quiz.ShuffleOptions = *req.ShuffleOptions
	}
	if req.FullscreenRequired != nil {
		quiz.FullscreenRequired = *req.FullscreenRequired
	}
	if req.TabSwitchDetection != nil {
		quiz.TabSwitchDetection = *req.TabSwitchDetection
	}
	if req.EyeTrackingEnabled != nil {
		quiz.EyeTrackingEnabled = *req.EyeTrackingEnabled
	}
}

func (s *QuizService) ownedQuiz(ctx context.Context, id uuid.UUID, teacherID int) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	if _, err := s.ownedCourse(ctx, quiz.CourseID, teacherID); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ownedCourse(ctx context.Context, courseID, teacherID int) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if course.TeacherID != teacherID {
		return nil, ErrForbidden
	}
	return course, nil
}
