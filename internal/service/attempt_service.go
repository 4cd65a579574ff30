package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
)

// QuizStore is the quiz lookup the attempt lifecycle needs.
type QuizStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
}

// QuestionStore is the question lookup the attempt lifecycle needs.
type QuestionStore interface {
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.Question, error)
}

// ResultStore is the result persistence the attempt lifecycle needs.
type ResultStore interface {
	Create(ctx context.Context, res *model.Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error)
	GetByQuizAndStudent(ctx context.Context, quizID uuid.UUID, studentID int) (*model.Result, error)
	UpdateGrading(ctx context.Context, res *model.Result) error
}

// CourseStore is the course and enrollment lookup the attempt lifecycle needs.
type CourseStore interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
	GetEnrollment(ctx context.Context, studentID, courseID int) (*model.Enrollment, error)
}

// AttemptService orchestrates the quiz attempt lifecycle: access
// validation, attempt start, submission grading, and teacher regrades.
// Nothing attempt-scoped is persisted between start and submit; the only
// record of an attempt is the result row written at submission.
type AttemptService struct {
	quizzes   QuizStore
	questions QuestionStore
	results   ResultStore
	courses   CourseStore
	cache     PoolCache
	notifier  Notifier
	log       zerolog.Logger
}

// NewAttemptService creates an AttemptService. cache may be nil, in which
// case every pool read goes to the store.
func NewAttemptService(
	quizzes QuizStore,
	questions QuestionStore,
	results ResultStore,
	courses CourseStore,
	cache PoolCache,
	notifier Notifier,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		quizzes:   quizzes,
		questions: questions,
		results:   results,
		courses:   courses,
		cache:     cache,
		notifier:  notifier,
		log:       log.With().Str("component", "attempt_service").Logger(),
	}
}

func orNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// ValidateAccess is the pre-flight check a client runs before rendering the
// attempt screen. It proves the key and the time window without serving any
// questions; a later StartAttempt re-validates from scratch.
func (s *AttemptService) ValidateAccess(ctx context.Context, quizID uuid.UUID, presentedKey string) error {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return orNotFound(err)
	}
	return ValidateAccess(quiz, presentedKey, time.Now())
}

// StartAttempt admits a student and serves their question set. The subset
// and ordering are drawn fresh on every call; nothing about the served set
// is recorded.
func (s *AttemptService) StartAttempt(ctx context.Context, quizID uuid.UUID, studentID int, presentedKey string) ([]model.QuestionForStudent, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if err := s.requireEnrollment(ctx, studentID, quiz.CourseID); err != nil {
		return nil, err
	}
	if err := ValidateAccess(quiz, presentedKey, time.Now()); err != nil {
		return nil, err
	}

	pool, err := s.loadPool(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoQuestions
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	served := SelectQuestions(quiz, pool, rng)

	s.log.Info().
		Str("quiz_id", quizID.String()).
		Int("student_id", studentID).
		Int("pool_size", len(pool)).
		Int("served", len(served)).
		Msg("attempt started")
	return served, nil
}

// SubmitAttempt grades a student's answer set against the quiz's current
// question bank and persists the result. A student gets exactly one
// submission per quiz; the total_marks snapshot is taken here and never
// updated afterwards.
func (s *AttemptService) SubmitAttempt(ctx context.Context, quizID uuid.UUID, studentID int, req *model.SubmitAttemptRequest) (*model.Result, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if err := s.requireEnrollment(ctx, studentID, quiz.CourseID); err != nil {
		return nil, err
	}

	if _, err := s.results.GetByQuizAndStudent(ctx, quizID, studentID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Grade against the persisted bank, not the cache, so a mutation that
	// landed mid-attempt is reflected.
	bank, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	answers := model.AnswerMap(req.Answers)
	res := &model.Result{
		StudentID:             studentID,
		QuizID:                quizID,
		Score:                 ComputeScore(bank, answers, nil),
		TotalMarks:            TotalMarks(bank),
		Answers:               answers,
		Feedback:              model.FeedbackMap{},
		EyeTrackingViolations: req.EyeTrackingViolations,
		Timeline:              req.Timeline,
	}
	if err := s.results.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("persist result: %w", err)
	}

	s.log.Info().
		Str("quiz_id", quizID.String()).
		Int("student_id", studentID).
		Int("score", res.Score).
		Int("total_marks", res.TotalMarks).
		Msg("attempt submitted")

	if course, err := s.courses.GetByID(ctx, quiz.CourseID); err == nil {
		s.notifier.Notify(ctx, model.Notification{
			Title:       "New Submission",
			Message:     fmt.Sprintf("A submission was received for %q.", quiz.Title),
			Type:        model.NotificationTypeQuiz,
			RecipientID: &course.TeacherID,
		})
	}
	return res, nil
}

// Regrade applies a teacher's answer and feedback patches to a result and
// recomputes its score. Patches merge shallowly per question with the patch
// winning; a per-question manual score in feedback overrides auto-grading.
// The merged state and new score land in one write, and the total_marks
// snapshot is left untouched.
func (s *AttemptService) Regrade(ctx context.Context, resultID uuid.UUID, teacherID int, req *model.RegradeRequest) (*model.Result, error) {
	res, err := s.results.GetByID(ctx, resultID)
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

	if res.Answers == nil {
		res.Answers = model.AnswerMap{}
	}
	for id, ans := range req.Answers {
		res.Answers[id] = ans
	}
	if res.Feedback == nil {
		res.Feedback = model.FeedbackMap{}
	}
	for id, fb := range req.Feedback {
		res.Feedback[id] = fb
	}

	bank, err := s.questions.ListByQuiz(ctx, res.QuizID)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	res.Score = ComputeScore(bank, res.Answers, res.Feedback)

	if err := s.results.UpdateGrading(ctx, res); err != nil {
		return nil, fmt.Errorf("persist regrade: %w", err)
	}

	s.log.Info().
		Str("result_id", resultID.String()).
		Int("teacher_id", teacherID).
		Int("score", res.Score).
		Msg("result regraded")

	s.notifier.Notify(ctx, model.Notification{
		Title:       "Result Updated",
		Message:     fmt.Sprintf("Your result for %q has been reviewed.", quiz.Title),
		Type:        model.NotificationTypeQuiz,
		RecipientID: &res.StudentID,
	})
	return res, nil
}

func (s *AttemptService) requireEnrollment(ctx context.Context, studentID, courseID int) error {
	if _, err := s.courses.GetEnrollment(ctx, studentID, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrForbidden
		}
		return err
	}
	return nil
}

func (s *AttemptService) loadPool(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	if s.cache != nil {
		if pool, ok := s.cache.Get(ctx, quizID); ok {
			return pool, nil
		}
	}
	pool, err := s.questions.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}
	if s.cache != nil && len(pool) > 0 {
		s.cache.Set(ctx, quizID, pool)
	}
	return pool, nil
}
