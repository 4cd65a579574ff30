package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

// QuestionService handles question bank mutations. Every mutation commits
// together with a recompute of the parent quiz's total, then drops the
// cached pool so subsequent attempts see the new bank.
type QuestionService struct {
	questions *repository.QuestionRepository
	quizzes   *repository.QuizRepository
	courses   *repository.CourseRepository
	cache     PoolCache
	notifier  Notifier
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(
	questions *repository.QuestionRepository,
	quizzes *repository.QuizRepository,
	courses *repository.CourseRepository,
	cache PoolCache,
	notifier Notifier,
	log zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questions: questions,
		quizzes:   quizzes,
		courses:   courses,
		cache:     cache,
		notifier:  notifier,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// ListByQuiz retrieves a quiz's full question bank, answers included. Only
// the owning teacher may see it.
func (s *QuestionService) ListByQuiz(ctx context.Context, quizID uuid.UUID, teacherID int) ([]model.Question, error) {
	if _, err := s.ownedQuiz(ctx, quizID, teacherID); err != nil {
		return nil, err
	}
	return s.questions.ListByQuiz(ctx, quizID)
}

// Add inserts a question into a quiz owned by the given teacher.
func (s *QuestionService) Add(ctx context.Context, quizID uuid.UUID, teacherID int, req *model.AddQuestionRequest) (*model.Question, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, teacherID)
	if err != nil {
		return nil, err
	}

	question := questionFromRequest(quizID, req)
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	s.afterMutation(ctx, quiz)
	return question, nil
}

// BulkAdd inserts many questions into a quiz owned by the given teacher in
// one transaction.
func (s *QuestionService) BulkAdd(ctx context.Context, quizID uuid.UUID, teacherID int, req *model.BulkQuestionsRequest) (int, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, teacherID)
	if err != nil {
		return 0, err
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, *questionFromRequest(quizID, &req.Questions[i]))
	}
	if err := s.questions.BulkCreate(ctx, quizID, questions); err != nil {
		return 0, fmt.Errorf("bulk create questions: %w", err)
	}
	s.afterMutation(ctx, quiz)
	return len(questions), nil
}

// Update modifies a question in a quiz owned by the given teacher.
func (s *QuestionService) Update(ctx context.Context, questionID uuid.UUID, teacherID int, req *model.AddQuestionRequest) (*model.Question, error) {
	existing, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return nil, orNotFound(err)
	}
	quiz, err := s.ownedQuiz(ctx, existing.QuizID, teacherID)
	if err != nil {
		return nil, err
	}

	question := questionFromRequest(existing.QuizID, req)
	question.ID = questionID
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	s.afterMutation(ctx, quiz)
	return question, nil
}

// Delete removes a question from a quiz owned by the given teacher.
func (s *QuestionService) Delete(ctx context.Context, questionID uuid.UUID, teacherID int) error {
	existing, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return orNotFound(err)
	}
	quiz, err := s.ownedQuiz(ctx, existing.QuizID, teacherID)
	if err != nil {
		return err
	}

	if err := s.questions.Delete(ctx, questionID, existing.QuizID); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	s.afterMutation(ctx, quiz)
	return nil
}

// afterMutation runs the side effects shared by every bank change. The
// total itself was already recomputed inside the mutation's transaction.
func (s *QuestionService) afterMutation(ctx context.Context, quiz *model.Quiz) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, quiz.ID)
	}
	s.log.Info().Str("quiz_id", quiz.ID.String()).Msg("question bank changed")

	s.notifier.Notify(ctx, model.Notification{
		Title:   "Quiz Content Updated",
		Message: fmt.Sprintf("The questions of %q changed.", quiz.Title),
		Type:    model.NotificationTypeQuiz,
	})
}

func questionFromRequest(quizID uuid.UUID, req *model.AddQuestionRequest) *model.Question {
	pointValue := req.PointValue
	if pointValue == 0 {
		pointValue = 1
	}
	return &model.Question{
		QuizID:        quizID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		PointValue:    pointValue,
		QuestionType:  model.QuestionType(req.QuestionType),
	}
}

func (s *QuestionService) ownedQuiz(ctx context.Context, quizID uuid.UUID, teacherID int) (*model.Quiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
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
	return quiz, nil
}
