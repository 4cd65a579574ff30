package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
)

type fakeQuizStore struct {
	quizzes map[uuid.UUID]*model.Quiz
}

func (f *fakeQuizStore) GetByID(_ context.Context, id uuid.UUID) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

type fakeQuestionStore struct {
	byQuiz map[uuid.UUID][]model.Question
}

func (f *fakeQuestionStore) ListByQuiz(_ context.Context, quizID uuid.UUID) ([]model.Question, error) {
	return f.byQuiz[quizID], nil
}

type fakeResultStore struct {
	byID map[uuid.UUID]*model.Result
}

func (f *fakeResultStore) Create(_ context.Context, res *model.Result) error {
	res.ID = uuid.New()
	res.CompletedAt = time.Now()
	cp := *res
	f.byID[res.ID] = &cp
	return nil
}

func (f *fakeResultStore) GetByID(_ context.Context, id uuid.UUID) (*model.Result, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *res
	return &cp, nil
}

func (f *fakeResultStore) GetByQuizAndStudent(_ context.Context, quizID uuid.UUID, studentID int) (*model.Result, error) {
	for _, res := range f.byID {
		if res.QuizID == quizID && res.StudentID == studentID {
			cp := *res
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResultStore) UpdateGrading(_ context.Context, res *model.Result) error {
	stored, ok := f.byID[res.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Score = res.Score
	stored.Answers = res.Answers
	stored.Feedback = res.Feedback
	return nil
}

type fakeCourseStore struct {
	courses  map[int]*model.Course
	enrolled map[[2]int]bool
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourseStore) GetEnrollment(_ context.Context, studentID, courseID int) (*model.Enrollment, error) {
	if !f.enrolled[[2]int{studentID, courseID}] {
		return nil, pgx.ErrNoRows
	}
	return &model.Enrollment{StudentID: studentID, CourseID: courseID}, nil
}

type fakeNotifier struct {
	sent []model.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n model.Notification) {
	f.sent = append(f.sent, n)
}

const (
	testTeacherID = 1
	testStudentID = 2
	testCourseID  = 10
)

type attemptFixture struct {
	svc       *AttemptService
	quiz      *model.Quiz
	questions *fakeQuestionStore
	results   *fakeResultStore
	courses   *fakeCourseStore
	notifier  *fakeNotifier
}

func newAttemptFixture(bank []model.Question) *attemptFixture {
	quiz := &model.Quiz{
		ID:         uuid.New(),
		CourseID:   testCourseID,
		Title:      "Midterm",
		AccessKey:  "key123",
		TotalMarks: TotalMarks(bank),
	}
	for i := range bank {
		bank[i].QuizID = quiz.ID
	}

	quizzes := &fakeQuizStore{quizzes: map[uuid.UUID]*model.Quiz{quiz.ID: quiz}}
	questions := &fakeQuestionStore{byQuiz: map[uuid.UUID][]model.Question{quiz.ID: bank}}
	results := &fakeResultStore{byID: map[uuid.UUID]*model.Result{}}
	courses := &fakeCourseStore{
		courses: map[int]*model.Course{
			testCourseID: {ID: testCourseID, Title: "Algorithms", TeacherID: testTeacherID},
		},
		enrolled: map[[2]int]bool{{testStudentID, testCourseID}: true},
	}
	notifier := &fakeNotifier{}

	return &attemptFixture{
		svc:       NewAttemptService(quizzes, questions, results, courses, nil, notifier, zerolog.Nop()),
		quiz:      quiz,
		questions: questions,
		results:   results,
		courses:   courses,
		notifier:  notifier,
	}
}

func TestStartAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("success serves capped set", func(t *testing.T) {
		bank := makePool(5)
		fx := newAttemptFixture(bank)
		fx.quiz.AttemptsCount = 3
		served, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, testStudentID, "key123")
		if err != nil {
			t.Fatalf("StartAttempt: %v", err)
		}
		if len(served) != 3 {
			t.Errorf("served %d questions, want 3", len(served))
		}
	})

	t.Run("unknown quiz", func(t *testing.T) {
		fx := newAttemptFixture(makePool(1))
		_, err := fx.svc.StartAttempt(ctx, uuid.New(), testStudentID, "key123")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("not enrolled", func(t *testing.T) {
		fx := newAttemptFixture(makePool(1))
		_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, 99, "key123")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		fx := newAttemptFixture(makePool(1))
		_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, testStudentID, "nope")
		if !errors.Is(err, ErrInvalidAccessKey) {
			t.Errorf("got %v, want ErrInvalidAccessKey", err)
		}
	})

	t.Run("before window opens", func(t *testing.T) {
		fx := newAttemptFixture(makePool(1))
		start := time.Now().Add(time.Hour)
		fx.quiz.StartTime = &start
		_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, testStudentID, "key123")
		if !errors.Is(err, ErrQuizNotStarted) {
			t.Errorf("got %v, want ErrQuizNotStarted", err)
		}
	})

	t.Run("empty pool", func(t *testing.T) {
		fx := newAttemptFixture(nil)
		_, err := fx.svc.StartAttempt(ctx, fx.quiz.ID, testStudentID, "key123")
		if !errors.Is(err, ErrNoQuestions) {
			t.Errorf("got %v, want ErrNoQuestions", err)
		}
	})
}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()

	q1 := mcq("a", 5)
	q2 := mcq("b", 10)
	fx := newAttemptFixture([]model.Question{q1, q2})

	res, err := fx.svc.SubmitAttempt(ctx, fx.quiz.ID, testStudentID, &model.SubmitAttemptRequest{
		Answers: map[string]string{q1.ID.String(): "A"},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Score != 5 {
		t.Errorf("score = %d, want 5", res.Score)
	}
	if res.TotalMarks != 15 {
		t.Errorf("total_marks = %d, want 15", res.TotalMarks)
	}
	if len(fx.results.byID) != 1 {
		t.Errorf("persisted %d results, want 1", len(fx.results.byID))
	}

	// The owning teacher gets notified.
	if len(fx.notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(fx.notifier.sent))
	}
	if n := fx.notifier.sent[0]; n.RecipientID == nil || *n.RecipientID != testTeacherID {
		t.Errorf("notification recipient = %v, want teacher %d", n.RecipientID, testTeacherID)
	}

	// A second submission is rejected.
	_, err = fx.svc.SubmitAttempt(ctx, fx.quiz.ID, testStudentID, &model.SubmitAttemptRequest{
		Answers: map[string]string{},
	})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("got %v, want ErrAlreadySubmitted", err)
	}
}

func TestSubmitAttemptRequiresEnrollment(t *testing.T) {
	fx := newAttemptFixture(makePool(2))
	_, err := fx.svc.SubmitAttempt(context.Background(), fx.quiz.ID, 99, &model.SubmitAttemptRequest{
		Answers: map[string]string{},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("got %v, want ErrForbidden", err)
	}
}

func TestRegrade(t *testing.T) {
	ctx := context.Background()

	q1 := mcq("a", 5)
	desc := model.Question{
		ID:           uuid.New(),
		Text:         "explain",
		PointValue:   10,
		QuestionType: model.QuestionTypeDescription,
	}
	fx := newAttemptFixture([]model.Question{q1, desc})

	res, err := fx.svc.SubmitAttempt(ctx, fx.quiz.ID, testStudentID, &model.SubmitAttemptRequest{
		Answers: map[string]string{
			q1.ID.String():   "b",
			desc.ID.String(): "an essay",
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Score != 0 {
		t.Fatalf("initial score = %d, want 0", res.Score)
	}

	t.Run("foreign teacher is rejected", func(t *testing.T) {
		_, err := fx.svc.Regrade(ctx, res.ID, 42, &model.RegradeRequest{})
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("got %v, want ErrForbidden", err)
		}
	})

	t.Run("answer patch and manual score", func(t *testing.T) {
		regraded, err := fx.svc.Regrade(ctx, res.ID, testTeacherID, &model.RegradeRequest{
			Answers: map[string]string{q1.ID.String(): "a"},
			Feedback: map[string]model.AnswerFeedback{
				desc.ID.String(): {Score: json.RawMessage(`7`), Comment: "solid"},
			},
		})
		if err != nil {
			t.Fatalf("Regrade: %v", err)
		}
		if regraded.Score != 12 {
			t.Errorf("score = %d, want 12", regraded.Score)
		}
		if regraded.TotalMarks != res.TotalMarks {
			t.Errorf("total_marks changed from %d to %d during regrade", res.TotalMarks, regraded.TotalMarks)
		}
		if regraded.Answers[desc.ID.String()] != "an essay" {
			t.Errorf("unpatched answer was lost")
		}

		stored, _ := fx.results.GetByID(ctx, res.ID)
		if stored.Score != 12 {
			t.Errorf("persisted score = %d, want 12", stored.Score)
		}
	})

	t.Run("repeat regrade is idempotent", func(t *testing.T) {
		again, err := fx.svc.Regrade(ctx, res.ID, testTeacherID, &model.RegradeRequest{})
		if err != nil {
			t.Fatalf("Regrade: %v", err)
		}
		if again.Score != 12 {
			t.Errorf("score = %d after empty regrade, want 12", again.Score)
		}
	})

	t.Run("malformed manual score falls back to auto grade", func(t *testing.T) {
		regraded, err := fx.svc.Regrade(ctx, res.ID, testTeacherID, &model.RegradeRequest{
			Feedback: map[string]model.AnswerFeedback{
				q1.ID.String(): {Score: json.RawMessage(`"great work"`)},
			},
		})
		if err != nil {
			t.Fatalf("Regrade: %v", err)
		}
		// q1's answer was patched to "a" earlier, so auto-grade awards 5;
		// the description keeps its 7 override.
		if regraded.Score != 12 {
			t.Errorf("score = %d, want 12", regraded.Score)
		}
	})

	t.Run("snapshot survives bank growth", func(t *testing.T) {
		grown := append(fx.questions.byQuiz[fx.quiz.ID], mcq("c", 100))
		fx.questions.byQuiz[fx.quiz.ID] = grown

		regraded, err := fx.svc.Regrade(ctx, res.ID, testTeacherID, &model.RegradeRequest{})
		if err != nil {
			t.Fatalf("Regrade: %v", err)
		}
		if regraded.TotalMarks != 15 {
			t.Errorf("total_marks = %d, want the original snapshot 15", regraded.TotalMarks)
		}
	})

	t.Run("student is notified", func(t *testing.T) {
		found := false
		for _, n := range fx.notifier.sent {
			if n.RecipientID != nil && *n.RecipientID == testStudentID {
				found = true
			}
		}
		if !found {
			t.Error("no regrade notification reached the student")
		}
	})
}

func TestRegradeUnknownResult(t *testing.T) {
	fx := newAttemptFixture(makePool(1))
	_, err := fx.svc.Regrade(context.Background(), uuid.New(), testTeacherID, &model.RegradeRequest{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestValidateAccessLifecycle(t *testing.T) {
	ctx := context.Background()
	fx := newAttemptFixture(makePool(1))

	if err := fx.svc.ValidateAccess(ctx, fx.quiz.ID, "key123"); err != nil {
		t.Errorf("valid key rejected: %v", err)
	}
	if err := fx.svc.ValidateAccess(ctx, fx.quiz.ID, "bad"); !errors.Is(err, ErrInvalidAccessKey) {
		t.Errorf("got %v, want ErrInvalidAccessKey", err)
	}
	if err := fx.svc.ValidateAccess(ctx, uuid.New(), "key123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
