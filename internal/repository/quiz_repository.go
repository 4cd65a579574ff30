package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imon025/quizi-backend/internal/model"
)

// QuizRepository handles quiz data access.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, course_id, title, description, start_time, end_time, deadline,
	duration_minutes, passing_marks, total_marks, access_key, attempts_count, max_questions,
	shuffle_questions, shuffle_options, fullscreen_required, tab_switch_detection,
	eye_tracking_enabled, violation_limit, status, created_at, updated_at`

func scanQuiz(row interface{ Scan(...any) error }) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := row.Scan(&q.ID, &q.CourseID, &q.Title, &q.Description, &q.StartTime, &q.EndTime,
		&q.Deadline, &q.DurationMinutes, &q.PassingMarks, &q.TotalMarks, &q.AccessKey,
		&q.AttemptsCount, &q.MaxQuestions, &q.ShuffleQuestions, &q.ShuffleOptions,
		&q.FullscreenRequired, &q.TabSwitchDetection, &q.EyeTrackingEnabled,
		&q.ViolationLimit, &q.Status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a quiz by its UUID.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return scanQuiz(r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// ListByCourse retrieves all quizzes for a course.
func (r *QuizRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE course_id = $1 ORDER BY created_at DESC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, rows.Err()
}

// Create inserts a new quiz.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (course_id, title, description, start_time, end_time, deadline,
		                      duration_minutes, passing_marks, total_marks, access_key,
		                      attempts_count, max_questions, shuffle_questions, shuffle_options,
		                      fullscreen_required, tab_switch_detection, eye_tracking_enabled,
		                      violation_limit, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		 RETURNING id, created_at, updated_at`,
		q.CourseID, q.Title, q.Description, q.StartTime, q.EndTime, q.Deadline,
		q.DurationMinutes, q.PassingMarks, q.TotalMarks, q.AccessKey,
		q.AttemptsCount, q.MaxQuestions, q.ShuffleQuestions, q.ShuffleOptions,
		q.FullscreenRequired, q.TabSwitchDetection, q.EyeTrackingEnabled,
		q.ViolationLimit, q.Status,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

// Update modifies an existing quiz. TotalMarks is intentionally not written
// here; it is owned by the question-mutation recompute.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quizzes
		 SET title = $1, description = $2, start_time = $3, end_time = $4, deadline = $5,
		     duration_minutes = $6, passing_marks = $7, access_key = $8, attempts_count = $9,
		     max_questions = $10, shuffle_questions = $11, shuffle_options = $12,
		     fullscreen_required = $13, tab_switch_detection = $14, eye_tracking_enabled = $15,
		     violation_limit = $16, status = $17, updated_at = NOW()
		 WHERE id = $18`,
		q.Title, q.Description, q.StartTime, q.EndTime, q.Deadline,
		q.DurationMinutes, q.PassingMarks, q.AccessKey, q.AttemptsCount,
		q.MaxQuestions, q.ShuffleQuestions, q.ShuffleOptions,
		q.FullscreenRequired, q.TabSwitchDetection, q.EyeTrackingEnabled,
		q.ViolationLimit, q.Status, q.ID)
	return err
}

// Delete removes a quiz. Questions and results cascade.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}
