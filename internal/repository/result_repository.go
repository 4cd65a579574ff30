package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imon025/quizi-backend/internal/model"
)

// ResultRepository handles attempt result data access.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

func scanResult(row interface{ Scan(...any) error }) (*model.Result, error) {
	res := &model.Result{}
	var answers, feedback []byte
	err := row.Scan(&res.ID, &res.StudentID, &res.QuizID, &res.Score, &res.TotalMarks,
		&answers, &feedback, &res.EyeTrackingViolations, &res.Timeline, &res.CompletedAt)
	if err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	if len(feedback) > 0 {
		if err := json.Unmarshal(feedback, &res.Feedback); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
	}
	return res, nil
}

const resultColumns = `id, student_id, quiz_id, score, total_marks, answers, feedback,
	eye_tracking_violations, timeline, completed_at`

// Create inserts a new result row.
func (r *ResultRepository) Create(ctx context.Context, res *model.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	feedback, err := json.Marshal(res.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO results (student_id, quiz_id, score, total_marks, answers, feedback,
		                      eye_tracking_violations, timeline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, completed_at`,
		res.StudentID, res.QuizID, res.Score, res.TotalMarks, answers, feedback,
		res.EyeTrackingViolations, res.Timeline,
	).Scan(&res.ID, &res.CompletedAt)
}

// GetByID retrieves a result by id.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE id = $1`, id))
}

// GetByQuizAndStudent retrieves a student's result for a quiz, if any.
func (r *ResultRepository) GetByQuizAndStudent(ctx context.Context, quizID uuid.UUID, studentID int) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE quiz_id = $1 AND student_id = $2`,
		quizID, studentID))
}

// ListByStudent retrieves a student's results, newest first.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+` FROM results WHERE student_id = $1 ORDER BY completed_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}

// ListByTeacher retrieves all results for quizzes in courses taught by the
// given teacher.
func (r *ResultRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.student_id, r.quiz_id, r.score, r.total_marks, r.answers, r.feedback,
		        r.eye_tracking_violations, r.timeline, r.completed_at
		 FROM results r
		 JOIN quizzes q ON q.id = r.quiz_id
		 JOIN courses c ON c.id = q.course_id
		 WHERE c.teacher_id = $1
		 ORDER BY r.completed_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}

// UpdateGrading writes a regraded result's merged answers, feedback, and
// recomputed score in a single statement so no reader observes a partially
// merged state. The total_marks snapshot is never touched here.
func (r *ResultRepository) UpdateGrading(ctx context.Context, res *model.Result) error {
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	feedback, err := json.Marshal(res.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE results
		 SET score = $1, answers = $2, feedback = $3
		 WHERE id = $4`,
		res.Score, answers, feedback, res.ID)
	return err
}
