package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imon025/quizi-backend/internal/model"
)

// QuestionRepository handles question data access. Every mutation runs in a
// transaction together with a full recompute of the parent quiz's
// total_marks, so no reader ever observes a quiz whose total is stale
// relative to its questions.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByQuiz retrieves all questions for a quiz in insertion order.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, quiz_id, text, option_a, option_b, option_c, option_d,
		        correct_option, point_value, question_type
		 FROM questions WHERE quiz_id = $1
		 ORDER BY created_at, id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC,
			&q.OptionD, &q.CorrectOption, &q.PointValue, &q.QuestionType); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, quiz_id, text, option_a, option_b, option_c, option_d,
		        correct_option, point_value, question_type
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuizID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC,
		&q.OptionD, &q.CorrectOption, &q.PointValue, &q.QuestionType)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// Create inserts a question and recomputes the quiz total atomically.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.inTx(ctx, q.QuizID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO questions (quiz_id, text, option_a, option_b, option_c, option_d,
			                        correct_option, point_value, question_type)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			q.QuizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectOption, q.PointValue, q.QuestionType,
		).Scan(&q.ID)
	})
}

// BulkCreate inserts many questions and recomputes the quiz total in one
// transaction. Uses CopyFrom for throughput on large uploads.
func (r *QuestionRepository) BulkCreate(ctx context.Context, quizID uuid.UUID, questions []model.Question) error {
	return r.inTx(ctx, quizID, func(tx pgx.Tx) error {
		rows := make([][]interface{}, 0, len(questions))
		for i := range questions {
			q := &questions[i]
			rows = append(rows, []interface{}{
				quizID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
				q.CorrectOption, q.PointValue, q.QuestionType,
			})
		}
		n, err := tx.CopyFrom(ctx,
			pgx.Identifier{"questions"},
			[]string{"quiz_id", "text", "option_a", "option_b", "option_c", "option_d",
				"correct_option", "point_value", "question_type"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}
		if int(n) != len(questions) {
			return fmt.Errorf("bulk insert: expected %d rows, copied %d", len(questions), n)
		}
		return nil
	})
}

// Update modifies a question and recomputes the quiz total atomically.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return r.inTx(ctx, q.QuizID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`UPDATE questions
			 SET text = $1, option_a = $2, option_b = $3, option_c = $4, option_d = $5,
			     correct_option = $6, point_value = $7, question_type = $8
			 WHERE id = $9`,
			q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
			q.CorrectOption, q.PointValue, q.QuestionType, q.ID)
		return err
	})
}

// Delete removes a question and recomputes the quiz total atomically.
func (r *QuestionRepository) Delete(ctx context.Context, id, quizID uuid.UUID) error {
	return r.inTx(ctx, quizID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
		return err
	})
}

// inTx runs fn and the total_marks recompute for quizID in one transaction.
// The recompute is a full re-sum from the persisted question set, never an
// increment, so repeated or interleaved recomputes stay correct.
func (r *QuestionRepository) inTx(ctx context.Context, quizID uuid.UUID, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quizzes
		 SET total_marks = COALESCE((SELECT SUM(point_value) FROM questions WHERE quiz_id = $1), 0),
		     updated_at = NOW()
		 WHERE id = $1`, quizID); err != nil {
		return fmt.Errorf("recompute total marks: %w", err)
	}

	return tx.Commit(ctx)
}
