package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/imon025/quizi-backend/internal/model"
)

// CourseRepository handles course and enrollment data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, title, course_code, subject, semester, batch, description,
	banner_url, is_active, self_join_enabled, access_key, teacher_id, created_at`

func scanCourse(row interface{ Scan(...any) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Title, &c.CourseCode, &c.Subject, &c.Semester, &c.Batch,
		&c.Description, &c.BannerURL, &c.IsActive, &c.SelfJoinEnabled, &c.AccessKey,
		&c.TeacherID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (title, course_code, subject, semester, batch, description,
		                      banner_url, is_active, self_join_enabled, access_key, teacher_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		c.Title, c.CourseCode, c.Subject, c.Semester, c.Batch, c.Description,
		c.BannerURL, c.IsActive, c.SelfJoinEnabled, c.AccessKey, c.TeacherID,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
}

// GetByCode retrieves a course by its unique course code.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_code = $1`, code))
}

// ListAll retrieves every course, newest first.
func (r *CourseRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// ListByTeacher retrieves courses taught by a teacher.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE teacher_id = $1 ORDER BY created_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// ListEnrolled retrieves courses a student is enrolled in.
func (r *CourseRepository) ListEnrolled(ctx context.Context, studentID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.title, c.course_code, c.subject, c.semester, c.batch, c.description,
		        c.banner_url, c.is_active, c.self_join_enabled, c.access_key, c.teacher_id, c.created_at
		 FROM courses c
		 JOIN enrollments e ON e.course_id = c.id
		 WHERE e.student_id = $1
		 ORDER BY e.enrolled_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses
		 SET title = $1, course_code = $2, subject = $3, semester = $4, batch = $5,
		     description = $6, banner_url = $7, is_active = $8, self_join_enabled = $9,
		     access_key = $10
		 WHERE id = $11`,
		c.Title, c.CourseCode, c.Subject, c.Semester, c.Batch, c.Description,
		c.BannerURL, c.IsActive, c.SelfJoinEnabled, c.AccessKey, c.ID)
	return err
}

// Delete removes a course. Quizzes, questions, and results cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}

// CreateEnrollment links a student to a course.
func (r *CourseRepository) CreateEnrollment(ctx context.Context, e *model.Enrollment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id)
		 VALUES ($1, $2)
		 RETURNING id, enrolled_at`,
		e.StudentID, e.CourseID,
	).Scan(&e.ID, &e.EnrolledAt)
}

// GetEnrollment retrieves an enrollment for a (student, course) pair.
func (r *CourseRepository) GetEnrollment(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, course_id, enrolled_at
		 FROM enrollments WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID,
	).Scan(&e.ID, &e.StudentID, &e.CourseID, &e.EnrolledAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}
