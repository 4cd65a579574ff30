package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/imon025/quizi-backend/internal/model"
	"github.com/imon025/quizi-backend/internal/repository"
)

// CourseService handles course management and enrollment.
type CourseService struct {
	courses  *repository.CourseRepository
	notifier Notifier
	log      zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses *repository.CourseRepository, notifier Notifier, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses:  courses,
		notifier: notifier,
		log:      log.With().Str("component", "course_service").Logger(),
	}
}

// Create registers a new course owned by the given teacher.
func (s *CourseService) Create(ctx context.Context, teacherID int, req *model.CreateCourseRequest) (*model.Course, error) {
	if _, err := s.courses.GetByCode(ctx, req.CourseCode); err == nil {
		return nil, fmt.Errorf("course code %q: %w", req.CourseCode, ErrConflict)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	course := &model.Course{
		Title:       req.Title,
		CourseCode:  req.CourseCode,
		Subject:     req.Subject,
		Semester:    req.Semester,
		Batch:       req.Batch,
		Description: req.Description,
		BannerURL:   req.BannerURL,
		IsActive:    true,
		AccessKey:   req.AccessKey,
		TeacherID:   teacherID,
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if req.SelfJoinEnabled != nil {
		course.SelfJoinEnabled = *req.SelfJoinEnabled
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.log.Info().Int("course_id", course.ID).Int("teacher_id", teacherID).Msg("course created")

	s.notifier.Notify(ctx, model.Notification{
		Title:   "New Course Available",
		Message: fmt.Sprintf("Course %q (%s) is now open.", course.Title, course.CourseCode),
		Type:    model.NotificationTypeCourse,
	})
	return course, nil
}

// Get retrieves a course by id.
func (s *CourseService) Get(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err)
	}
	return course, nil
}

// ListForUser retrieves the courses visible to a user: taught courses for
// teachers, enrolled courses for students.
func (s *CourseService) ListForUser(ctx context.Context, userID int, role model.UserRole) ([]model.Course, error) {
	if role == model.UserRoleTeacher {
		return s.courses.ListByTeacher(ctx, userID)
	}
	return s.courses.ListEnrolled(ctx, userID)
}

// ListAvailable retrieves every course, for students browsing joinable ones.
func (s *CourseService) ListAvailable(ctx context.Context) ([]model.Course, error) {
	return s.courses.ListAll(ctx)
}

// Update modifies a course owned by the given teacher.
func (s *CourseService) Update(ctx context.Context, courseID, teacherID int, req *model.CreateCourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(ctx, courseID, teacherID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.CourseCode = req.CourseCode
	course.Subject = req.Subject
	course.Semester = req.Semester
	course.Batch = req.Batch
	course.Description = req.Description
	course.BannerURL = req.BannerURL
	course.AccessKey = req.AccessKey
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}
	if req.SelfJoinEnabled != nil {
		course.SelfJoinEnabled = *req.SelfJoinEnabled
	}
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return course, nil
}

// Delete removes a course owned by the given teacher. Quizzes, questions,
// and results under it cascade away.
func (s *CourseService) Delete(ctx context.Context, courseID, teacherID int) error {
	if _, err := s.ownedCourse(ctx, courseID, teacherID); err != nil {
		return err
	}
	return s.courses.Delete(ctx, courseID)
}

// Enroll joins a student into a course through self-enrollment. The course
// must allow self-join and the presented key must match exactly, the same
// equality rule quizzes use.
func (s *CourseService) Enroll(ctx context.Context, courseID, studentID int, presentedKey string) (*model.Enrollment, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if !course.SelfJoinEnabled {
		return nil, ErrSelfJoinDisabled
	}
	if presentedKey != course.AccessKey {
		return nil, ErrInvalidAccessKey
	}
	if _, err := s.courses.GetEnrollment(ctx, studentID, courseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.courses.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.log.Info().Int("course_id", courseID).Int("student_id", studentID).Msg("student enrolled")

	s.notifier.Notify(ctx, model.Notification{
		Title:       "New Enrollment",
		Message:     fmt.Sprintf("A student joined %q.", course.Title),
		Type:        model.NotificationTypeCourse,
		RecipientID: &course.TeacherID,
	})
	return enrollment, nil
}

// AddStudent enrolls a student directly, bypassing the self-join gate. Only
// the course owner may do this.
func (s *CourseService) AddStudent(ctx context.Context, courseID, teacherID, studentID int) (*model.Enrollment, error) {
	course, err := s.ownedCourse(ctx, courseID, teacherID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.GetEnrollment(ctx, studentID, courseID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	enrollment := &model.Enrollment{StudentID: studentID, CourseID: courseID}
	if err := s.courses.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}

	s.notifier.Notify(ctx, model.Notification{
		Title:       "Added to Course",
		Message:     fmt.Sprintf("You were enrolled in %q.", course.Title),
		Type:        model.NotificationTypeCourse,
		RecipientID: &studentID,
	})
	return enrollment, nil
}

func (s *CourseService) ownedCourse(ctx context.Context, courseID, teacherID int) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, orNotFound(err)
	}
	if course.TeacherID != teacherID {
		return nil, ErrForbidden
	}
	return course, nil
}
