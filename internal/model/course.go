package model

import "time"

// Course represents a course taught by a teacher.
type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	CourseCode      string    `json:"course_code"`
	Subject         string    `json:"subject,omitempty"`
	Semester        string    `json:"semester,omitempty"`
	Batch           string    `json:"batch,omitempty"`
	Description     string    `json:"description,omitempty"`
	BannerURL       *string   `json:"banner_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	SelfJoinEnabled bool      `json:"self_join_enabled"`
	AccessKey       string    `json:"access_key,omitempty"`
	TeacherID       int       `json:"teacher_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         int       `json:"id"`
	StudentID  int       `json:"student_id"`
	CourseID   int       `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// CreateCourseRequest is the payload for creating or updating a course.
type CreateCourseRequest struct {
	Title           string  `json:"title" binding:"required,min=3,max=255"`
	CourseCode      string  `json:"course_code" binding:"required,min=2,max=50"`
	Subject         string  `json:"subject" binding:"omitempty,max=100"`
	Semester        string  `json:"semester" binding:"omitempty,max=50"`
	Batch           string  `json:"batch" binding:"omitempty,max=50"`
	Description     string  `json:"description" binding:"omitempty,max=2000"`
	BannerURL       *string `json:"banner_url" binding:"omitempty,url"`
	IsActive        *bool   `json:"is_active" binding:"omitempty"`
	SelfJoinEnabled *bool   `json:"self_join_enabled" binding:"omitempty"`
	AccessKey       string  `json:"access_key" binding:"omitempty,max=50"`
}

// EnrollRequest is the payload for a student joining a course.
type EnrollRequest struct {
	AccessKey string `json:"access_key" binding:"omitempty,max=50"`
}
