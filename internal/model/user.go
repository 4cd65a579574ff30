package model

import "time"

// UserRole distinguishes the two account types. Role is the sole
// authorization signal in the system.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
)

// User represents a registered account, student or teacher.
type User struct {
	ID           int      `json:"id"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email"`
	Mobile       string   `json:"mobile,omitempty"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`

	// Student-specific
	StudentNumber *string `json:"student_number,omitempty"`

	// Teacher-specific
	Degree *string `json:"degree,omitempty"`

	// Common optional profile fields
	Department *string   `json:"department,omitempty"`
	University *string   `json:"university,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	FullName      string  `json:"full_name" binding:"required,min=2,max=255"`
	Email         string  `json:"email" binding:"required,email"`
	Mobile        string  `json:"mobile" binding:"omitempty,max=20"`
	Password      string  `json:"password" binding:"required,min=8,max=72"`
	Role          string  `json:"role" binding:"required,oneof=student teacher"`
	StudentNumber *string `json:"student_number" binding:"omitempty,max=50"`
	Degree        *string `json:"degree" binding:"omitempty,max=100"`
	Department    *string `json:"department" binding:"omitempty,max=100"`
	University    *string `json:"university" binding:"omitempty,max=150"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
