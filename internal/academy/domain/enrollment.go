package domain

import "time"

type Enrollment struct {
	ID         string
	StudentID  string
	CourseID   string
	PaymentID  string
	EnrolledAt time.Time
}

type ModuleCompletion struct {
	StudentID   string
	ModuleID    string
	CourseID    string
	CompletedAt time.Time
}
