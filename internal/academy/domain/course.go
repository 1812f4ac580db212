package domain

import "time"

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseDraft, CoursePublished, CourseArchived:
		return true
	}
	return false
}

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID            string
	Title         string
	Description   string
	Price         float64
	Currency      string
	Thumbnail     string
	Category      string
	Level         Level
	DurationHours float64
	Status        CourseStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Module is one video unit of a course. OrderIndex is dense per course,
// starting at 0.
type Module struct {
	ID              string
	CourseID        string
	Title           string
	Description     string
	VideoURL        string
	OrderIndex      int
	DurationMinutes int
	CreatedAt       time.Time
}
