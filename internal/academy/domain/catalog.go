package domain

import "time"

type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Type        string
	Description string
	PostedAt    time.Time
	Deadline    *time.Time
}

type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
}

type Resource struct {
	ID          string
	Title       string
	Description string
	Category    string
	URL         string
	CreatedAt   time.Time
}
