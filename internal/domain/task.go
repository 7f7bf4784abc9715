// Package domain contains core business types for the TaskFlow application.
package domain

import "time"

// Task represents a unit of tracked work
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        Status     `json:"status"`
	Priority      Priority   `json:"priority"`
	Category      Category   `json:"category"`
	Tags          []string   `json:"tags"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	EstimatedTime *int       `json:"estimated_time,omitempty"` // minutes
	ActualTime    *int       `json:"actual_time,omitempty"`    // minutes
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// IsCompleted reports whether the task is in the completed status
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue reports whether the task has a past due date and is not completed
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// Clone returns a deep copy so callers cannot alias store-owned slices or pointers
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = make([]string, len(t.Tags))
		copy(c.Tags, t.Tags)
	}
	c.DueDate = cloneTime(t.DueDate)
	c.CompletedAt = cloneTime(t.CompletedAt)
	c.EstimatedTime = cloneInt(t.EstimatedTime)
	c.ActualTime = cloneInt(t.ActualTime)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

// Status represents the lifecycle stage of a task
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in display order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Label returns a human-readable label
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Icon returns a single glyph for list rendering
func (s Status) Icon() string {
	switch s {
	case StatusTodo:
		return "○"
	case StatusInProgress:
		return "◐"
	case StatusCompleted:
		return "●"
	case StatusCancelled:
		return "✕"
	default:
		return "?"
	}
}

// Priority represents task urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank returns the sort weight (urgent=4 > high=3 > medium=2 > low=1)
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// String returns the display string
func (p Priority) String() string {
	return string(p)
}

// Label returns a human-readable label
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Unknown"
	}
}

// Category groups tasks by area of life
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryShopping,
	CategoryHealth,
	CategoryLearning,
	CategoryOther,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the display string
func (c Category) String() string {
	return string(c)
}

// Label returns a human-readable label
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryPersonal:
		return "Personal"
	case CategoryShopping:
		return "Shopping"
	case CategoryHealth:
		return "Health"
	case CategoryLearning:
		return "Learning"
	case CategoryOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Short returns single character representation
func (c Category) Short() string {
	switch c {
	case CategoryWork:
		return "W"
	case CategoryPersonal:
		return "P"
	case CategoryShopping:
		return "S"
	case CategoryHealth:
		return "H"
	case CategoryLearning:
		return "L"
	case CategoryOther:
		return "O"
	default:
		return "?"
	}
}
