package domain

import (
	"strconv"
	"strings"
	"time"
)

// DueDateLayout is the accepted input format for due dates
const DueDateLayout = "2006-01-02"

// TaskForm carries validated user input for creating a task
type TaskForm struct {
	Title         string
	Description   string
	Priority      Priority
	Category      Category
	Tags          []string
	DueDate       *time.Time
	EstimatedTime *int
}

// NewTaskForm returns a form with the default priority and category
func NewTaskForm(title string) TaskForm {
	return TaskForm{
		Title:    title,
		Priority: PriorityMedium,
		Category: CategoryOther,
	}
}

// Validate checks the form the same way the add form does before submitting
func (f TaskForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrBlankTitle}
	}
	if f.EstimatedTime != nil && *f.EstimatedTime <= 0 {
		return &ValidationError{Field: "estimate", Value: strconv.Itoa(*f.EstimatedTime), Err: ErrInvalidEstimate}
	}
	return nil
}

// ParseDueDate parses a YYYY-MM-DD string as local midnight in loc.
// An empty string yields nil without error.
func ParseDueDate(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DueDateLayout, s, loc)
	if err != nil {
		return nil, &ValidationError{Field: "due", Value: s, Err: ErrInvalidDueDate}
	}
	return &t, nil
}

// ParseEstimate parses a positive integer number of minutes.
// An empty string yields nil without error.
func ParseEstimate(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil, &ValidationError{Field: "estimate", Value: s, Err: ErrInvalidEstimate}
	}
	return &n, nil
}

// TaskPatch holds the fields an update may change. Nil fields are left alone;
// the Clear flags remove an optional field and win over its value.
// Status is deliberately absent: status changes go through the store's
// SetStatus and ToggleCompletion so CompletedAt stays consistent.
type TaskPatch struct {
	Title              *string
	Description        *string
	Priority           *Priority
	Category           *Category
	Tags               *[]string
	DueDate            *time.Time
	ClearDueDate       bool
	EstimatedTime      *int
	ClearEstimatedTime bool
	ActualTime         *int
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Category == nil &&
		p.Tags == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate &&
		p.EstimatedTime == nil &&
		!p.ClearEstimatedTime &&
		p.ActualTime == nil
}

// ApplyTo merges the patch into t. Blank titles, unknown enum values and
// negative minute counts are ignored so the task stays valid.
func (p TaskPatch) ApplyTo(t *Task) {
	if p.Title != nil {
		if title := strings.TrimSpace(*p.Title); title != "" {
			t.Title = title
		}
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}
	if p.Category != nil && p.Category.Valid() {
		t.Category = *p.Category
	}
	if p.Tags != nil {
		t.Tags = NormalizeTags(*p.Tags)
	}
	if p.ClearDueDate {
		t.DueDate = nil
	} else if p.DueDate != nil {
		t.DueDate = cloneTime(p.DueDate)
	}
	if p.ClearEstimatedTime {
		t.EstimatedTime = nil
	} else if p.EstimatedTime != nil && *p.EstimatedTime >= 0 {
		t.EstimatedTime = cloneInt(p.EstimatedTime)
	}
	if p.ActualTime != nil && *p.ActualTime >= 0 {
		t.ActualTime = cloneInt(p.ActualTime)
	}
}
