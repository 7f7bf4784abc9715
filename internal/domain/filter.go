package domain

import (
	"strings"
	"time"
)

// Filter selects a subset of tasks for display
type Filter string

const (
	FilterAll        Filter = "all"
	FilterTodo       Filter = "todo"
	FilterInProgress Filter = "in-progress"
	FilterCompleted  Filter = "completed"
	FilterOverdue    Filter = "overdue"
	FilterToday      Filter = "today"
	FilterThisWeek   Filter = "this-week"
)

// Filters lists every filter in menu order
var Filters = []Filter{
	FilterAll,
	FilterTodo,
	FilterInProgress,
	FilterCompleted,
	FilterOverdue,
	FilterToday,
	FilterThisWeek,
}

// Valid reports whether f is one of the known filters
func (f Filter) Valid() bool {
	for _, known := range Filters {
		if f == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable label
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterTodo:
		return "To do"
	case FilterInProgress:
		return "In progress"
	case FilterCompleted:
		return "Completed"
	case FilterOverdue:
		return "Overdue"
	case FilterToday:
		return "Due today"
	case FilterThisWeek:
		return "Due this week"
	default:
		return "Unknown"
	}
}

// Matches returns true if the task passes the filter at the given instant
func (f Filter) Matches(t Task, now time.Time) bool {
	switch f {
	case FilterTodo:
		return t.Status == StatusTodo
	case FilterInProgress:
		return t.Status == StatusInProgress
	case FilterCompleted:
		return t.Status == StatusCompleted
	case FilterOverdue:
		return t.IsOverdue(now)
	case FilterToday:
		if t.DueDate == nil {
			return false
		}
		start := StartOfDay(now)
		end := start.AddDate(0, 0, 1)
		return !t.DueDate.Before(start) && t.DueDate.Before(end)
	case FilterThisWeek:
		if t.DueDate == nil {
			return false
		}
		start := StartOfDay(now)
		end := start.AddDate(0, 0, 7)
		return !t.DueDate.Before(start) && !t.DueDate.After(end)
	default:
		return true
	}
}

// MatchesSearch returns true if the lowercased query is a substring of the
// title, the description, or any tag. An empty query matches everything.
func MatchesSearch(t Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// StartOfDay returns local midnight of the day containing now
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
