package domain

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort is an ordering rule applied after filtering
type Sort string

const (
	SortByCreated  Sort = "created"
	SortByUpdated  Sort = "updated"
	SortByPriority Sort = "priority"
	SortByDueDate  Sort = "dueDate"
	SortByTitle    Sort = "title"
)

// Sorts lists every sort in menu order
var Sorts = []Sort{SortByCreated, SortByUpdated, SortByPriority, SortByDueDate, SortByTitle}

// TitleLanguage drives the collation used for title sorting
var TitleLanguage = language.Und

// Valid reports whether s is one of the known sorts
func (s Sort) Valid() bool {
	for _, known := range Sorts {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns a human-readable label
func (s Sort) Label() string {
	switch s {
	case SortByCreated:
		return "Created"
	case SortByUpdated:
		return "Updated"
	case SortByPriority:
		return "Priority"
	case SortByDueDate:
		return "Due date"
	case SortByTitle:
		return "Title"
	default:
		return "Unknown"
	}
}

// Apply sorts a copy of tasks. The input slice is left untouched and
// equal elements keep their relative order.
func (s Sort) Apply(tasks []Task) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)
	if len(result) < 2 {
		return result
	}

	switch s {
	case SortByUpdated:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].UpdatedAt.After(result[j].UpdatedAt)
		})

	case SortByPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() > result[j].Priority.Rank()
		})

	case SortByDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].DueDate, result[j].DueDate
			switch {
			case a == nil:
				return false // undated tasks sink, tied among themselves
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})

	case SortByTitle:
		// Collator keeps internal buffers, so one per call
		c := collate.New(TitleLanguage)
		sort.SliceStable(result, func(i, j int) bool {
			return c.CompareString(result[i].Title, result[j].Title) < 0
		})

	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}
