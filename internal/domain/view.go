package domain

import "time"

// Selection is the filter/sort/search state a view is derived from
type Selection struct {
	Filter Filter
	Sort   Sort
	Query  string
}

// DefaultSelection shows every task, newest first
func DefaultSelection() Selection {
	return Selection{Filter: FilterAll, Sort: SortByCreated}
}

// IsFiltering returns true if the selection hides any task
func (s Selection) IsFiltering() bool {
	return s.Query != "" || (s.Filter != FilterAll && s.Filter != "")
}

// Derive applies search, then filter, then sort. It is a pure function of
// its arguments: tasks is never modified and equal inputs give equal output.
func Derive(tasks []Task, sel Selection, now time.Time) []Task {
	matched := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !MatchesSearch(t, sel.Query) {
			continue
		}
		if !sel.Filter.Matches(t, now) {
			continue
		}
		matched = append(matched, t)
	}
	return sel.Sort.Apply(matched)
}
