package domain

import (
	"fmt"
	"math"
	"time"
)

// Stats is the aggregate view over a task collection. It is never stored.
type Stats struct {
	Total             int
	Todo              int
	InProgress        int
	Completed         int
	Cancelled         int
	Overdue           int
	CompletedToday    int
	CompletedThisWeek int

	TotalEstimatedTime int // minutes across all tasks
	TotalActualTime    int // minutes across completed tasks

	AverageCompletionTime time.Duration
	ProductivityScore     int // 0-100
}

// ComputeStats aggregates tasks as of now. "Today" is local midnight to the
// next local midnight; "this week" is the trailing seven days ending at now.
func ComputeStats(tasks []Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)

	dayStart := StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := now.AddDate(0, 0, -7)

	var completionTotal time.Duration
	completionCount := 0

	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		case StatusCancelled:
			s.Cancelled++
		}

		if t.IsOverdue(now) {
			s.Overdue++
		}

		if t.EstimatedTime != nil {
			s.TotalEstimatedTime += *t.EstimatedTime
		}

		if t.Status != StatusCompleted {
			continue
		}

		if t.ActualTime != nil {
			s.TotalActualTime += *t.ActualTime
		}

		if t.CompletedAt == nil {
			continue
		}
		done := *t.CompletedAt
		if !done.Before(dayStart) && done.Before(dayEnd) {
			s.CompletedToday++
		}
		if !done.Before(weekStart) && !done.After(now) {
			s.CompletedThisWeek++
		}
		if !t.CreatedAt.IsZero() {
			completionTotal += done.Sub(t.CreatedAt)
			completionCount++
		}
	}

	if completionCount > 0 {
		s.AverageCompletionTime = completionTotal / time.Duration(completionCount)
	}
	if s.Total > 0 {
		s.ProductivityScore = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}

	return s
}

// Efficiency is actual time as a percentage of estimated time
func (s Stats) Efficiency() int {
	if s.TotalEstimatedTime == 0 {
		return 0
	}
	return int(math.Round(float64(s.TotalActualTime) / float64(s.TotalEstimatedTime) * 100))
}

// Streak is the number of completions this week, capped at seven
func (s Stats) Streak() int {
	return min(s.CompletedThisWeek, 7)
}

// DailyAverage is the rounded mean completions per day over the past week
func (s Stats) DailyAverage() int {
	return int(math.Round(float64(s.CompletedThisWeek) / 7))
}

// CompletionRate returns completed over total as a fraction in [0,1]
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total)
}

// ProductivityLevel names the tier a productivity score falls in
func ProductivityLevel(score int) string {
	switch {
	case score >= 90:
		return "Ninja"
	case score >= 75:
		return "Expert"
	case score >= 60:
		return "Advanced"
	case score >= 40:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// FormatMinutes renders minutes as "45m", "2h" or "2h 5m"
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatDuration renders an average completion time at a useful granularity
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return FormatMinutes(int(d.Minutes()))
	default:
		days := int(d / (24 * time.Hour))
		hours := int((d % (24 * time.Hour)) / time.Hour)
		if hours == 0 {
			return fmt.Sprintf("%dd", days)
		}
		return fmt.Sprintf("%dd %dh", days, hours)
	}
}
