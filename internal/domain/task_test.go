package domain

import (
	"testing"
	"time"
)

func TestPriority_Rank(t *testing.T) {
	tests := []struct {
		priority Priority
		want     int
	}{
		{PriorityUrgent, 4},
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority("critical"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := tt.priority.Rank(); got != tt.want {
				t.Errorf("Priority.Rank() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false", s)
		}
	}
	if Status("blocked").Valid() {
		t.Error("Status(blocked).Valid() = true, want false")
	}
}

func TestCategory_Short(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryWork, "W"},
		{CategoryPersonal, "P"},
		{CategoryShopping, "S"},
		{CategoryHealth, "H"},
		{CategoryLearning, "L"},
		{CategoryOther, "O"},
		{Category("unknown"), "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			if got := tt.category.Short(); got != tt.want {
				t.Errorf("Category.Short() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusTodo}, false},
		{"past todo", Task{Status: StatusTodo, DueDate: &past}, true},
		{"past in progress", Task{Status: StatusInProgress, DueDate: &past}, true},
		{"past completed", Task{Status: StatusCompleted, DueDate: &past}, false},
		{"future", Task{Status: StatusTodo, DueDate: &future}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := time.Now()
	est := 30
	orig := Task{ID: "t-1", Tags: []string{"a"}, DueDate: &due, EstimatedTime: &est}

	c := orig.Clone()
	c.Tags[0] = "changed"
	*c.DueDate = due.Add(time.Hour)
	*c.EstimatedTime = 99

	if orig.Tags[0] != "a" {
		t.Error("Clone() shares tags slice")
	}
	if !orig.DueDate.Equal(due) {
		t.Error("Clone() shares due date pointer")
	}
	if *orig.EstimatedTime != 30 {
		t.Error("Clone() shares estimate pointer")
	}
}
