package cli

import (
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/tasks"
)

type demoTask struct {
	title       string
	description string
	priority    domain.Priority
	category    domain.Category
	tags        []string
	dueInDays   *int
	estimate    int
	status      domain.Status
	actual      int
}

func days(n int) *int { return &n }

var demoTasks = []demoTask{
	{title: "Renew passport", priority: domain.PriorityHigh, category: domain.CategoryPersonal,
		tags: []string{"admin"}, dueInDays: days(-2), estimate: 30},
	{title: "Read chapter 4 of the Go book", priority: domain.PriorityLow, category: domain.CategoryLearning,
		tags: []string{"go", "reading"}, estimate: 45, status: domain.StatusCompleted, actual: 50},
	{title: "Buy groceries", description: "Milk, eggs, coffee beans", priority: domain.PriorityMedium,
		category: domain.CategoryShopping, dueInDays: days(0), estimate: 20, status: domain.StatusCompleted, actual: 25},
	{title: "Morning run", priority: domain.PriorityMedium, category: domain.CategoryHealth,
		tags: []string{"fitness"}, estimate: 40, status: domain.StatusInProgress},
	{title: "Prepare sprint demo", description: "Slides plus a short live walkthrough",
		priority: domain.PriorityUrgent, category: domain.CategoryWork, tags: []string{"sprint", "demo"},
		dueInDays: days(1), estimate: 90, status: domain.StatusInProgress},
	{title: "Review pull requests", priority: domain.PriorityHigh, category: domain.CategoryWork,
		tags: []string{"review"}, dueInDays: days(3), estimate: 60},
	{title: "Cancel unused subscription", priority: domain.PriorityLow, category: domain.CategoryOther,
		status: domain.StatusCancelled},
}

// SeedDemo fills store with sample tasks through the normal store
// operations and returns how many were added
func SeedDemo(store *tasks.Store, now time.Time) int {
	today := domain.StartOfDay(now)
	added := 0

	for _, d := range demoTasks {
		form := domain.NewTaskForm(d.title)
		form.Description = d.description
		form.Priority = d.priority
		form.Category = d.category
		form.Tags = d.tags
		if d.dueInDays != nil {
			due := today.AddDate(0, 0, *d.dueInDays)
			form.DueDate = &due
		}
		if d.estimate > 0 {
			est := d.estimate
			form.EstimatedTime = &est
		}

		task, ok := store.Add(form)
		if !ok {
			continue
		}
		added++

		if d.status != "" && d.status != domain.StatusTodo {
			store.SetStatus(task.ID, d.status)
		}
		if d.actual > 0 {
			actual := d.actual
			store.Update(task.ID, domain.TaskPatch{ActualTime: &actual})
		}
	}
	return added
}
