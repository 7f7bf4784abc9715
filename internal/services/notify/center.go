// Package notify derives user notifications from task statistics
package notify

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// Kind classifies a notification for display
type Kind string

const (
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Rule identifiers. Ad-hoc notifications use their own IDs.
const (
	IDOverdue      = "overdue-tasks"
	IDProductivity = "productivity-milestone"
	IDDailyGoal    = "daily-goal"
	IDWeekly       = "weekly-progress"
)

// Notification is a single entry in the center
type Notification struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// Thresholds controls when the stat-driven rules fire
type Thresholds struct {
	ProductivityMilestone int
	DailyGoal             int
	WeeklyGoal            int
}

// DefaultThresholds returns the stock goals
func DefaultThresholds() Thresholds {
	return Thresholds{
		ProductivityMilestone: 90,
		DailyGoal:             5,
		WeeklyGoal:            7,
	}
}

// Center holds the current notifications. Rule-driven entries appear while
// their condition holds and vanish when it stops holding. Read and
// dismissed state survives refreshes for as long as the condition holds.
type Center struct {
	thresholds Thresholds
	items      []Notification
	dismissed  map[string]bool
	logger     *slog.Logger
}

// NewCenter creates an empty center
func NewCenter(th Thresholds, logger *slog.Logger) *Center {
	if logger == nil {
		logger = slog.Default()
	}
	return &Center{
		thresholds: th,
		dismissed:  make(map[string]bool),
		logger:     logger,
	}
}

// Refresh re-evaluates the rules against stats and returns the
// notifications that were newly raised by this call
func (c *Center) Refresh(stats domain.Stats, now time.Time) []Notification {
	wanted := c.evaluate(stats, now)

	active := make(map[string]bool, len(wanted))
	for _, n := range wanted {
		active[n.ID] = true
	}

	// forget dismissals for rules that no longer hold
	for id := range c.dismissed {
		if isRule(id) && !active[id] {
			delete(c.dismissed, id)
		}
	}

	existing := make(map[string]Notification, len(c.items))
	next := make([]Notification, 0, len(wanted)+len(c.items))
	for _, n := range c.items {
		existing[n.ID] = n
		if !isRule(n.ID) {
			next = append(next, n)
		}
	}

	var raised []Notification
	var rules []Notification
	for _, n := range wanted {
		if c.dismissed[n.ID] {
			continue
		}
		if old, ok := existing[n.ID]; ok {
			n.Read = old.Read
			n.Timestamp = old.Timestamp
		} else {
			raised = append(raised, n)
			c.logger.Debug("notification raised", "id", n.ID)
		}
		rules = append(rules, n)
	}

	c.items = append(rules, next...)
	return raised
}

// Push adds an ad-hoc notification at the top, replacing one with the same ID
func (c *Center) Push(n Notification) {
	c.remove(n.ID)
	delete(c.dismissed, n.ID)
	c.items = append([]Notification{n}, c.items...)
}

// MarkRead flags a notification as read
func (c *Center) MarkRead(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead flags every notification as read
func (c *Center) MarkAllRead() {
	for i := range c.items {
		c.items[i].Read = true
	}
}

// Dismiss removes a notification until its condition next becomes true
func (c *Center) Dismiss(id string) bool {
	if !c.remove(id) {
		return false
	}
	if isRule(id) {
		c.dismissed[id] = true
	}
	return true
}

// Items returns a copy of the current notifications
func (c *Center) Items() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of notifications
func (c *Center) Len() int { return len(c.items) }

// Unread counts notifications not yet read
func (c *Center) Unread() int {
	n := 0
	for _, item := range c.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (c *Center) remove(id string) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Center) evaluate(s domain.Stats, now time.Time) []Notification {
	var out []Notification

	if s.Overdue > 0 {
		out = append(out, Notification{
			ID:        IDOverdue,
			Kind:      KindWarning,
			Title:     "Overdue tasks",
			Message:   fmt.Sprintf("You have %d overdue %s", s.Overdue, plural(s.Overdue, "task", "tasks")),
			Timestamp: now,
		})
	}
	if th := c.thresholds.ProductivityMilestone; th > 0 && s.ProductivityScore >= th {
		out = append(out, Notification{
			ID:        IDProductivity,
			Kind:      KindSuccess,
			Title:     "Excellent productivity!",
			Message:   fmt.Sprintf("You reached %d%% productivity", s.ProductivityScore),
			Timestamp: now,
		})
	}
	if th := c.thresholds.DailyGoal; th > 0 && s.CompletedToday >= th {
		out = append(out, Notification{
			ID:        IDDailyGoal,
			Kind:      KindSuccess,
			Title:     "Daily goal reached!",
			Message:   fmt.Sprintf("You completed %d tasks today", s.CompletedToday),
			Timestamp: now,
		})
	}
	if th := c.thresholds.WeeklyGoal; th > 0 && s.CompletedThisWeek >= th {
		out = append(out, Notification{
			ID:        IDWeekly,
			Kind:      KindInfo,
			Title:     "Weekly progress",
			Message:   fmt.Sprintf("Great work! %d tasks completed this week", s.CompletedThisWeek),
			Timestamp: now,
		})
	}
	return out
}

func isRule(id string) bool {
	switch id {
	case IDOverdue, IDProductivity, IDDailyGoal, IDWeekly:
		return true
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
