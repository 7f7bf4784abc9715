package notify

import (
	"testing"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemIDs(c *Center) []string {
	var out []string
	for _, n := range c.Items() {
		out = append(out, n.ID)
	}
	return out
}

func TestCenter_Rules(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		stats domain.Stats
		want  []string
	}{
		{"nothing", domain.Stats{}, nil},
		{"overdue", domain.Stats{Overdue: 2}, []string{IDOverdue}},
		{"productivity just under", domain.Stats{ProductivityScore: 89}, nil},
		{"productivity at milestone", domain.Stats{ProductivityScore: 90}, []string{IDProductivity}},
		{"daily goal", domain.Stats{CompletedToday: 5}, []string{IDDailyGoal}},
		{"weekly", domain.Stats{CompletedThisWeek: 7}, []string{IDWeekly}},
		{
			"everything",
			domain.Stats{Overdue: 1, ProductivityScore: 100, CompletedToday: 9, CompletedThisWeek: 9},
			[]string{IDOverdue, IDProductivity, IDDailyGoal, IDWeekly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCenter(DefaultThresholds(), nil)
			c.Refresh(tt.stats, now)
			assert.Equal(t, tt.want, itemIDs(c))
			assert.Equal(t, len(tt.want), c.Unread())
		})
	}
}

func TestCenter_OverdueMessage(t *testing.T) {
	c := NewCenter(DefaultThresholds(), nil)

	c.Refresh(domain.Stats{Overdue: 1}, time.Now())
	assert.Equal(t, "You have 1 overdue task", c.Items()[0].Message)

	c.Refresh(domain.Stats{Overdue: 3}, time.Now())
	assert.Equal(t, "You have 3 overdue tasks", c.Items()[0].Message)
}

func TestCenter_RefreshReportsOnlyNew(t *testing.T) {
	c := NewCenter(DefaultThresholds(), nil)
	now := time.Now()

	raised := c.Refresh(domain.Stats{Overdue: 1}, now)
	require.Len(t, raised, 1)

	raised = c.Refresh(domain.Stats{Overdue: 2}, now.Add(time.Minute))
	assert.Empty(t, raised)
	assert.Equal(t, now, c.Items()[0].Timestamp, "timestamp kept across refresh")

	raised = c.Refresh(domain.Stats{Overdue: 2, CompletedToday: 5}, now)
	require.Len(t, raised, 1)
	assert.Equal(t, IDDailyGoal, raised[0].ID)
}

func TestCenter_MarkRead(t *testing.T) {
	c := NewCenter(DefaultThresholds(), nil)
	stats := domain.Stats{Overdue: 1, CompletedToday: 5}
	c.Refresh(stats, time.Now())
	require.Equal(t, 2, c.Unread())

	assert.True(t, c.MarkRead(IDOverdue))
	assert.False(t, c.MarkRead("missing"))
	assert.Equal(t, 1, c.Unread())

	c.Refresh(stats, time.Now())
	assert.Equal(t, 1, c.Unread(), "read state survives refresh")

	c.MarkAllRead()
	assert.Equal(t, 0, c.Unread())
}

func TestCenter_Dismiss(t *testing.T) {
	c := NewCenter(DefaultThresholds(), nil)
	overdue := domain.Stats{Overdue: 1}
	c.Refresh(overdue, time.Now())

	assert.True(t, c.Dismiss(IDOverdue))
	assert.False(t, c.Dismiss(IDOverdue))
	assert.Equal(t, 0, c.Len())

	c.Refresh(overdue, time.Now())
	assert.Equal(t, 0, c.Len(), "dismissed while condition holds")

	c.Refresh(domain.Stats{}, time.Now())
	raised := c.Refresh(overdue, time.Now())
	assert.Len(t, raised, 1, "returns once the condition clears and recurs")
}

func TestCenter_Push(t *testing.T) {
	c := NewCenter(DefaultThresholds(), nil)
	c.Refresh(domain.Stats{Overdue: 1}, time.Now())

	c.Push(Notification{ID: "timer-1", Kind: KindSuccess, Title: "Focus session complete"})
	assert.Equal(t, []string{"timer-1", IDOverdue}, itemIDs(c))

	c.Refresh(domain.Stats{Overdue: 1}, time.Now())
	assert.Equal(t, []string{IDOverdue, "timer-1"}, itemIDs(c), "rules go on top after refresh")

	c.Refresh(domain.Stats{}, time.Now())
	assert.Equal(t, []string{"timer-1"}, itemIDs(c), "ad-hoc entries survive refresh")

	c.Push(Notification{ID: "timer-1", Title: "again"})
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "again", c.Items()[0].Title)

	assert.True(t, c.Dismiss("timer-1"))
	assert.Equal(t, 0, c.Len())
}

func TestCenter_DisabledThresholds(t *testing.T) {
	c := NewCenter(Thresholds{}, nil)
	c.Refresh(domain.Stats{ProductivityScore: 100, CompletedToday: 50, CompletedThisWeek: 50}, time.Now())
	assert.Equal(t, 0, c.Len())
}
