package story

import (
	"testing"
	"time"

	"taskhive-api/internal/models"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC)

func TestIsOverdue(t *testing.T) {
	require.True(t, IsOverdue(models.Story{Status: models.StatusPending, Deadline: "2000-01-01"}, testNow))
	require.True(t, IsOverdue(models.Story{Status: models.StatusInProgress, Deadline: "2023-12-31"}, testNow))

	// Completed stories are never overdue, regardless of deadline
	require.False(t, IsOverdue(models.Story{Status: models.StatusCompleted, Deadline: "2000-01-01"}, testNow))

	// Future or same-day deadlines do not flag
	require.False(t, IsOverdue(models.Story{Status: models.StatusPending, Deadline: "2024-06-01"}, testNow))
	require.False(t, IsOverdue(models.Story{Status: models.StatusPending, Deadline: "2024-01-01"}, testNow))

	// Missing or unparseable deadlines do not flag
	require.False(t, IsOverdue(models.Story{Status: models.StatusPending}, testNow))
	require.False(t, IsOverdue(models.Story{Status: models.StatusPending, Deadline: "not-a-date"}, testNow))
}

func TestIsOverdue_DateOnlyComparison(t *testing.T) {
	// Deadline yesterday is overdue even just after midnight
	justAfterMidnight := time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC)
	s := models.Story{Status: models.StatusPending, Deadline: "2024-01-01"}
	require.True(t, IsOverdue(s, justAfterMidnight))
}

func TestEffectiveStatus(t *testing.T) {
	overdue := models.Story{Status: models.StatusPending, Deadline: "2000-01-01"}
	require.Equal(t, models.StatusOverdue, EffectiveStatus(overdue, testNow))

	onTrack := models.Story{Status: models.StatusInProgress, Deadline: "2099-01-01"}
	require.Equal(t, models.StatusInProgress, EffectiveStatus(onTrack, testNow))

	done := models.Story{Status: models.StatusCompleted, Deadline: "2000-01-01"}
	require.Equal(t, models.StatusCompleted, EffectiveStatus(done, testNow))
}

func TestNextStatus_ForwardTransitions(t *testing.T) {
	next, ok := NextStatus(models.Story{Status: models.StatusPending}, testNow, false)
	require.True(t, ok)
	require.Equal(t, models.StatusInProgress, next)

	// Overdue pending stories still progress forward
	next, ok = NextStatus(models.Story{Status: models.StatusPending, Deadline: "2000-01-01"}, testNow, false)
	require.True(t, ok)
	require.Equal(t, models.StatusInProgress, next)

	next, ok = NextStatus(models.Story{Status: models.StatusInProgress}, testNow, false)
	require.True(t, ok)
	require.Equal(t, models.StatusCompleted, next)
}

func TestNextStatus_ReopenIsAdminOnly(t *testing.T) {
	done := models.Story{Status: models.StatusCompleted}

	_, ok := NextStatus(done, testNow, false)
	require.False(t, ok)

	next, ok := NextStatus(done, testNow, true)
	require.True(t, ok)
	require.Equal(t, models.StatusInProgress, next)
}

func TestNextStatus_UnknownStatus(t *testing.T) {
	_, ok := NextStatus(models.Story{Status: models.StoryStatus("Archived")}, testNow, true)
	require.False(t, ok)
}

func TestActionLabel(t *testing.T) {
	require.Equal(t, LabelStartTask,
		ActionLabel(models.Story{Status: models.StatusPending}, testNow, false))
	require.Equal(t, LabelStartTask,
		ActionLabel(models.Story{Status: models.StatusPending, Deadline: "2000-01-01"}, testNow, false))
	require.Equal(t, LabelMarkComplete,
		ActionLabel(models.Story{Status: models.StatusInProgress}, testNow, false))

	// No transition available: label is the effective status badge
	require.Equal(t, "Completed",
		ActionLabel(models.Story{Status: models.StatusCompleted}, testNow, false))

	// Admins get the reopen action instead of a badge
	require.Equal(t, LabelStartTask,
		ActionLabel(models.Story{Status: models.StatusCompleted}, testNow, true))
}

func TestProgressFor(t *testing.T) {
	require.Equal(t, 100, ProgressFor(models.StatusCompleted))
	require.Equal(t, 50, ProgressFor(models.StatusInProgress))
	require.Equal(t, 0, ProgressFor(models.StatusPending))
}
