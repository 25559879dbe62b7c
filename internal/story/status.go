package story

import (
	"time"

	"taskhive-api/internal/models"
)

// Action labels shown on the status-change button, keyed by target status.
const (
	LabelStartTask    = "Start Task"
	LabelMarkComplete = "Mark Complete"
)

func parseDeadline(dateStr string) (time.Time, bool) {
	if dateStr == "" {
		return time.Time{}, false
	}
	layouts := []string{
		"2006-01-02", // ISO date
		"2 Jan 2006",
		time.RFC3339,
		"02 Jan 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// truncateToDate drops the time-of-day component so deadline checks compare
// calendar dates, not instants.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether a story's deadline has passed. A Completed story
// is never overdue, and a missing or unparseable deadline never flags.
func IsOverdue(s models.Story, now time.Time) bool {
	if s.Status == models.StatusCompleted {
		return false
	}
	deadline, ok := parseDeadline(s.Deadline)
	if !ok {
		return false
	}
	return truncateToDate(deadline).Before(truncateToDate(now))
}

// EffectiveStatus returns the status to display: Overdue when the deadline
// has passed and the story is not completed, otherwise the stored status.
// Overdue is view-only and must never be written back.
func EffectiveStatus(s models.Story, now time.Time) models.StoryStatus {
	if IsOverdue(s, now) {
		return models.StatusOverdue
	}
	return s.Status
}

// NextStatus returns the legal forward transition for a story, or ok=false
// when no action is available. Reopening a completed story is admin-only.
func NextStatus(s models.Story, now time.Time, isAdmin bool) (models.StoryStatus, bool) {
	switch EffectiveStatus(s, now) {
	case models.StatusPending, models.StatusOverdue:
		return models.StatusInProgress, true
	case models.StatusInProgress:
		return models.StatusCompleted, true
	case models.StatusCompleted:
		if isAdmin {
			return models.StatusInProgress, true
		}
		return "", false
	default:
		return "", false
	}
}

// ActionLabel returns the label for the status-change control. When no
// transition is available the effective status itself is returned so the UI
// can render a static badge.
func ActionLabel(s models.Story, now time.Time, isAdmin bool) string {
	next, ok := NextStatus(s, now, isAdmin)
	if !ok {
		return string(EffectiveStatus(s, now))
	}
	switch next {
	case models.StatusInProgress:
		return LabelStartTask
	case models.StatusCompleted:
		return LabelMarkComplete
	default:
		return string(next)
	}
}

// ProgressFor returns the progress percentage implied by a stored status
// when it is set through the standard transition.
func ProgressFor(status models.StoryStatus) int {
	switch status {
	case models.StatusCompleted:
		return 100
	case models.StatusInProgress:
		return 50
	default:
		return 0
	}
}
