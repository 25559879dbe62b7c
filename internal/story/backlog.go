package story

import (
	"errors"

	"taskhive-api/internal/models"
)

// ErrAlreadyMember is returned when a story id is added to a backlog it
// already belongs to.
var ErrAlreadyMember = errors.New("story is already in the sprint backlog")

// Backlog is an ordered set of story identifiers belonging to a sprint.
type Backlog []string

// Contains reports whether id is in the backlog.
func (b Backlog) Contains(id string) bool {
	for _, s := range b {
		if s == id {
			return true
		}
	}
	return false
}

// Add appends id, preserving insertion order. Adding an existing member
// fails with ErrAlreadyMember so double-submits surface to the caller.
func (b Backlog) Add(id string) (Backlog, error) {
	if b.Contains(id) {
		return b, ErrAlreadyMember
	}
	return append(b, id), nil
}

// Remove removes id if present. Removing an absent id is a no-op, since
// UI-driven double removal is expected.
func (b Backlog) Remove(id string) Backlog {
	for i, s := range b {
		if s == id {
			return append(b[:i:i], b[i+1:]...)
		}
	}
	return b
}

// Filter is a predicate over stories used to narrow the available pool.
type Filter func(models.Story) bool

// ByAssignee keeps stories whose assignee set contains name.
func ByAssignee(name string) Filter {
	return func(s models.Story) bool {
		for _, a := range SplitAssignees(s.AssigneeName) {
			if a == name {
				return true
			}
		}
		return false
	}
}

// ByType keeps stories of the given type.
func ByType(t models.StoryType) Filter {
	return func(s models.Story) bool {
		return s.Type == t
	}
}

// Available returns the stories not yet in the backlog, keeping only those
// that pass every filter.
func Available(all []models.Story, b Backlog, filters ...Filter) []models.Story {
	out := make([]models.Story, 0, len(all))
next:
	for _, s := range all {
		if b.Contains(s.StoryID) {
			continue
		}
		for _, keep := range filters {
			if !keep(s) {
				continue next
			}
		}
		out = append(out, s)
	}
	return out
}
