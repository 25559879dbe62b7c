package story

import (
	"strings"
)

// SplitAssignees parses the comma-joined assignee field into an
// order-preserving set: names are trimmed, empties dropped, duplicates
// removed keeping the first occurrence.
func SplitAssignees(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, part := range strings.Split(joined, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// JoinAssignees renders an assignee set back to the wire format.
func JoinAssignees(names []string) string {
	return strings.Join(SplitAssignees(strings.Join(names, ",")), ", ")
}
