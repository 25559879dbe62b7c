package story

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"taskhive-api/internal/models"
)

// DefaultPrefix is the organization code used when no company is configured.
const DefaultPrefix = "EMP"

// ErrUnknownType is returned when an identifier is requested for a story
// type outside Epic/Task/Bug.
var ErrUnknownType = errors.New("unknown story type")

var typeCodes = map[models.StoryType]string{
	models.TypeEpic: "E",
	models.TypeTask: "T",
	models.TypeBug:  "B",
}

var codeTypes = map[string]models.StoryType{
	"E": models.TypeEpic,
	"T": models.TypeTask,
	"B": models.TypeBug,
}

// idPattern matches identifiers like EMP-E1001. Anything else is treated as
// a foreign or legacy id, not an error.
var idPattern = regexp.MustCompile(`^(\w+)-([ETB])(\d+)$`)

// ParsedID is the decoded form of a story identifier
type ParsedID struct {
	Prefix   string
	Type     models.StoryType
	Sequence int
}

// Codec generates and parses typed story identifiers of the form
// {prefix}-{typeCode}{sequence}, e.g. EMP-E1001.
type Codec struct {
	prefix string
	seq    SequenceAllocator
}

// NewCodec returns a Codec using the given prefix and sequence allocator.
// An empty prefix falls back to DefaultPrefix.
func NewCodec(prefix string, seq SequenceAllocator) *Codec {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Codec{prefix: prefix, seq: seq}
}

// Generate allocates the next sequence number for storyType and returns the
// formatted identifier. Unknown types are rejected rather than falling back
// to a catch-all counter.
func (c *Codec) Generate(storyType models.StoryType) (string, error) {
	code, ok := typeCodes[storyType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, storyType)
	}
	n, err := c.seq.Next(storyType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s%d", c.prefix, code, n), nil
}

// Parse decodes a story identifier. It returns nil when the string does not
// match the identifier grammar; callers should treat that as an opaque id
// and degrade gracefully.
func Parse(id string) *ParsedID {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	return &ParsedID{
		Prefix:   m[1],
		Type:     codeTypes[m[2]],
		Sequence: n,
	}
}
