package story

import (
	"errors"
	"fmt"
	"sync"

	"taskhive-api/internal/models"

	"gorm.io/gorm"
)

// sequenceBases holds the starting counter per story type. The first
// allocated number for a type is base+1 (e.g. E1001).
var sequenceBases = map[models.StoryType]int{
	models.TypeEpic: 1000,
	models.TypeTask: 2000,
	models.TypeBug:  3000,
}

// SequenceAllocator produces strictly increasing sequence numbers per story
// type. Implementations must never hand out the same number twice for the
// same type.
type SequenceAllocator interface {
	Next(storyType models.StoryType) (int, error)
}

// CounterAllocator is an in-process allocator. Counters live for the
// allocator's lifetime only; suitable for tests and single-instance demos.
type CounterAllocator struct {
	mu       sync.Mutex
	counters map[models.StoryType]int
}

// NewCounterAllocator returns a CounterAllocator with counters at their
// type-specific bases.
func NewCounterAllocator() *CounterAllocator {
	counters := make(map[models.StoryType]int, len(sequenceBases))
	for t, base := range sequenceBases {
		counters[t] = base
	}
	return &CounterAllocator{counters: counters}
}

// Next implements SequenceAllocator.
func (a *CounterAllocator) Next(storyType models.StoryType) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.counters[storyType]; !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, storyType)
	}
	a.counters[storyType]++
	return a.counters[storyType], nil
}

// DBAllocator persists counters in the sequences table, one row per
// company and story type, so identifiers stay unique across restarts.
type DBAllocator struct {
	db        *gorm.DB
	companyID uint
}

// NewDBAllocator returns an allocator scoped to the given company.
func NewDBAllocator(db *gorm.DB, companyID uint) *DBAllocator {
	return &DBAllocator{db: db, companyID: companyID}
}

// Next implements SequenceAllocator. The read-increment-write runs in a
// transaction so two concurrent creates cannot share a number.
func (a *DBAllocator) Next(storyType models.StoryType) (int, error) {
	base, ok := sequenceBases[storyType]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, storyType)
	}

	var next int
	err := a.db.Transaction(func(tx *gorm.DB) error {
		var seq models.Sequence
		err := tx.Where("company_id = ? AND story_type = ?", a.companyID, storyType).
			First(&seq).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.Sequence{CompanyID: a.companyID, StoryType: storyType, Value: base}
		} else if err != nil {
			return err
		}
		seq.Value++
		next = seq.Value
		return tx.Save(&seq).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
