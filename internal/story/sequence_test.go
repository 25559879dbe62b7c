package story

import (
	"testing"

	"taskhive-api/internal/models"
	"taskhive-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestDBAllocator_PersistsAcrossInstances(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	a := NewDBAllocator(db, 1)
	n1, err := a.Next(models.TypeEpic)
	require.NoError(t, err)
	require.Equal(t, 1001, n1)

	n2, err := a.Next(models.TypeEpic)
	require.NoError(t, err)
	require.Equal(t, 1002, n2)

	// A fresh allocator over the same database continues the sequence
	b := NewDBAllocator(db, 1)
	n3, err := b.Next(models.TypeEpic)
	require.NoError(t, err)
	require.Equal(t, 1003, n3)
}

func TestDBAllocator_ScopedPerCompanyAndType(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	a := NewDBAllocator(db, 1)
	other := NewDBAllocator(db, 2)

	n, err := a.Next(models.TypeBug)
	require.NoError(t, err)
	require.Equal(t, 3001, n)

	n, err = a.Next(models.TypeTask)
	require.NoError(t, err)
	require.Equal(t, 2001, n)

	// Another company starts from the base again
	n, err = other.Next(models.TypeBug)
	require.NoError(t, err)
	require.Equal(t, 3001, n)
}

func TestDBAllocator_UnknownType(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	_, err = NewDBAllocator(db, 1).Next(models.StoryType("Story"))
	require.ErrorIs(t, err, ErrUnknownType)
}
