package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyJournal(t *testing.T) {
	j := New[string]()

	_, err := j.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)

	_, err = j.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)

	assert.Equal(t, 0, j.Cursor())
	assert.Equal(t, 0, j.Len())
}

func TestUndoRedoOrder(t *testing.T) {
	j := New[string]()
	j.Append("a")
	j.Append("b")
	j.Append("c")

	r, err := j.Undo()
	require.NoError(t, err)
	assert.Equal(t, "c", r)

	r, err = j.Undo()
	require.NoError(t, err)
	assert.Equal(t, "b", r)
	assert.Equal(t, 1, j.Cursor())

	r, err = j.Redo()
	require.NoError(t, err)
	assert.Equal(t, "b", r)

	r, err = j.Redo()
	require.NoError(t, err)
	assert.Equal(t, "c", r)

	_, err = j.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)
}

func TestAppendTruncatesRedoTail(t *testing.T) {
	j := New[string]()
	j.Append("a")
	j.Append("b")

	_, err := j.Undo()
	require.NoError(t, err)
	assert.True(t, j.CanRedo())

	j.Append("x")
	assert.Equal(t, 2, j.Len())
	assert.False(t, j.CanRedo())

	_, err = j.Redo()
	require.ErrorIs(t, err, ErrNothingToRedo)

	r, err := j.Undo()
	require.NoError(t, err)
	assert.Equal(t, "x", r)
	r, err = j.Undo()
	require.NoError(t, err)
	assert.Equal(t, "a", r)
}

func TestCursorInvariant(t *testing.T) {
	j := New[int]()
	ops := []string{"a", "a", "u", "u", "u", "r", "a", "r", "u", "a", "a", "u", "r", "r"}
	applied := []int{}
	next := 0

	for _, op := range ops {
		switch op {
		case "a":
			j.Append(next)
			applied = append(applied[:j.Cursor()-1], next)
			next++
		case "u":
			if r, err := j.Undo(); err == nil {
				assert.Equal(t, applied[len(applied)-1], r)
				applied = applied[:len(applied)-1]
			}
		case "r":
			if r, err := j.Redo(); err == nil {
				applied = append(applied, r)
			}
		}
		require.GreaterOrEqual(t, j.Cursor(), 0)
		require.LessOrEqual(t, j.Cursor(), j.Len())
		require.Equal(t, len(applied), j.Cursor())
	}
}
