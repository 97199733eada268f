// Package journal keeps a linear undo/redo history. It only orders records;
// applying them is up to the caller.
package journal

import "errors"

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Journal is a list of records with a cursor pointing past the most recently
// applied one. Records in [0, cursor) have been applied; records in
// [cursor, len) can be redone.
type Journal[R any] struct {
	records []R
	cursor  int
}

// New returns an empty journal.
func New[R any]() *Journal[R] {
	return &Journal[R]{}
}

// Append drops the redoable tail, stores r and moves the cursor past it.
func (j *Journal[R]) Append(r R) {
	clear(j.records[j.cursor:])
	j.records = append(j.records[:j.cursor], r)
	j.cursor = len(j.records)
}

// Undo steps the cursor back and returns the record to revert.
func (j *Journal[R]) Undo() (R, error) {
	if j.cursor == 0 {
		var zero R
		return zero, ErrNothingToUndo
	}
	j.cursor--
	return j.records[j.cursor], nil
}

// Redo returns the record to reapply and steps the cursor forward.
func (j *Journal[R]) Redo() (R, error) {
	if j.cursor == len(j.records) {
		var zero R
		return zero, ErrNothingToRedo
	}
	r := j.records[j.cursor]
	j.cursor++
	return r, nil
}

// Cursor returns the number of applied records.
func (j *Journal[R]) Cursor() int { return j.cursor }

// Len returns the total number of records, applied or redoable.
func (j *Journal[R]) Len() int { return len(j.records) }

func (j *Journal[R]) CanUndo() bool { return j.cursor > 0 }
func (j *Journal[R]) CanRedo() bool { return j.cursor < len(j.records) }
