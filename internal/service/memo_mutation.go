package service

import (
	"time"

	"github.com/phrazzld/memos-api/internal/domain"
)

// The functions in this file are the memo mutation rules. They are pure:
// each takes the current record and returns the next one, and runs inside
// the store's atomic read-modify-write. Due dates are normalized to UTC so
// every store returns the same instant in the same form.

// createMemo builds a new active memo from validated input.
func createMemo(in domain.MemoInput, now time.Time) (*domain.Memo, error) {
	in.DueAt = in.DueAt.UTC()
	return domain.NewMemo(in, now)
}

// applyReplace overwrites every mutable field. Completed comes from the
// input, never from the current record.
func applyReplace(m *domain.Memo, in domain.MemoInput, now time.Time) (*domain.Memo, error) {
	m.Title = in.Title
	m.Description = domain.CloneString(in.Description)
	m.DueAt = in.DueAt.UTC()
	m.Completed = in.Completed
	m.Touch(now)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// applyPatch merges only the fields present in p. A null description
// clears it. The merged record must still satisfy every invariant.
func applyPatch(m *domain.Memo, p domain.MemoPatch, now time.Time) (*domain.Memo, error) {
	if title, ok := p.Title.Value(); ok {
		m.Title = title
	}

	switch {
	case p.Description.IsNull():
		m.Description = nil
	case p.Description.IsSet():
		desc, _ := p.Description.Value()
		m.Description = &desc
	}

	if due, ok := p.DueAt.Value(); ok {
		m.DueAt = due.UTC()
	}

	if completed, ok := p.Completed.Value(); ok {
		m.Completed = completed
	}

	m.Touch(now)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// applyToggle flips the completion flag.
func applyToggle(m *domain.Memo, now time.Time) (*domain.Memo, error) {
	m.Completed = !m.Completed
	m.Touch(now)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
