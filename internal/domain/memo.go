package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field length bounds, counted in characters.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Memo is a titled, dated, completable note.
type Memo struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MemoInput is the validated payload of a create or full replace.
type MemoInput struct {
	Title       string
	Description *string
	DueAt       time.Time
	Completed   bool
}

// MemoPatch is the validated payload of a partial update. Only fields
// that are not Unset take part in the merge.
type MemoPatch struct {
	Title       Field[string]
	Description Field[string]
	DueAt       Field[time.Time]
	Completed   Field[bool]
}

// IsEmpty reports whether the patch touches no field.
func (p MemoPatch) IsEmpty() bool {
	return p.Title.IsUnset() && p.Description.IsUnset() &&
		p.DueAt.IsUnset() && p.Completed.IsUnset()
}

// NewMemo creates a new Memo from validated input. Completed always
// starts false and both timestamps are set to now.
func NewMemo(input MemoInput, now time.Time) (*Memo, error) {
	memo := &Memo{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: CloneString(input.Description),
		DueAt:       input.DueAt,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := memo.Validate(); err != nil {
		return nil, err
	}

	return memo, nil
}

// Validate checks every entity invariant and reports all violations.
func (m *Memo) Validate() error {
	verr := &ValidationError{}

	if m.ID == uuid.Nil {
		verr.Add("id", "is required")
	}

	checkTitle(verr, m.Title)
	checkDescription(verr, m.Description)
	checkDueAt(verr, m.DueAt)

	if m.CreatedAt.IsZero() {
		verr.Add("created_at", "is required")
	}

	if m.UpdatedAt.Before(m.CreatedAt) {
		verr.Add("updated_at", "must not be before created_at")
	}

	return verr.OrNil()
}

// Validate checks the fields a create or replace would write.
func (in MemoInput) Validate() error {
	verr := &ValidationError{}
	checkTitle(verr, in.Title)
	checkDescription(verr, in.Description)
	checkDueAt(verr, in.DueAt)
	return verr.OrNil()
}

// Validate checks the fields present in the patch. Title, due_at and
// completed are not nullable.
func (p MemoPatch) Validate() error {
	verr := &ValidationError{}

	if p.Title.IsNull() {
		verr.Add("title", "cannot be null")
	} else if title, ok := p.Title.Value(); ok {
		checkTitle(verr, title)
	}

	if desc, ok := p.Description.Value(); ok {
		checkDescription(verr, &desc)
	}

	if p.DueAt.IsNull() {
		verr.Add("due_at", "cannot be null")
	} else if due, ok := p.DueAt.Value(); ok {
		checkDueAt(verr, due)
	}

	if p.Completed.IsNull() {
		verr.Add("completed", "cannot be null")
	}

	return verr.OrNil()
}

func checkTitle(verr *ValidationError, title string) {
	if strings.TrimSpace(title) == "" {
		verr.Add("title", "is required")
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		verr.Add("title", "must be at most 200 characters")
	}
}

func checkDescription(verr *ValidationError, desc *string) {
	if desc != nil && utf8.RuneCountInString(*desc) > MaxDescriptionLength {
		verr.Add("description", "must be at most 1000 characters")
	}
}

func checkDueAt(verr *ValidationError, due time.Time) {
	if due.IsZero() {
		verr.Add("due_at", "is required")
	}
}

// Clone returns a deep copy of the memo.
func (m *Memo) Clone() *Memo {
	if m == nil {
		return nil
	}
	c := *m
	c.Description = CloneString(m.Description)
	return &c
}

// Touch advances UpdatedAt to now, or by one microsecond when now does
// not move past the current value, so every mutation is observable.
func (m *Memo) Touch(now time.Time) {
	if !now.After(m.UpdatedAt) {
		now = m.UpdatedAt.Add(time.Microsecond)
	}
	m.UpdatedAt = now
}

// CloneString copies an optional string so callers cannot alias it.
func CloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
