package core

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for note timestamps (ISO-8601, UTC, millisecond precision).
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Category is the closed classification tag of a note.
type Category string

const (
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryIdeas    Category = "Ideas"
	CategoryTodo     Category = "Todo"
	CategoryOther    Category = "Other"
)

// CategoryAll is the filter sentinel matching every category.
// It is never a valid category of a stored note.
const CategoryAll Category = "All"

// Categories returns the five note categories in declaration order.
func Categories() []Category {
	return []Category{CategoryPersonal, CategoryWork, CategoryIdeas, CategoryTodo, CategoryOther}
}

// Valid reports whether c is one of the five note categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category name case-insensitively.
// "All" is accepted and yields CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, nil
	}
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Note is the central entity of the domain.
// ID is assigned by the gateway (or synthesized locally) and never changes.
type Note struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string   `json:"updatedAt" yaml:"updatedAt"`
}

// UpdatedTime parses UpdatedAt. Unparseable values yield the zero time.
func (n Note) UpdatedTime() time.Time {
	return ParseTime(n.UpdatedAt)
}

// CreateNote carries the user-supplied fields of a new note.
type CreateNote struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=3,max=500"`
	Category    Category `json:"category" validate:"required,category"`
}

// UpdateNote carries the replacement fields of an existing note.
type UpdateNote struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=3,max=500"`
	Category    Category `json:"category" validate:"required,category"`
}

// FormatTime renders t in the wire format.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// timeLayouts are the timestamp forms accepted on read. Values without a
// zone are taken as UTC.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly}

// ParseTimeValue parses a stored timestamp: RFC 3339, a zone-less date-time
// or a bare date.
func ParseTimeValue(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}

// ParseTime is ParseTimeValue returning the zero time for invalid input.
func ParseTime(s string) time.Time {
	t, err := ParseTimeValue(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
