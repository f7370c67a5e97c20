package store

import (
	"slices"
	"strings"

	"github.com/aretw0/notes/pkg/core"
)

// FilterNotes returns the notes matching f, most recently updated first.
// Notes with equal UpdatedAt keep their collection order.
func FilterNotes(notes []core.Note, f core.Filter) []core.Note {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	all := f.Category == "" || f.Category == core.CategoryAll

	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if !all && n.Category != f.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(n.Description), query) {
			continue
		}
		out = append(out, n)
	}

	slices.SortStableFunc(out, func(a, b core.Note) int {
		return b.UpdatedTime().Compare(a.UpdatedTime())
	})
	return out
}

// CountByCategory counts notes per category. The result always holds
// "All" (the collection size) and every category, zeros included.
func CountByCategory(notes []core.Note) map[string]int {
	counts := make(map[string]int, len(core.Categories())+1)
	counts[string(core.CategoryAll)] = len(notes)
	for _, c := range core.Categories() {
		counts[string(c)] = 0
	}
	for _, n := range notes {
		if _, ok := counts[string(n.Category)]; ok && n.Category != core.CategoryAll {
			counts[string(n.Category)]++
		}
	}
	return counts
}

func findIndex(notes []core.Note, id string) int {
	return slices.IndexFunc(notes, func(n core.Note) bool { return n.ID == id })
}

// Filtered returns the notes matching the selected category and search query.
func (s *Store) Filtered() []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterNotes(s.notes, core.Filter{Category: s.selectedCategory, Query: s.searchQuery})
}

// NoteByID looks a note up in the collection.
func (s *Store) NoteByID(id string) (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := findIndex(s.notes, id); i >= 0 {
		return s.notes[i], true
	}
	return core.Note{}, false
}

// Total returns the size of the whole collection.
func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// CountsByCategory returns the per-category counts of the whole collection.
func (s *Store) CountsByCategory() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CountByCategory(s.notes)
}
