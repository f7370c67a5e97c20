package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notes/pkg/core"
)

func TestFilterNotes(t *testing.T) {
	n1 := core.Note{ID: "n1", Title: "Weekly sync", Description: "agenda", Category: core.CategoryPersonal, UpdatedAt: "2026-01-02T09:00:00.000Z"}
	n2 := core.Note{ID: "n2", Title: "Roadmap", Description: "draft", Category: core.CategoryWork, UpdatedAt: "2026-01-03T09:00:00.000Z"}
	n3 := core.Note{ID: "n3", Title: "Retro", Description: "Project ALPHA lessons", Category: core.CategoryWork, UpdatedAt: "2026-01-01T09:00:00.000Z"}
	notes := []core.Note{n1, n2, n3}

	tests := []struct {
		name   string
		filter core.Filter
		want   []string
	}{
		{"Unfiltered Sorted By UpdatedAt", core.Filter{Category: core.CategoryAll}, []string{"n2", "n1", "n3"}},
		{"Empty Category Means All", core.Filter{}, []string{"n2", "n1", "n3"}},
		{"Category", core.Filter{Category: core.CategoryWork}, []string{"n2", "n3"}},
		{"Category And Query", core.Filter{Category: core.CategoryWork, Query: "alpha"}, []string{"n3"}},
		{"Query Is Trimmed And Case Insensitive", core.Filter{Query: "  ROAD "}, []string{"n2"}},
		{"Query Matches Description", core.Filter{Query: "agenda"}, []string{"n1"}},
		{"Whitespace Query Matches Everything", core.Filter{Query: "   "}, []string{"n2", "n1", "n3"}},
		{"No Match", core.Filter{Category: core.CategoryTodo}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterNotes(notes, tt.filter)))
		})
	}

	assert.Equal(t, []string{"n1", "n2", "n3"}, ids(notes), "input order is untouched")
}

func TestFilterNotes_StableTies(t *testing.T) {
	ts := "2026-03-01T12:00:00.000Z"
	notes := []core.Note{
		{ID: "first", UpdatedAt: ts},
		{ID: "newest", UpdatedAt: "2026-03-02T12:00:00.000Z"},
		{ID: "second", UpdatedAt: ts},
		{ID: "third", UpdatedAt: "2026-03-01T12:00:00Z"},
	}

	assert.Equal(t, []string{"newest", "first", "second", "third"}, ids(FilterNotes(notes, core.Filter{})))
}

func TestFilterNotes_MixedTimestampForms(t *testing.T) {
	notes := []core.Note{
		{ID: "rfc", UpdatedAt: "2026-03-01T12:00:00.000Z"},
		{ID: "date-only", UpdatedAt: "2026-03-05"},
		{ID: "zoneless", UpdatedAt: "2026-03-03T08:00:00"},
		{ID: "garbage", UpdatedAt: "not-a-date"},
	}

	assert.Equal(t, []string{"date-only", "zoneless", "rfc", "garbage"}, ids(FilterNotes(notes, core.Filter{})))
}

func TestCountByCategory(t *testing.T) {
	t.Run("Empty Collection Lists Every Bucket", func(t *testing.T) {
		counts := CountByCategory(nil)
		assert.Equal(t, map[string]int{"All": 0, "Personal": 0, "Work": 0, "Ideas": 0, "Todo": 0, "Other": 0}, counts)
	})

	t.Run("Sums To Total", func(t *testing.T) {
		notes := []core.Note{
			{ID: "1", Category: core.CategoryWork},
			{ID: "2", Category: core.CategoryWork},
			{ID: "3", Category: core.CategoryIdeas},
			{ID: "4", Category: core.CategoryOther},
		}
		counts := CountByCategory(notes)

		assert.Equal(t, len(notes), counts["All"])
		sum := 0
		for _, c := range core.Categories() {
			sum += counts[string(c)]
		}
		assert.Equal(t, len(notes), sum)
		assert.Equal(t, 2, counts["Work"])
		assert.Equal(t, 0, counts["Todo"])
	})
}
