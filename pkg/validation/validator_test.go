package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DirtyGating(t *testing.T) {
	v := New(NewField(""), NewField(""))

	assert.Empty(t, v.TitleError())
	assert.Empty(t, v.DescriptionError())
	assert.Equal(t, 0, v.Errors().Len())
	assert.Empty(t, v.Errors().Map())
	assert.False(t, v.IsValid(), "validity ignores dirty state")

	v.MarkTitleDirty()
	assert.Equal(t, "Title is required", v.TitleError())
	assert.Empty(t, v.DescriptionError())
	assert.Equal(t, map[string]string{"title": "Title is required"}, v.Errors().Map())
	assert.Equal(t, []string{"title"}, v.Errors().Keys())

	v.MarkDescriptionDirty()
	assert.Equal(t, "Description is required", v.DescriptionError())
	assert.Equal(t, []string{"title", "description"}, v.Errors().Keys())

	v.ResetAllDirty()
	assert.Empty(t, v.TitleError())
	assert.Empty(t, v.DescriptionError())

	v.MarkAllDirty()
	assert.True(t, v.IsDirtyTitle())
	assert.True(t, v.IsDirtyDescription())
	assert.Equal(t, 2, v.Errors().Len())
}

func TestValidator_TitleBoundaries(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"Whitespace Only", "   ", "Title is required"},
		{"Below Min", strings.Repeat("a", rules.TitleMinLength-1), "Title must be at least 3 characters"},
		{"At Min", strings.Repeat("a", rules.TitleMinLength), ""},
		{"At Max", strings.Repeat("a", rules.TitleMaxLength), ""},
		{"Above Max", strings.Repeat("a", rules.TitleMaxLength+1), "Title must be less than 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(NewField(tt.title), NewField("a long enough description"))
			v.MarkAllDirty()
			assert.Equal(t, tt.want, v.TitleError())
			assert.Equal(t, tt.want == "", v.IsValid())
		})
	}
}

func TestValidator_DescriptionBoundaries(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"Empty", "", "Description is required"},
		{"Below Min", strings.Repeat("d", 9), "Description must be at least 10 characters"},
		{"At Min", strings.Repeat("d", 10), ""},
		{"At Max", strings.Repeat("d", 500), ""},
		{"Above Max", strings.Repeat("d", 501), "Description must be less than 500 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(Static("Valid title"), Static(tt.desc))
			v.MarkDescriptionDirty()
			assert.Equal(t, tt.want, v.DescriptionError())
			assert.Equal(t, tt.want, v.RawDescriptionError())
		})
	}
}

func TestValidator_CustomRules(t *testing.T) {
	v := New(Static("abcd"), Static("abc"), Rules{TitleMinLength: 5, DescriptionMaxLength: 2})

	assert.Equal(t, 5, v.Rules().TitleMinLength)
	assert.Equal(t, 100, v.Rules().TitleMaxLength, "unset bounds keep defaults")
	assert.Equal(t, "Title must be at least 5 characters", v.RawTitleError())
	assert.Equal(t, "Description must be at least 10 characters", v.RawDescriptionError())
}

func TestValidator_CharactersRemaining(t *testing.T) {
	title := NewField("hello")
	description := NewField(strings.Repeat("x", 510))
	v := New(title, description)

	assert.Equal(t, 95, v.TitleCharactersRemaining())
	assert.Equal(t, -10, v.DescriptionCharactersRemaining(), "not clamped")

	title.Set("héllo wörld")
	assert.Equal(t, 89, v.TitleCharactersRemaining(), "counts runes, not bytes")
}

func TestValidator_RecomputesOnInputChange(t *testing.T) {
	title := NewField("")
	v := New(title, NewField("a valid description"))
	v.MarkTitleDirty()

	var results []Result
	cancel := v.Subscribe(func(r Result) { results = append(results, r) })
	defer cancel()

	title.Set("ok")
	title.Set("okay")

	require.Len(t, results, 2)
	assert.Equal(t, "Title must be at least 3 characters", results[0].TitleError)
	assert.False(t, results[0].IsValid)
	assert.Empty(t, results[1].TitleError)
	assert.True(t, results[1].IsValid)
	assert.Equal(t, 0, results[1].Errors.Len())

	v.ResetAllDirty()
	require.Len(t, results, 3)
	assert.False(t, results[2].IsDirtyTitle)

	v.Close()
	title.Set("")
	assert.Len(t, results, 3, "closed validator stops observing inputs")
}
