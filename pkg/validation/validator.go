// Package validation implements dirty-gated length validation of the note
// title and description fields, and the schema check applied before data
// reaches the store.
package validation

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors holds the displayed error of each field. Empty strings mean "no error".
type Errors struct {
	Title       string
	Description string
}

// Len returns the number of fields with a displayed error.
func (e Errors) Len() int {
	n := 0
	if e.Title != "" {
		n++
	}
	if e.Description != "" {
		n++
	}
	return n
}

// Keys returns the field names with an error, title first.
func (e Errors) Keys() []string {
	keys := make([]string, 0, 2)
	if e.Title != "" {
		keys = append(keys, "title")
	}
	if e.Description != "" {
		keys = append(keys, "description")
	}
	return keys
}

// Map returns only the non-empty errors keyed "title" and "description".
func (e Errors) Map() map[string]string {
	m := make(map[string]string, 2)
	if e.Title != "" {
		m["title"] = e.Title
	}
	if e.Description != "" {
		m["description"] = e.Description
	}
	return m
}

// Result is a consistent snapshot of every derived output.
type Result struct {
	TitleError                     string
	DescriptionError               string
	IsValid                        bool
	Errors                         Errors
	TitleCharactersRemaining       int
	DescriptionCharactersRemaining int
	IsDirtyTitle                   bool
	IsDirtyDescription             bool
}

// Validator derives field errors from two inputs.
// Every read recomputes from the current inputs, so results are never stale.
type Validator struct {
	title       Input
	description Input
	rules       Rules

	mu                 sync.RWMutex
	dirtyTitle         bool
	dirtyDescription   bool
	nextID             int
	subs               map[int]func(Result)
	inputSubscriptions []func()
}

// New creates a Validator over title and description.
// Without rules DefaultRules applies; non-positive bounds of a supplied rule set keep their defaults.
func New(title, description Input, rules ...Rules) *Validator {
	r := DefaultRules()
	if len(rules) > 0 {
		r = rules[0].withDefaults()
	}

	v := &Validator{
		title:       title,
		description: description,
		rules:       r,
		subs:        make(map[int]func(Result)),
	}

	for _, in := range []Input{title, description} {
		if o, ok := in.(observable); ok {
			v.inputSubscriptions = append(v.inputSubscriptions, o.Subscribe(func(string) { v.notify() }))
		}
	}
	return v
}

// Close detaches the validator from its inputs.
func (v *Validator) Close() {
	v.mu.Lock()
	cancels := v.inputSubscriptions
	v.inputSubscriptions = nil
	v.mu.Unlock()
	for _, cancel := range cancels {
		cancel()
	}
}

// Rules returns the effective rules.
func (v *Validator) Rules() Rules { return v.rules }

// RawTitleError returns the title rule violation regardless of dirty state.
func (v *Validator) RawTitleError() string {
	return fieldError("Title", v.title.Value(), v.rules.TitleMinLength, v.rules.TitleMaxLength)
}

// RawDescriptionError returns the description rule violation regardless of dirty state.
func (v *Validator) RawDescriptionError() string {
	return fieldError("Description", v.description.Value(), v.rules.DescriptionMinLength, v.rules.DescriptionMaxLength)
}

// TitleError returns the title error once the field is dirty.
func (v *Validator) TitleError() string {
	if !v.IsDirtyTitle() {
		return ""
	}
	return v.RawTitleError()
}

// DescriptionError returns the description error once the field is dirty.
func (v *Validator) DescriptionError() string {
	if !v.IsDirtyDescription() {
		return ""
	}
	return v.RawDescriptionError()
}

// IsValid reports whether both fields satisfy their rules. Dirty state is ignored.
func (v *Validator) IsValid() bool {
	return v.RawTitleError() == "" && v.RawDescriptionError() == ""
}

// Errors returns the displayed errors.
func (v *Validator) Errors() Errors {
	return Errors{Title: v.TitleError(), Description: v.DescriptionError()}
}

// TitleCharactersRemaining returns max length minus current length. It may be negative.
func (v *Validator) TitleCharactersRemaining() int {
	return v.rules.TitleMaxLength - utf8.RuneCountInString(v.title.Value())
}

// DescriptionCharactersRemaining returns max length minus current length. It may be negative.
func (v *Validator) DescriptionCharactersRemaining() int {
	return v.rules.DescriptionMaxLength - utf8.RuneCountInString(v.description.Value())
}

// IsDirtyTitle reports whether the title was marked dirty.
func (v *Validator) IsDirtyTitle() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dirtyTitle
}

// IsDirtyDescription reports whether the description was marked dirty.
func (v *Validator) IsDirtyDescription() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dirtyDescription
}

// Result computes every derived output at once.
func (v *Validator) Result() Result {
	v.mu.RLock()
	dirtyTitle, dirtyDescription := v.dirtyTitle, v.dirtyDescription
	v.mu.RUnlock()

	rawTitle := v.RawTitleError()
	rawDescription := v.RawDescriptionError()

	res := Result{
		IsValid:                        rawTitle == "" && rawDescription == "",
		TitleCharactersRemaining:       v.TitleCharactersRemaining(),
		DescriptionCharactersRemaining: v.DescriptionCharactersRemaining(),
		IsDirtyTitle:                   dirtyTitle,
		IsDirtyDescription:             dirtyDescription,
	}
	if dirtyTitle {
		res.TitleError = rawTitle
	}
	if dirtyDescription {
		res.DescriptionError = rawDescription
	}
	res.Errors = Errors{Title: res.TitleError, Description: res.DescriptionError}
	return res
}

// MarkTitleDirty enables error display for the title.
func (v *Validator) MarkTitleDirty() {
	v.setDirty(func() { v.dirtyTitle = true })
}

// MarkDescriptionDirty enables error display for the description.
func (v *Validator) MarkDescriptionDirty() {
	v.setDirty(func() { v.dirtyDescription = true })
}

// MarkAllDirty enables error display for both fields (e.g. on submit).
func (v *Validator) MarkAllDirty() {
	v.setDirty(func() {
		v.dirtyTitle = true
		v.dirtyDescription = true
	})
}

// ResetAllDirty hides the errors of both fields (e.g. after a successful submit).
func (v *Validator) ResetAllDirty() {
	v.setDirty(func() {
		v.dirtyTitle = false
		v.dirtyDescription = false
	})
}

// Subscribe registers fn to receive a fresh Result after every dirty-flag or input change.
func (v *Validator) Subscribe(fn func(Result)) (cancel func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subs, id)
	}
}

func (v *Validator) setDirty(apply func()) {
	v.mu.Lock()
	apply()
	v.mu.Unlock()
	v.notify()
}

func (v *Validator) notify() {
	v.mu.RLock()
	if len(v.subs) == 0 {
		v.mu.RUnlock()
		return
	}
	subs := make([]func(Result), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.RUnlock()

	res := v.Result()
	for _, fn := range subs {
		fn(res)
	}
}

func fieldError(label, value string, minLen, maxLen int) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return fmt.Sprintf("%s must be at least %d characters", label, minLen)
	}
	if n > maxLen {
		return fmt.Sprintf("%s must be less than %d characters", label, maxLen)
	}
	return ""
}
