package validation

// Rules bounds the length of the title and description fields.
// Title and description bounds are independent.
type Rules struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMinLength int
	DescriptionMaxLength int
}

// DefaultRules returns the rules used when none are supplied.
func DefaultRules() Rules {
	return Rules{
		TitleMinLength:       3,
		TitleMaxLength:       100,
		DescriptionMinLength: 10,
		DescriptionMaxLength: 500,
	}
}

// withDefaults fills non-positive bounds from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if r.TitleMinLength <= 0 {
		r.TitleMinLength = d.TitleMinLength
	}
	if r.TitleMaxLength <= 0 {
		r.TitleMaxLength = d.TitleMaxLength
	}
	if r.DescriptionMinLength <= 0 {
		r.DescriptionMinLength = d.DescriptionMinLength
	}
	if r.DescriptionMaxLength <= 0 {
		r.DescriptionMaxLength = d.DescriptionMaxLength
	}
	return r
}
