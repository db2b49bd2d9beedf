package address

// IsMatching reports whether two optional addresses hold the same values.
// Two absent addresses match; an absent and a present one do not.
func IsMatching(a, b *Address) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Clone returns a copy that does not alias a.
func Clone(a *Address) *Address {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
