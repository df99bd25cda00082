package utils

// StringSet is a lookup set built from config lists such as excluded
// collection names.
type StringSet map[string]struct{}

func NewStringSet(values []string) StringSet {
	set := make(StringSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}
