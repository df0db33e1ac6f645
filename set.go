package pagex

// OrderedSet is an insertion-ordered, membership-checked string set.
// Extraction passes accumulate discovered values (video URLs, images,
// categories) into one set so later passes can add new values but never
// duplicate or reorder earlier ones.
//
// The zero value is ready to use.
type OrderedSet struct {
	seen   map[string]struct{}
	values []string
}

// Add inserts v if it is not already present and reports whether it was
// added. Empty strings are never added.
func (s *OrderedSet) Add(v string) bool {
	if v == "" {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is in the set.
func (s *OrderedSet) Contains(v string) bool {
	_, ok := s.seen[v]
	return ok
}

// Len returns the number of values in the set.
func (s *OrderedSet) Len() int {
	return len(s.values)
}

// Values returns the set's values in insertion order. The returned slice
// is never nil so it serializes as an empty JSON array.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
