package set

import "github.com/maxpoletaev/jobmesh/internal/generic"

// Set is a map-backed set of comparable values. Not safe to use concurrently.
type Set[T comparable] map[T]struct{}

func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

// AddIfAbsent adds the value and reports whether it was not in the set before.
func (s Set[T]) AddIfAbsent(val T) bool {
	if s.Has(val) {
		return false
	}

	s.Add(val)

	return true
}

func (s Set[T]) Remove(val T) {
	delete(s, val)
}

// RemoveFunc removes every value matching the predicate and returns them.
func (s Set[T]) RemoveFunc(match func(T) bool) []T {
	var removed []T

	for val := range s {
		if match(val) {
			delete(s, val)
			removed = append(removed, val)
		}
	}

	return removed
}

func (s Set[T]) Values() []T {
	return generic.MapKeys(s)
}

func (s Set[T]) Has(val T) bool {
	if _, ok := s[val]; ok {
		return true
	}

	return false
}

func New[T comparable](sl ...T) Set[T] {
	set := make(Set[T], len(sl))
	for _, val := range sl {
		set.Add(val)
	}
	return set
}
