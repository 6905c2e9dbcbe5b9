// internal/compare/set.go
package compare

import "sort"

// Set is an unordered collection of distinct keys (IPs, MACs, interfaces)
type Set map[string]struct{}

func (s Set) Add(v string) { s[v] = struct{}{} }

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Minus returns the sorted members of s that are absent from other
func (s Set) Minus(other Set) []string {
	out := []string{}
	for v := range s {
		if !other.Has(v) {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
