// internal/compare/registry.go
package compare

import "sort"

// Registry maps command identifiers to their comparators.
// It is built once and only read afterwards.
type Registry struct {
	comparators map[string]Comparator
}

// NewRegistry indexes the comparators by Command(). A later comparator
// replaces an earlier one with the same identifier.
func NewRegistry(comparators ...Comparator) *Registry {
	r := &Registry{comparators: make(map[string]Comparator, len(comparators))}
	for _, c := range comparators {
		r.comparators[c.Command()] = c
	}
	return r
}

// DefaultRegistry registers the ARP, session table and session count comparators
func DefaultRegistry(t Thresholds) *Registry {
	return NewRegistry(
		NewArpComparator(t.Arp),
		NewSessionComparator(t.Sessions),
		NewSessionCountComparator(t.SessionCount),
	)
}

// Lookup returns the comparator for command. Unknown commands report false.
func (r *Registry) Lookup(command string) (Comparator, bool) {
	c, ok := r.comparators[command]
	return c, ok
}

// Commands returns the registered identifiers in sorted order
func (r *Registry) Commands() []string {
	out := make([]string, 0, len(r.comparators))
	for cmd := range r.comparators {
		out = append(out, cmd)
	}
	sort.Strings(out)
	return out
}

// Name returns the display name of command, or the identifier itself
func (r *Registry) Name(command string) string {
	if c, ok := r.comparators[command]; ok {
		return c.Name()
	}
	return command
}
