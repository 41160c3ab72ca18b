package domain

// TableRegistry is the fixed set of valid table identifiers, loaded from
// configuration at startup. Session handlers use it to pre-validate table
// numbers; the session core itself does not consult it.
type TableRegistry struct {
	tables map[string]struct{}
	order  []string
}

func NewTableRegistry(numbers []string) *TableRegistry {
	r := &TableRegistry{tables: make(map[string]struct{}, len(numbers))}
	for _, n := range numbers {
		if _, ok := r.tables[n]; ok {
			continue
		}
		r.tables[n] = struct{}{}
		r.order = append(r.order, n)
	}
	return r
}

func (r *TableRegistry) Contains(tableNumber string) bool {
	_, ok := r.tables[tableNumber]
	return ok
}

func (r *TableRegistry) Numbers() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
