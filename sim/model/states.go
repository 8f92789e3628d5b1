package model

import (
	"fmt"
)

// StateTable is the bijection between health-state labels and the dense
// indices the engine runs on. Index order is the States order of the model
// file.
type StateTable struct {
	names []string
	index map[string]int
}

// NewStateTable builds a table from an ordered label list. Labels must be
// non-empty and unique.
func NewStateTable(names []string) (*StateTable, error) {
	t := &StateTable{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("state %d has an empty label", i)
		}
		if prev, ok := t.index[name]; ok {
			return nil, fmt.Errorf("duplicate state label %q (positions %d and %d)", name, prev, i)
		}
		t.index[name] = i
	}
	return t, nil
}

// Index returns the dense index of a label.
func (t *StateTable) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Name returns the label of a dense index. Out-of-range indices yield a
// placeholder rather than panicking, since they only appear in diagnostics.
func (t *StateTable) Name(i int) string {
	if i < 0 || i >= len(t.names) {
		return fmt.Sprintf("state_%d", i)
	}
	return t.names[i]
}

// Names returns the labels in index order. The caller must not modify the
// returned slice.
func (t *StateTable) Names() []string {
	return t.names
}

// Len returns the number of states.
func (t *StateTable) Len() int {
	return len(t.names)
}
