package cookieheader

import (
	"iter"
	"slices"
)

// Map is an ordered mapping from cookie name to value with unique names.
// The zero value is an empty map ready to use.
type Map struct {
	names  []string
	values map[string]string
}

// NewMap returns an empty map with room for n names.
func NewMap(n int) *Map {
	return &Map{
		names:  make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// Set stores value under name. An existing name keeps its position.
func (m *Map) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = value
}

// Get returns the value stored under name.
func (m *Map) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[name]
	return v, ok
}

// Delete removes name from the map.
func (m *Map) Delete(name string) {
	if m == nil {
		return
	}
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
}

// Len returns the number of names in the map. A nil map has length zero.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Names returns the cookie names in iteration order.
func (m *Map) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// All iterates name/value pairs in insertion order.
func (m *Map) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}
		for _, name := range m.names {
			if !yield(name, m.values[name]) {
				return
			}
		}
	}
}

// Update copies every entry of other into m; entries of other win.
func (m *Map) Update(other *Map) {
	for name, value := range other.All() {
		m.Set(name, value)
	}
}

// Clone returns an independent copy of m.
func (m *Map) Clone() *Map {
	out := NewMap(m.Len())
	out.Update(m)
	return out
}

// Equal reports whether both maps hold the same entries in the same order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, name := range m.Names() {
		if other.names[i] != name || other.values[name] != m.values[name] {
			return false
		}
	}
	return true
}

// ToMap returns the entries as a plain Go map.
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	for name, value := range m.All() {
		out[name] = value
	}
	return out
}
