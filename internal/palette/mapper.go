package palette

import (
	"sync"
)

// Mapper returns the display color for a category.
type Mapper interface {
	Color(category string) Color
}

// AutoMapper assigns colors to categories on first use and remembers them.
//
// The zero value is not usable; create one with NewAutoMapper.
type AutoMapper struct {
	first  Color
	order  []string
	colors map[string]Color
}

// NewAutoMapper creates an empty mapper whose first assigned color is first.
func NewAutoMapper(first Color) *AutoMapper {
	return &AutoMapper{
		first:  first,
		colors: make(map[string]Color),
	}
}

// Color returns the color of category, assigning one if the category is new.
//
// An empty mapper hands out its first color. Otherwise a new category gets
// Next of the most recently inserted category's color, which is insertion
// order and not alphabetical order.
func (m *AutoMapper) Color(category string) Color {
	if c, ok := m.colors[category]; ok {
		return c
	}

	c := m.first
	if len(m.order) > 0 {
		c = Next(m.colors[m.order[len(m.order)-1]])
	}
	m.insert(category, c)
	return c
}

// Set overrides the color of category and moves it to the end of the
// iteration order, so the next new category continues from this color.
func (m *AutoMapper) Set(category string, c Color) {
	if _, ok := m.colors[category]; ok {
		m.remove(category)
	}
	m.insert(category, c)
}

// Delete removes category. Deleting an unknown category does nothing.
func (m *AutoMapper) Delete(category string) {
	if _, ok := m.colors[category]; !ok {
		return
	}
	m.remove(category)
	delete(m.colors, category)
}

// Lookup returns the stored color without assigning a new one.
func (m *AutoMapper) Lookup(category string) (Color, bool) {
	c, ok := m.colors[category]
	return c, ok
}

// Len returns the number of stored categories.
func (m *AutoMapper) Len() int {
	return len(m.order)
}

// Categories returns the stored categories in insertion order.
func (m *AutoMapper) Categories() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *AutoMapper) insert(category string, c Color) {
	m.order = append(m.order, category)
	m.colors[category] = c
}

func (m *AutoMapper) remove(category string) {
	for i, k := range m.order {
		if k == category {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// SyncMapper serializes access to another Mapper.
//
// Color assignment depends on the order of calls, so sharing an AutoMapper
// between goroutines without a lock races on both the map and the sequence.
type SyncMapper struct {
	mu     sync.Mutex
	mapper Mapper
}

// NewSyncMapper wraps m.
func NewSyncMapper(m Mapper) *SyncMapper {
	return &SyncMapper{mapper: m}
}

// Color implements Mapper.
func (s *SyncMapper) Color(category string) Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapper.Color(category)
}
