package palette

import (
	"sync"
	"testing"
)

func TestAutoMapper_RepeatedCategory(t *testing.T) {
	m := NewAutoMapper(Green)

	seen := make(map[string]Color)
	for _, category := range []string{"A", "B", "A", "C"} {
		c := m.Color(category)
		if prev, ok := seen[category]; ok && prev != c {
			t.Errorf("category %s: got %v, previously %v", category, c, prev)
		}
		seen[category] = c
	}

	if m.Len() != 3 {
		t.Errorf("Len: got %d, want 3", m.Len())
	}

	distinct := map[Color]bool{}
	for _, c := range seen {
		distinct[c] = true
	}
	if len(distinct) != 3 {
		t.Errorf("distinct colors: got %d, want 3", len(distinct))
	}
}

func TestAutoMapper_FirstAndNext(t *testing.T) {
	m := NewAutoMapper(Green)

	if got := m.Color("person"); got != Green {
		t.Errorf("first color: got %v, want %v", got, Green)
	}
	if got := m.Color("car"); got != Next(Green) {
		t.Errorf("second color: got %v, want %v", got, Next(Green))
	}
	if got := m.Color("dog"); got != Next(Next(Green)) {
		t.Errorf("third color: got %v, want %v", got, Next(Next(Green)))
	}
}

func TestAutoMapper_Replay(t *testing.T) {
	categories := []string{"zebra", "apple", "mango", "banana"}

	a := NewAutoMapper(Green)
	b := NewAutoMapper(Green)
	for _, c := range categories {
		if ca, cb := a.Color(c), b.Color(c); ca != cb {
			t.Errorf("category %s: mappers disagree %v vs %v", c, ca, cb)
		}
	}

	// Insertion order, not alphabetical.
	got := a.Categories()
	for i := range categories {
		if got[i] != categories[i] {
			t.Errorf("Categories[%d]: got %s, want %s", i, got[i], categories[i])
		}
	}
}

func TestAutoMapper_Set(t *testing.T) {
	m := NewAutoMapper(Green)
	m.Color("a")
	m.Color("b")

	red := Color{R: 255}
	m.Set("a", red)

	if got := m.Color("a"); got != red {
		t.Errorf("overridden color: got %v, want %v", got, red)
	}

	cats := m.Categories()
	if cats[len(cats)-1] != "a" {
		t.Errorf("Set should move category to the end, got order %v", cats)
	}

	// The next new category continues from the override.
	if got := m.Color("c"); got != Next(red) {
		t.Errorf("color after override: got %v, want %v", got, Next(red))
	}
}

func TestAutoMapper_Delete(t *testing.T) {
	m := NewAutoMapper(Green)
	m.Color("a")
	m.Color("b")

	m.Delete("b")
	m.Delete("missing")

	if m.Len() != 1 {
		t.Errorf("Len after delete: got %d, want 1", m.Len())
	}
	if _, ok := m.Lookup("b"); ok {
		t.Error("deleted category still present")
	}

	// "b" is reassigned from the color of "a", the last remaining entry.
	if got := m.Color("b"); got != Next(Green) {
		t.Errorf("reassigned color: got %v, want %v", got, Next(Green))
	}
}

func TestAutoMapper_Lookup(t *testing.T) {
	m := NewAutoMapper(Green)

	if _, ok := m.Lookup("a"); ok {
		t.Error("Lookup on empty mapper should miss")
	}
	if m.Len() != 0 {
		t.Errorf("Lookup must not assign, Len: got %d", m.Len())
	}
}

func TestSyncMapper_Concurrent(t *testing.T) {
	s := NewSyncMapper(NewAutoMapper(Green))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range []string{"a", "b", "c", "d"} {
				s.Color(c)
			}
		}()
	}
	wg.Wait()

	inner := s.mapper.(*AutoMapper)
	if inner.Len() != 4 {
		t.Errorf("Len: got %d, want 4", inner.Len())
	}
}
