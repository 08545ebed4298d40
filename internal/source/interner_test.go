package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	in := NewInterner()

	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID must map to the empty string, got %q, ok=%v", s, ok)
	}

	id1 := in.Intern("hello")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for a non-empty string")
	}

	id2 := in.Intern("hello")
	if id1 != id2 {
		t.Errorf("re-interning the same string must return the same ID: %d != %d", id1, id2)
	}

	if s, ok := in.Lookup(id1); !ok || s != "hello" {
		t.Errorf("Lookup returned %q, ok=%v", s, ok)
	}

	id3 := in.Intern("world")
	if id3 == id1 {
		t.Error("distinct strings must get distinct IDs")
	}

	if in.Len() != 3 { // "", "hello", "world"
		t.Errorf("Len = %d, want 3", in.Len())
	}
}

func TestInternerBytes(t *testing.T) {
	in := NewInterner()

	id1 := in.InternBytes([]byte("test"))
	id2 := in.Intern("test")
	if id1 != id2 {
		t.Errorf("InternBytes and Intern disagree: %d != %d", id1, id2)
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	in := NewInterner()

	defer func() {
		if recover() == nil {
			t.Error("MustLookup must panic for an unknown ID")
		}
	}()
	in.MustLookup(StringID(9999))
}

func TestInternerStringCopy(t *testing.T) {
	in := NewInterner()

	buf := []byte("original")
	id := in.InternBytes(buf)
	buf[0] = 'X'

	if s, ok := in.Lookup(id); !ok || s != "original" {
		t.Errorf("interner must keep its own copy, got %q", s)
	}
}

func TestInternerConcurrent(t *testing.T) {
	in := NewInterner()
	const goroutines = 32
	const strings = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < strings; i++ {
				in.Intern(fmt.Sprintf("string_%d", i))
			}
		}()
	}
	wg.Wait()

	if in.Len() != strings+1 {
		t.Errorf("Len = %d, want %d", in.Len(), strings+1)
	}
	seen := make(map[StringID]bool)
	for i := 0; i < strings; i++ {
		s := fmt.Sprintf("string_%d", i)
		id := in.Intern(s)
		if seen[id] {
			t.Errorf("duplicate ID %d for %q", id, s)
		}
		seen[id] = true
	}
}
