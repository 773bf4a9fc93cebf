package framestore

import "testing"

func fill(s *Store, v uint8) {
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.Put(x, y, v)
		}
	}
}

func TestReadSourceStartsZeroed(t *testing.T) {
	s := New(4, 3)
	for addr := 0; addr < 12; addr++ {
		if got := s.CountAt(addr); got != 0 {
			t.Fatalf("CountAt(%d) = %d before any frame, want 0", addr, got)
		}
	}
}

func TestWritesInvisibleUntilSwap(t *testing.T) {
	s := New(4, 3)
	fill(s, 7)
	for addr := 0; addr < 12; addr++ {
		if got := s.CountAt(addr); got != 0 {
			t.Fatalf("CountAt(%d) = %d mid-frame, want 0 (stale frame)", addr, got)
		}
	}
	s.Swap()
	for addr := 0; addr < 12; addr++ {
		if got := s.CountAt(addr); got != 7 {
			t.Fatalf("CountAt(%d) = %d after swap, want 7", addr, got)
		}
	}
}

// After a swap the writer must land in the other buffer: overwriting the new
// write-target must not disturb the frame the reader holds.
func TestWriterNeverTouchesReadSource(t *testing.T) {
	s := New(4, 3)
	fill(s, 1)
	s.Swap()
	fill(s, 2) // next frame, other buffer
	for addr := 0; addr < 12; addr++ {
		if got := s.CountAt(addr); got != 1 {
			t.Fatalf("CountAt(%d) = %d, want 1: writer leaked into read-source", addr, got)
		}
	}
	s.Swap()
	for addr := 0; addr < 12; addr++ {
		if got := s.CountAt(addr); got != 2 {
			t.Fatalf("CountAt(%d) = %d after second swap, want 2", addr, got)
		}
	}
}

func TestLinearAddressing(t *testing.T) {
	s := New(5, 2)
	s.Put(3, 1, 42)
	s.Swap()
	if got := s.CountAt(1*5 + 3); got != 42 {
		t.Errorf("CountAt(8) = %d, want 42", got)
	}
	if got := s.CountAt(3); got != 0 {
		t.Errorf("CountAt(3) = %d, want 0: row stride wrong", got)
	}
}
