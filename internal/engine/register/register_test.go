package register

import (
	"bytes"
	"testing"
)

func TestSetCopiesInput(t *testing.T) {
	s := NewStore()
	src := []byte{1, 2, 3}
	s.Set('a', [][]byte{src})

	src[0] = 0xff
	got, ok := s.Get('a')
	if !ok || !bytes.Equal(got[0], []byte{1, 2, 3}) {
		t.Errorf("register aliased caller's slice: %v", got)
	}
}

func TestGetUnset(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get('z'); ok {
		t.Error("unset register reported as set")
	}
}

func TestSetEmptyClears(t *testing.T) {
	s := NewStore()
	s.Set('a', [][]byte{{1}})
	s.Set('a', nil)
	if _, ok := s.Get('a'); ok {
		t.Error("register should be cleared by empty set")
	}
}

func TestForCyclesEntries(t *testing.T) {
	s := NewStore()
	s.Set(Default, [][]byte{{0xaa}, {0xbb}})

	tests := []struct {
		n    int
		want [][]byte
	}{
		{1, [][]byte{{0xaa}}},
		{2, [][]byte{{0xaa}, {0xbb}}},
		{5, [][]byte{{0xaa}, {0xbb}, {0xaa}, {0xbb}, {0xaa}}},
	}

	for _, tt := range tests {
		got, ok := s.For(Default, tt.n)
		if !ok {
			t.Fatalf("For(%d) reported unset", tt.n)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("For(%d) returned %d entries", tt.n, len(got))
		}
		for i := range got {
			if !bytes.Equal(got[i], tt.want[i]) {
				t.Errorf("For(%d)[%d] = %x, want %x", tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestForUnsetOrZero(t *testing.T) {
	s := NewStore()
	if _, ok := s.For('q', 3); ok {
		t.Error("For on unset register should fail")
	}
	s.Set('q', [][]byte{{1}})
	if _, ok := s.For('q', 0); ok {
		t.Error("For with zero count should fail")
	}
}

func TestZeroValueStore(t *testing.T) {
	var s Store
	s.Set('a', [][]byte{{7}})
	got, ok := s.Get('a')
	if !ok || got[0][0] != 7 {
		t.Error("zero-value store should accept writes")
	}
}
