// Package register stores yanked byte strings keyed by a single-rune name.
//
// A register holds one entry per selection that existed at yank time, in
// selection order. Paste consumers that need more entries than a register
// holds cycle through it; see For.
package register

// Default is the register used when the operator names none.
const Default = '"'

// SearchPattern holds the text of the last compiled search pattern.
const SearchPattern = '/'

// Store maps register names to their yanked entries. The zero value is
// empty and ready to use.
type Store struct {
	regs map[rune][][]byte
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{regs: make(map[rune][][]byte)}
}

// Set replaces the named register's entries. The byte strings are copied,
// so callers may reuse their slices. Setting zero entries clears the
// register.
func (s *Store) Set(name rune, entries [][]byte) {
	if s.regs == nil {
		s.regs = make(map[rune][][]byte)
	}
	if len(entries) == 0 {
		delete(s.regs, name)
		return
	}
	owned := make([][]byte, len(entries))
	for i, e := range entries {
		owned[i] = append([]byte(nil), e...)
	}
	s.regs[name] = owned
}

// Get returns the named register's entries and whether it is set.
// The returned slices must not be modified.
func (s *Store) Get(name rune) ([][]byte, bool) {
	entries, ok := s.regs[name]
	return entries, ok
}

// For returns exactly n entries from the named register, cycling through
// its contents when n exceeds the entry count. Returns false if the
// register is empty or unset.
func (s *Store) For(name rune, n int) ([][]byte, bool) {
	entries, ok := s.regs[name]
	if !ok || len(entries) == 0 || n <= 0 {
		return nil, false
	}
	out := make([][]byte, n)
	for i := range out {
		out[i] = entries[i%len(entries)]
	}
	return out, true
}

// Names returns the names of all set registers in unspecified order.
func (s *Store) Names() []rune {
	out := make([]rune, 0, len(s.regs))
	for name := range s.regs {
		out = append(out, name)
	}
	return out
}

// Clear removes every register.
func (s *Store) Clear() {
	s.regs = make(map[rune][][]byte)
}
