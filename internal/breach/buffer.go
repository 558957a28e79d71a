package breach

// Buffer is the bounded, append-only record of uploaded symbols.
type Buffer struct {
	symbols  []Symbol
	capacity int
}

// NewBuffer returns an empty buffer holding at most capacity symbols.
func NewBuffer(capacity int) Buffer {
	return Buffer{capacity: capacity}
}

func (b Buffer) Len() int { return len(b.symbols) }
func (b Buffer) Cap() int { return b.capacity }

// Full reports whether no more symbols fit.
func (b Buffer) Full() bool {
	return len(b.symbols) >= b.capacity
}

// Symbols returns a copy of the buffered symbols in upload order.
func (b Buffer) Symbols() []Symbol {
	out := make([]Symbol, len(b.symbols))
	copy(out, b.symbols)
	return out
}

// Contains reports whether seq occurs as a contiguous run anywhere in the
// buffer. Comparison is per symbol, so a match never straddles two codes.
func (b Buffer) Contains(seq []Symbol) bool {
	if len(seq) == 0 || len(seq) > len(b.symbols) {
		return false
	}
outer:
	for start := 0; start+len(seq) <= len(b.symbols); start++ {
		for i, s := range seq {
			if b.symbols[start+i] != s {
				continue outer
			}
		}
		return true
	}
	return false
}

// with returns a new buffer with s appended. The receiver is left untouched.
func (b Buffer) with(s Symbol) Buffer {
	symbols := make([]Symbol, len(b.symbols), len(b.symbols)+1)
	copy(symbols, b.symbols)
	return Buffer{symbols: append(symbols, s), capacity: b.capacity}
}

// Match completes every pending target whose sequence is in buf. It
// updates targets in place and returns the reward gained and the ids of
// the targets completed by this call.
func Match(buf Buffer, targets []Target) (gained int, completed []int) {
	for i := range targets {
		t := &targets[i]
		if t.Completed || !buf.Contains(t.Sequence) {
			continue
		}
		t.Completed = true
		gained += t.Reward
		completed = append(completed, t.ID)
	}
	return gained, completed
}
