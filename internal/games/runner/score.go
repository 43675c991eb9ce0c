package runner

// Score counts obstacles that left the playfield. A frozen score ignores
// further additions; it is frozen when a run ends.
type Score struct {
	value  int
	frozen bool
}

// Add increases the score by n. Non-positive n and frozen scores are ignored.
func (s *Score) Add(n int) {
	if n <= 0 || s.frozen {
		return
	}
	s.value += n
}

func (s *Score) Freeze() {
	s.frozen = true
}

func (s *Score) Reset() {
	s.value = 0
	s.frozen = false
}

func (s *Score) Value() int {
	return s.value
}
