package roll

import (
	"github.com/google/uuid"

	"github.com/Faultbox/tavern-dice/internal/dice"
)

// Session is one request-to-result lifecycle. It is mutated by the engine
// while rolling and read-only once finalized.
type Session struct {
	ID        uuid.UUID
	Requested dice.Counts
	Power     float32
	Spin      float32
	Dice      []*Die

	rolling   bool
	settling  bool
	finalized bool
	result    Result
}

func newSession(requested dice.Counts, power, spin float32) *Session {
	return &Session{
		ID:        uuid.New(),
		Requested: requested,
		Power:     power,
		Spin:      spin,
	}
}

// Rolling reports whether the session is waiting for its dice to settle.
func (s *Session) Rolling() bool {
	return s.rolling
}

// Finalized reports whether the result has been computed.
func (s *Session) Finalized() bool {
	return s.finalized
}

// Result returns the finalized result.
func (s *Session) Result() (Result, bool) {
	return s.result, s.finalized
}

func (s *Session) finish(r Result) {
	s.result = r
	s.finalized = true
	s.rolling = false
}
