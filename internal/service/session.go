package service

import (
	"flashcards/internal/domain"
)

// Phase is the observable state of a study session
type Phase int

const (
	PhaseUnrevealed Phase = iota
	PhaseRevealed
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseUnrevealed:
		return "unrevealed"
	case PhaseRevealed:
		return "revealed"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SessionState is a read-only view of a session
type SessionState struct {
	Facings  []domain.CardFacing
	Position int
	Revealed bool
	Ended    bool
}

// StudySession walks a deck once, showing every pair front-to-back and then
// back-to-front. It holds its own copy of the facings.
type StudySession struct {
	facings  []domain.CardFacing
	position int
	revealed bool
	ended    bool
}

// StartSession builds a session over pairs
func StartSession(pairs []domain.WordPair) (*StudySession, error) {
	if len(pairs) == 0 {
		return nil, domain.ErrEmptyDeck
	}

	facings := make([]domain.CardFacing, 0, 2*len(pairs))
	for _, p := range pairs {
		both := p.Facings()
		facings = append(facings, both[0], both[1])
	}

	return &StudySession{facings: facings}, nil
}

// Reveal exposes the hidden side of the current card. No-op when already
// revealed or ended.
func (s *StudySession) Reveal() Phase {
	if !s.ended {
		s.revealed = true
	}
	return s.Phase()
}

// Advance moves to the next card, hiding it. Advancing past the last card ends
// the session; advancing an ended session keeps it ended.
func (s *StudySession) Advance() Phase {
	if s.ended {
		return PhaseEnded
	}

	s.revealed = false
	if s.position >= len(s.facings)-1 {
		s.ended = true
		return PhaseEnded
	}

	s.position++
	return PhaseUnrevealed
}

// Current returns the card on display and whether it is revealed
func (s *StudySession) Current() (domain.CardFacing, bool, error) {
	if s.ended {
		return domain.CardFacing{}, false, domain.ErrSessionEnded
	}
	return s.facings[s.position], s.revealed, nil
}

// Phase reports where the session is in its lifecycle
func (s *StudySession) Phase() Phase {
	switch {
	case s.ended:
		return PhaseEnded
	case s.revealed:
		return PhaseRevealed
	default:
		return PhaseUnrevealed
	}
}

// Progress returns the 1-based position of the current card and the total
func (s *StudySession) Progress() (int, int) {
	if s.ended {
		return len(s.facings), len(s.facings)
	}
	return s.position + 1, len(s.facings)
}

// State returns a copy of the session state
func (s *StudySession) State() SessionState {
	facings := make([]domain.CardFacing, len(s.facings))
	copy(facings, s.facings)
	return SessionState{
		Facings:  facings,
		Position: s.position,
		Revealed: s.revealed,
		Ended:    s.ended,
	}
}
