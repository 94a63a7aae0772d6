package repository

import (
	"flashcards/internal/domain"
)

// DeckRepository defines full-table persistence of the vocabulary.
// Load returns a *domain.StoreLoadError when the table cannot be read.
// Save replaces the whole table and either fully succeeds or leaves it untouched.
type DeckRepository interface {
	Load() ([]domain.WordPair, error)
	Save(pairs []domain.WordPair) error
	Source() string
}
