package testutil

import (
	"flashcards/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestPairs builds weight-1 pairs from alternating front/back values
func NewTestPairs(faces ...string) []domain.WordPair {
	pairs := make([]domain.WordPair, 0, len(faces)/2)
	for i := 0; i+1 < len(faces); i += 2 {
		pairs = append(pairs, domain.NewWordPair(faces[i], faces[i+1]))
	}
	return pairs
}

// NewLoadedRepository returns a mock repository that serves pairs on Load
func NewLoadedRepository(pairs []domain.WordPair) *MockDeckRepository {
	repo := new(MockDeckRepository)
	repo.On("Source").Return("test.csv").Maybe()
	repo.On("Load").Return(pairs, nil)
	return repo
}
