package testutil

import (
	"flashcards/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockDeckRepository is a mock for DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) Load() ([]domain.WordPair, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WordPair), args.Error(1)
}

func (m *MockDeckRepository) Save(pairs []domain.WordPair) error {
	args := m.Called(pairs)
	return args.Error(0)
}

func (m *MockDeckRepository) Source() string {
	args := m.Called()
	return args.String(0)
}
