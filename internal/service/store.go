package service

import (
	"fmt"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/repository"

	"go.uber.org/zap"
)

// VocabularyStore owns the ordered word-pair table and keeps it in sync with
// the repository after every mutation. It is not safe for concurrent use.
type VocabularyStore struct {
	repo   repository.DeckRepository
	logger *zap.Logger

	pairs  []domain.WordPair
	loaded bool
}

// NewVocabularyStore creates a store backed by repo
func NewVocabularyStore(repo repository.DeckRepository, logger *zap.Logger) *VocabularyStore {
	return &VocabularyStore{
		repo:   repo,
		logger: logger,
	}
}

// Load reads the table from the repository and replaces the in-memory copy.
// On failure the previous contents are kept.
func (s *VocabularyStore) Load() ([]domain.WordPair, error) {
	pairs, err := s.repo.Load()
	if err != nil {
		s.logger.Error("Failed to load vocabulary",
			zap.String("source", s.repo.Source()),
			zap.Error(err),
		)
		return nil, err
	}

	s.pairs = pairs
	s.loaded = true

	s.logger.Info("Vocabulary loaded",
		zap.String("source", s.repo.Source()),
		zap.Int("pairs", len(pairs)),
	)
	return s.Snapshot(), nil
}

// Add appends a pair and persists the table
func (s *VocabularyStore) Add(pair domain.WordPair) error {
	if !s.loaded {
		return domain.ErrStoreNotLoaded
	}
	if strings.TrimSpace(pair.Front) == "" || strings.TrimSpace(pair.Back) == "" {
		return domain.ErrValidation
	}
	if pair.Weight == 0 {
		pair.Weight = domain.DefaultWeight
	}

	next := make([]domain.WordPair, len(s.pairs), len(s.pairs)+1)
	copy(next, s.pairs)
	next = append(next, pair)

	if err := s.repo.Save(next); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	s.pairs = next

	s.logger.Info("Word pair added",
		zap.String("front", pair.Front),
		zap.String("back", pair.Back),
		zap.Int("pairs", len(s.pairs)),
	)
	return nil
}

// Delete removes every pair matching both faces and persists the table.
// It returns the number of removed pairs; nothing is written when none match.
func (s *VocabularyStore) Delete(front, back string) (int, error) {
	if !s.loaded {
		return 0, domain.ErrStoreNotLoaded
	}

	next := make([]domain.WordPair, 0, len(s.pairs))
	for _, p := range s.pairs {
		if !p.Matches(front, back) {
			next = append(next, p)
		}
	}

	removed := len(s.pairs) - len(next)
	if removed == 0 {
		s.logger.Debug("No word pair matched for deletion",
			zap.String("front", front),
			zap.String("back", back),
		)
		return 0, nil
	}

	if err := s.repo.Save(next); err != nil {
		return 0, fmt.Errorf("save vocabulary: %w", err)
	}
	s.pairs = next

	s.logger.Info("Word pairs deleted",
		zap.String("front", front),
		zap.String("back", back),
		zap.Int("removed", removed),
		zap.Int("pairs", len(s.pairs)),
	)
	return removed, nil
}

// Snapshot returns a copy of the pairs in store order
func (s *VocabularyStore) Snapshot() []domain.WordPair {
	snapshot := make([]domain.WordPair, len(s.pairs))
	copy(snapshot, s.pairs)
	return snapshot
}

// Len returns the number of pairs
func (s *VocabularyStore) Len() int {
	return len(s.pairs)
}

// Source names where the table is persisted
func (s *VocabularyStore) Source() string {
	return s.repo.Source()
}
