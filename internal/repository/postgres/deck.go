package postgres

import (
	"database/sql"
	"fmt"

	"flashcards/internal/domain"
)

const deckSource = "postgres:word_pairs"

// DeckRepo implements repository.DeckRepository on the word_pairs table
type DeckRepo struct {
	db *sql.DB
}

// NewDeckRepo creates a new deck repository
func NewDeckRepo(db *sql.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

// Source names the table backing the deck
func (r *DeckRepo) Source() string {
	return deckSource
}

// Load returns all pairs in stored order
func (r *DeckRepo) Load() ([]domain.WordPair, error) {
	query := `
		SELECT face1, face2, weight
		FROM word_pairs
		ORDER BY position
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, domain.NewStoreLoadError(deckSource, err)
	}
	defer rows.Close()

	var pairs []domain.WordPair
	for rows.Next() {
		var p domain.WordPair
		if err := rows.Scan(&p.Front, &p.Back, &p.Weight); err != nil {
			return nil, domain.NewStoreLoadError(deckSource, err)
		}
		pairs = append(pairs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreLoadError(deckSource, err)
	}
	return pairs, nil
}

// Save replaces the table contents in a single transaction
func (r *DeckRepo) Save(pairs []domain.WordPair) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM word_pairs`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear word pairs: %w", err)
	}

	query := `
		INSERT INTO word_pairs (position, face1, face2, weight)
		VALUES ($1, $2, $3, $4)
	`
	for i, p := range pairs {
		if _, err := tx.Exec(query, i, p.Front, p.Back, p.Weight); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert word pair %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
