package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreLoad is matched by every *StoreLoadError
	ErrStoreLoad = errors.New("failed to load vocabulary")
	// ErrValidation is returned when a pair has an empty face
	ErrValidation = errors.New("front and back cannot be empty")
	// ErrEmptyDeck is returned when a study session is started without pairs
	ErrEmptyDeck = errors.New("deck is empty")
	// ErrSessionEnded is returned when reading a card from a finished session
	ErrSessionEnded = errors.New("study session has ended")
	// ErrStoreNotLoaded is returned when mutating a store before Load succeeded
	ErrStoreNotLoaded = errors.New("vocabulary store is not loaded")
)

// StoreLoadError describes why a vocabulary table could not be read
type StoreLoadError struct {
	Source string
	Err    error
}

// NewStoreLoadError wraps err with the location that failed to load
func NewStoreLoadError(source string, err error) *StoreLoadError {
	return &StoreLoadError{Source: source, Err: err}
}

func (e *StoreLoadError) Error() string {
	return fmt.Sprintf("load vocabulary from %s: %v", e.Source, e.Err)
}

func (e *StoreLoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStoreLoad) hold for any StoreLoadError
func (e *StoreLoadError) Is(target error) bool {
	return target == ErrStoreLoad
}
