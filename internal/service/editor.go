package service

import (
	"strings"

	"flashcards/internal/domain"
)

// Rejection reasons reported by DeckEditor
const (
	ReasonEmptyField  = "empty field"
	ReasonNoSelection = "no selection"
)

// Result is the outcome of an edit request
type Result struct {
	Accepted bool
	Reason   string
	Removed  int // pairs deleted by an accepted delete
}

// Accepted builds a successful result
func Accepted() Result {
	return Result{Accepted: true}
}

// Rejected builds a refused result
func Rejected(reason string) Result {
	return Result{Reason: reason}
}

// DeckEditor validates add/delete requests before applying them to the store
type DeckEditor struct {
	store *VocabularyStore
}

// NewDeckEditor creates a new deck editor
func NewDeckEditor(store *VocabularyStore) *DeckEditor {
	return &DeckEditor{store: store}
}

// SubmitAdd stores a new pair. Surrounding whitespace is dropped from both faces.
// A non-nil error means the pair was valid but could not be persisted.
func (e *DeckEditor) SubmitAdd(front, back string) (Result, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" || back == "" {
		return Rejected(ReasonEmptyField), nil
	}

	if err := e.store.Add(domain.NewWordPair(front, back)); err != nil {
		return Result{}, err
	}
	return Accepted(), nil
}

// SubmitDelete removes every pair matching the selection
func (e *DeckEditor) SubmitDelete(front, back string) (Result, error) {
	if front == "" || back == "" {
		return Rejected(ReasonNoSelection), nil
	}

	removed, err := e.store.Delete(front, back)
	if err != nil {
		return Result{}, err
	}

	result := Accepted()
	result.Removed = removed
	return result, nil
}

// ListSelectable returns the (front, back) pairs in store order
func (e *DeckEditor) ListSelectable() []domain.Selection {
	pairs := e.store.Snapshot()
	selections := make([]domain.Selection, len(pairs))
	for i, p := range pairs {
		selections[i] = domain.Selection{Front: p.Front, Back: p.Back}
	}
	return selections
}

// ResolvePair returns the face opposite to value on the first pair whose
// given side equals value
func (e *DeckEditor) ResolvePair(side domain.Side, value string) (string, bool) {
	for _, p := range e.store.Snapshot() {
		switch side {
		case domain.SideFront:
			if p.Front == value {
				return p.Back, true
			}
		case domain.SideBack:
			if p.Back == value {
				return p.Front, true
			}
		}
	}
	return "", false
}
