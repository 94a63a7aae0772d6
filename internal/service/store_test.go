package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"flashcards/internal/domain"
	"flashcards/internal/repository/csvfile"
	"flashcards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLoadedStore(t *testing.T, pairs []domain.WordPair) (*VocabularyStore, *testutil.MockDeckRepository) {
	t.Helper()
	repo := testutil.NewLoadedRepository(pairs)
	store := NewVocabularyStore(repo, testutil.NewTestLogger())
	_, err := store.Load()
	require.NoError(t, err)
	return store, repo
}

func TestVocabularyStore_Load(t *testing.T) {
	tests := []struct {
		name          string
		mockPairs     []domain.WordPair
		mockError     error
		expectedLen   int
		expectedError bool
	}{
		{
			name:        "pairs loaded",
			mockPairs:   testutil.NewTestPairs("hello", "hola", "cat", "gato"),
			expectedLen: 2,
		},
		{
			name:        "empty table",
			mockPairs:   nil,
			expectedLen: 0,
		},
		{
			name:          "load error",
			mockError:     domain.NewStoreLoadError("test.csv", os.ErrNotExist),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockDeckRepository)
			repo.On("Source").Return("test.csv").Maybe()
			repo.On("Load").Return(tt.mockPairs, tt.mockError)

			store := NewVocabularyStore(repo, testutil.NewTestLogger())

			pairs, err := store.Load()

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreLoad))
				assert.Nil(t, pairs)
			} else {
				assert.NoError(t, err)
				assert.Len(t, pairs, tt.expectedLen)
				assert.Equal(t, tt.expectedLen, store.Len())
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestVocabularyStore_Load_FailureKeepsPreviousPairs(t *testing.T) {
	store, repo := newLoadedStore(t, testutil.NewTestPairs("hello", "hola"))

	repo.ExpectedCalls = nil
	repo.On("Source").Return("test.csv").Maybe()
	repo.On("Load").Return(nil, domain.NewStoreLoadError("test.csv", fmt.Errorf("missing required columns: Face2")))

	_, err := store.Load()

	assert.Error(t, err)
	assert.Equal(t, testutil.NewTestPairs("hello", "hola"), store.Snapshot())
}

func TestVocabularyStore_Add(t *testing.T) {
	initial := testutil.NewTestPairs("hello", "hola")
	withDog := testutil.NewTestPairs("hello", "hola", "dog", "perro")

	tests := []struct {
		name          string
		pair          domain.WordPair
		saveError     error
		savedPairs    []domain.WordPair
		expectedError error
		expectedPairs []domain.WordPair
	}{
		{
			name:          "valid pair appended",
			pair:          domain.NewWordPair("dog", "perro"),
			savedPairs:    withDog,
			expectedPairs: withDog,
		},
		{
			name:          "zero weight defaults to 1",
			pair:          domain.WordPair{Front: "dog", Back: "perro"},
			savedPairs:    withDog,
			expectedPairs: withDog,
		},
		{
			name:          "duplicate allowed",
			pair:          domain.NewWordPair("hello", "hola"),
			savedPairs:    testutil.NewTestPairs("hello", "hola", "hello", "hola"),
			expectedPairs: testutil.NewTestPairs("hello", "hola", "hello", "hola"),
		},
		{
			name:          "empty front",
			pair:          domain.NewWordPair("", "perro"),
			expectedError: domain.ErrValidation,
			expectedPairs: initial,
		},
		{
			name:          "whitespace back",
			pair:          domain.NewWordPair("dog", "  \t"),
			expectedError: domain.ErrValidation,
			expectedPairs: initial,
		},
		{
			name:          "save error leaves store unchanged",
			pair:          domain.NewWordPair("dog", "perro"),
			saveError:     fmt.Errorf("disk full"),
			savedPairs:    withDog,
			expectedPairs: initial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, repo := newLoadedStore(t, initial)

			if tt.savedPairs != nil {
				repo.On("Save", tt.savedPairs).Return(tt.saveError)
			}

			err := store.Add(tt.pair)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			case tt.saveError != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}

			assert.Equal(t, tt.expectedPairs, store.Snapshot())
			if tt.savedPairs == nil {
				repo.AssertNotCalled(t, "Save", mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestVocabularyStore_NotLoaded(t *testing.T) {
	repo := new(testutil.MockDeckRepository)
	store := NewVocabularyStore(repo, testutil.NewTestLogger())

	err := store.Add(domain.NewWordPair("dog", "perro"))
	assert.ErrorIs(t, err, domain.ErrStoreNotLoaded)

	removed, err := store.Delete("dog", "perro")
	assert.ErrorIs(t, err, domain.ErrStoreNotLoaded)
	assert.Zero(t, removed)

	repo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestVocabularyStore_Delete(t *testing.T) {
	initial := testutil.NewTestPairs("cat", "gato", "dog", "perro", "cat", "gato")

	tests := []struct {
		name            string
		front           string
		back            string
		saveError       error
		savedPairs      []domain.WordPair
		expectedRemoved int
		expectedError   bool
		expectedPairs   []domain.WordPair
	}{
		{
			name:            "removes every match",
			front:           "cat",
			back:            "gato",
			savedPairs:      testutil.NewTestPairs("dog", "perro"),
			expectedRemoved: 2,
			expectedPairs:   testutil.NewTestPairs("dog", "perro"),
		},
		{
			name:            "single match",
			front:           "dog",
			back:            "perro",
			savedPairs:      testutil.NewTestPairs("cat", "gato", "cat", "gato"),
			expectedRemoved: 1,
			expectedPairs:   testutil.NewTestPairs("cat", "gato", "cat", "gato"),
		},
		{
			name:            "front only match is kept",
			front:           "cat",
			back:            "perro",
			expectedRemoved: 0,
			expectedPairs:   initial,
		},
		{
			name:            "no match is a no-op",
			front:           "bird",
			back:            "pájaro",
			expectedRemoved: 0,
			expectedPairs:   initial,
		},
		{
			name:          "save error leaves store unchanged",
			front:         "cat",
			back:          "gato",
			saveError:     fmt.Errorf("disk full"),
			savedPairs:    testutil.NewTestPairs("dog", "perro"),
			expectedError: true,
			expectedPairs: initial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, repo := newLoadedStore(t, initial)

			if tt.savedPairs != nil {
				repo.On("Save", tt.savedPairs).Return(tt.saveError)
			}

			removed, err := store.Delete(tt.front, tt.back)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRemoved, removed)
			}

			assert.Equal(t, tt.expectedPairs, store.Snapshot())
			if tt.savedPairs == nil {
				repo.AssertNotCalled(t, "Save", mock.Anything)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestVocabularyStore_Snapshot_IsCopy(t *testing.T) {
	store, _ := newLoadedStore(t, testutil.NewTestPairs("hello", "hola"))

	snapshot := store.Snapshot()
	snapshot[0].Front = "changed"

	assert.Equal(t, "hello", store.Snapshot()[0].Front)
}

func TestVocabularyStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.csv")
	require.NoError(t, os.WriteFile(path, []byte("Face1,Face2,weight\ncat,gato,1\ndog,perro,1\ncat,gato,1\n"), 0644))

	store := NewVocabularyStore(csvfile.NewDeckFile(path), testutil.NewTestLogger())
	_, err := store.Load()
	require.NoError(t, err)

	require.NoError(t, store.Add(domain.NewWordPair("bird", "pájaro")))
	removed, err := store.Delete("cat", "gato")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Face1,Face2,weight\ndog,perro,1\nbird,pájaro,1\n", string(data))

	reloaded := NewVocabularyStore(csvfile.NewDeckFile(path), testutil.NewTestLogger())
	pairs, err := reloaded.Load()
	require.NoError(t, err)
	assert.Equal(t, store.Snapshot(), pairs)
}
