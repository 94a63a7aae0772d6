package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flashcards/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocabulary.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDeckFile_Load(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expected      []domain.WordPair
		expectedError string
	}{
		{
			name:    "with weight column",
			content: "Face1,Face2,weight\nhello,hola,1\ncat,gato,3\n",
			expected: []domain.WordPair{
				{Front: "hello", Back: "hola", Weight: 1},
				{Front: "cat", Back: "gato", Weight: 3},
			},
		},
		{
			name:    "without weight column",
			content: "Face1,Face2\nhello,hola\n",
			expected: []domain.WordPair{
				{Front: "hello", Back: "hola", Weight: 1},
			},
		},
		{
			name:    "columns in any order",
			content: "weight,Face2,Face1\n2,hola,hello\n",
			expected: []domain.WordPair{
				{Front: "hello", Back: "hola", Weight: 2},
			},
		},
		{
			name:    "empty weight defaults to 1",
			content: "Face1,Face2,weight\nhello,hola,\n",
			expected: []domain.WordPair{
				{Front: "hello", Back: "hola", Weight: 1},
			},
		},
		{
			name:    "quoted fields with commas",
			content: "Face1,Face2,weight\n\"good morning, sir\",\"buenos días, señor\",1\n",
			expected: []domain.WordPair{
				{Front: "good morning, sir", Back: "buenos días, señor", Weight: 1},
			},
		},
		{
			name:    "duplicates preserved in order",
			content: "Face1,Face2,weight\ncat,gato,1\ndog,perro,1\ncat,gato,1\n",
			expected: []domain.WordPair{
				{Front: "cat", Back: "gato", Weight: 1},
				{Front: "dog", Back: "perro", Weight: 1},
				{Front: "cat", Back: "gato", Weight: 1},
			},
		},
		{
			name:     "header only",
			content:  "Face1,Face2,weight\n",
			expected: nil,
		},
		{
			name:          "missing back column",
			content:       "Face1,weight\nhello,1\n",
			expectedError: "Face2",
		},
		{
			name:          "missing both columns",
			content:       "front,back\nhello,hola\n",
			expectedError: "Face1, Face2",
		},
		{
			name:          "empty file",
			content:       "",
			expectedError: "missing header",
		},
		{
			name:          "short row",
			content:       "Face1,Face2\nhello\n",
			expectedError: "row 2",
		},
		{
			name:          "invalid weight",
			content:       "Face1,Face2,weight\nhello,hola,heavy\n",
			expectedError: "invalid weight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := NewDeckFile(writeFile(t, tt.content))

			pairs, err := deck.Load()

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrStoreLoad))
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, pairs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, pairs)
		})
	}
}

func TestDeckFile_Load_MissingFile(t *testing.T) {
	deck := NewDeckFile(filepath.Join(t.TempDir(), "missing.csv"))

	pairs, err := deck.Load()

	assert.Nil(t, pairs)
	assert.True(t, errors.Is(err, domain.ErrStoreLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDeckFile_RoundTrip(t *testing.T) {
	content := "Face1,Face2,weight\nhello,hola,1\n\"a, b\",\"c \"\"d\"\"\",2\ncat,gato,1\n"
	path := writeFile(t, content)
	deck := NewDeckFile(path)

	pairs, err := deck.Load()
	require.NoError(t, err)
	require.NoError(t, deck.Save(pairs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDeckFile_Save_AddsWeightColumn(t *testing.T) {
	path := writeFile(t, "Face1,Face2\nhello,hola\n")
	deck := NewDeckFile(path)

	pairs, err := deck.Load()
	require.NoError(t, err)
	require.NoError(t, deck.Save(pairs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Face1,Face2,weight\nhello,hola,1\n", string(data))
}

func TestDeckFile_Save_LeavesNoTempFiles(t *testing.T) {
	path := writeFile(t, "Face1,Face2,weight\n")
	deck := NewDeckFile(path)

	require.NoError(t, deck.Save([]domain.WordPair{domain.NewWordPair("dog", "perro")}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "vocabulary.csv", entries[0].Name())
}

func TestDeckFile_Save_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "vocabulary.csv")
	deck := NewDeckFile(path)

	err := deck.Save([]domain.WordPair{domain.NewWordPair("dog", "perro")})

	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestDeckFile_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocabulary.csv")
	deck := NewDeckFile(path)

	created, err := deck.Init()
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Face1,Face2,weight\n", string(data))

	created, err = deck.Init()
	require.NoError(t, err)
	assert.False(t, created)

	pairs, err := deck.Load()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}
