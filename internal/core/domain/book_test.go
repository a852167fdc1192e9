package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBook_Aliases(t *testing.T) {
	expected := map[string]BookOrdinal{
		"matthew": 40, "matt": 40, "mt": 40,
		"mark": 41, "mk": 41,
		"luke": 42, "lk": 42,
		"john": 43, "jn": 43,
		"acts": 44,
		"romans": 45, "rom": 45, "ro": 45,
		"1cor": 46, "1corinthians": 46,
		"2cor": 47, "2corinthians": 47,
		"galatians": 48, "gal": 48,
		"ephesians": 49, "eph": 49,
		"philippians": 50, "phil": 50,
		"colossians": 51, "col": 51,
		"1thessalonians": 52, "1thess": 52,
		"2thessalonians": 53, "2thess": 53,
		"1timothy": 54, "1tim": 54,
		"2timothy": 55, "2tim": 55,
		"titus": 56,
		"philemon": 57, "phm": 57,
		"hebrews": 58, "heb": 58,
		"james": 59,
		"1peter": 60, "1pet": 60,
		"2peter": 61, "2pet": 61,
		"1john": 62,
		"2john": 63,
		"3john": 64,
		"jude": 65,
		"revelation": 66, "rev": 66,
	}

	for token, ordinal := range expected {
		t.Run(token, func(t *testing.T) {
			got, ok := ResolveBook(token)
			require.True(t, ok, "expected %q to resolve", token)
			assert.Equal(t, ordinal, got)
		})
	}
}

func TestResolveBook_EveryOrdinalReachable(t *testing.T) {
	seen := make(map[BookOrdinal]bool)
	for _, info := range Books() {
		for _, alias := range info.Aliases {
			got, ok := ResolveBook(alias)
			require.True(t, ok, alias)
			assert.Equal(t, info.Ordinal, got, alias)
			seen[got] = true
		}
	}
	assert.Len(t, seen, 27)
}

func TestResolveBook_Normalization(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected BookOrdinal
	}{
		{"uppercase", "MATT", 40},
		{"mixed case", "Revelation", 66},
		{"surrounding whitespace", "  John \t", 43},
		{"digit and space", "1 Cor", 46},
		{"digit and full name", "2 Corinthians", 47},
		{"digit and space before thess", "2 thess", 53},
		{"second thessalonians abbreviation", "2Thess", 53},
		{"first timothy", "1 Tim", 54},
		{"second peter long", "2 Peter", 61},
		{"numbered john", "1 John", 62},
		{"third john", "3john", 64},
		{"prefix only base", "1 corinth", 46},
		{"roman one", "I Cor", 46},
		{"roman two", "II Corinthians", 47},
		{"roman three", "III John", 64},
		{"roman lowercase", "ii tim", 55},
		{"roman with extra spaces", "i   pet", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveBook(tt.token)
			require.True(t, ok, "expected %q to resolve", tt.token)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBook_Unrecognized(t *testing.T) {
	tokens := []string{
		"",
		"   ",
		"xyz",
		"genesis",
		"matthe",
		"1",
		"ii",
		"3cor",
		"3 thess",
		"4 john",
		"0 john",
		"1 jn",
		"1 acts",
		"iv john",
		"j",
	}

	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			got, ok := ResolveBook(token)
			assert.False(t, ok, "expected %q not to resolve, got %d", token, got)
			assert.Equal(t, BookOrdinal(0), got)
		})
	}
}

func TestBookTitle(t *testing.T) {
	assert.Equal(t, "Good-message according-to Matthew", BookTitle(40))
	assert.Equal(t, "Toward Corinthians, Beta", BookTitle(47))
	assert.Equal(t, "[Revelation]", BookTitle(66))
	assert.Equal(t, UnknownBookTitle, BookTitle(39))
	assert.Equal(t, UnknownBookTitle, BookTitle(67))
	assert.Equal(t, "[Jude]", BookTitle(65))
}

func TestBookOrdinalValid(t *testing.T) {
	assert.True(t, BookOrdinal(40).Valid())
	assert.True(t, BookOrdinal(66).Valid())
	assert.False(t, BookOrdinal(1).Valid())
	assert.False(t, BookOrdinal(67).Valid())
}

func TestBooks(t *testing.T) {
	books := Books()
	require.Len(t, books, 27)

	assert.Equal(t, BookOrdinal(40), books[0].Ordinal)
	assert.Equal(t, []string{"matt", "matthew", "mt"}, books[0].Aliases)
	assert.Equal(t, BookOrdinal(66), books[26].Ordinal)

	for i, info := range books {
		assert.Equal(t, FirstBook+BookOrdinal(i), info.Ordinal)
		assert.NotEqual(t, UnknownBookTitle, info.Title)
		assert.NotEmpty(t, info.Aliases, "book %d has no aliases", info.Ordinal)
	}
}
