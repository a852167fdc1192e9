package domain

import "fmt"

// VerseKey packs (book, chapter, verse) into one sortable integer:
//
//	book*1_000_000 + chapter*1_000 + verse
//
// Ordering is book-major, chapter-next, verse-minor. The packing is only
// order-preserving while chapter and verse stay below 1000; ParseReference
// rejects references outside that domain.
type VerseKey int64

const (
	bookFactor    = 1_000_000
	chapterFactor = 1_000

	// MaxChapter and MaxVerse are the largest components a VerseKey can hold
	MaxChapter = chapterFactor - 1
	MaxVerse   = chapterFactor - 1

	// rangeEndMargin widens the upper bound so an inclusive BETWEEN over
	// integer keys includes every row of the last verse. It stays below 1,
	// so it never reaches the next verse.
	rangeEndMargin = 0.99
)

// NewVerseKey builds a key from its components
func NewVerseKey(book BookOrdinal, chapter, verse int) VerseKey {
	return VerseKey(int64(book)*bookFactor + int64(chapter)*chapterFactor + int64(verse))
}

// Book returns the book ordinal encoded in the key
func (k VerseKey) Book() BookOrdinal {
	return BookOrdinal(k / bookFactor)
}

// Chapter returns the chapter number encoded in the key
func (k VerseKey) Chapter() int {
	return int((k % bookFactor) / chapterFactor)
}

// Verse returns the verse number encoded in the key
func (k VerseKey) Verse() int {
	return int(k % chapterFactor)
}

func (k VerseKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.Book(), k.Chapter(), k.Verse())
}

// RangeBounds is a closed numeric range over VerseKeys
type RangeBounds struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether start <= key <= end
func (b RangeBounds) Contains(key VerseKey) bool {
	k := float64(key)
	return k >= b.Start && k <= b.End
}

// Empty reports whether no key can fall inside the bounds (reversed range)
func (b RangeBounds) Empty() bool {
	return b.Start > b.End
}

// EncodeRange converts a reference into inclusive query bounds
func EncodeRange(ref Reference) RangeBounds {
	return RangeBounds{
		Start: float64(ref.StartKey()) + 0.00,
		End:   float64(ref.EndKey()) + rangeEndMargin,
	}
}
