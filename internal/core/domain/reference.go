package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/unicode/norm"
)

// ReferenceUsage is the example format shown to users after a failed parse
const ReferenceUsage = "Matt 1:1-3"

// Reference is a parsed scripture reference covering one verse or a range.
// Ordering of the two ends is not validated: a reversed range is kept as typed.
type Reference struct {
	Book         BookOrdinal `json:"book"`
	ChapterStart int         `json:"chapter_start"`
	VerseStart   int         `json:"verse_start"`
	ChapterEnd   int         `json:"chapter_end"`
	VerseEnd     int         `json:"verse_end"`
}

// StartKey returns the VerseKey of the first verse
func (r Reference) StartKey() VerseKey {
	return NewVerseKey(r.Book, r.ChapterStart, r.VerseStart)
}

// EndKey returns the VerseKey of the last verse
func (r Reference) EndKey() VerseKey {
	return NewVerseKey(r.Book, r.ChapterEnd, r.VerseEnd)
}

// IsRange returns true if the reference spans more than one verse
func (r Reference) IsRange() bool {
	return r.ChapterStart != r.ChapterEnd || r.VerseStart != r.VerseEnd
}

func (r Reference) String() string {
	if !r.IsRange() {
		return fmt.Sprintf("%d %d:%d", r.Book, r.ChapterStart, r.VerseStart)
	}
	if r.ChapterStart == r.ChapterEnd {
		return fmt.Sprintf("%d %d:%d-%d", r.Book, r.ChapterStart, r.VerseStart, r.VerseEnd)
	}
	return fmt.Sprintf("%d %d:%d-%d:%d", r.Book, r.ChapterStart, r.VerseStart, r.ChapterEnd, r.VerseEnd)
}

// referenceGrammar is the participle grammar for "<book> <chap>:<verse>[-[<chap>:]<verse>]".
// Whitespace is not elided: the book phrase keeps its inner spacing ("1 cor", "ii tim")
// and nothing may follow the reference.
type referenceGrammar struct {
	BookPhrase []string  `parser:"@( Word | Int | Whitespace )+"`
	Start      string    `parser:"@Anchor"`
	End        *rangeEnd `parser:"( Dash @@ )?"`
}

type rangeEnd struct {
	ChapterVerse string `parser:"  @ChapterVerse"`
	Verse        string `parser:"| @Int"`
}

// referenceLexer tokenizes references. Rules are tried in order, so a
// whitespace-led "<digits>:<digits>" is always read as the Anchor that ends
// the book phrase.
var referenceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Anchor", Pattern: `\s+\d+:\d+`},
	{Name: "ChapterVerse", Pattern: `\d+:\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Dash", Pattern: `[-–]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Word", Pattern: `[^\s\d:\-–]+`},
})

var referenceParser = participle.MustBuild[referenceGrammar](
	participle.Lexer(referenceLexer),
)

// ParseReference parses free text such as "Matt 1:1", "jn 3:16", "1 Cor 13:4-7"
// or "Matt 1:1–2:5" (en-dash). Failures wrap ErrMalformedReference or
// ErrUnrecognizedBook, both of which match ErrInvalidReference.
func ParseReference(input string) (*Reference, error) {
	normalized := strings.TrimSpace(norm.NFKC.String(input))
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedReference)
	}

	parsed, err := referenceParser.ParseString("", normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReference, input)
	}

	bookPhrase := strings.Join(parsed.BookPhrase, "")
	book, ok := ResolveBook(bookPhrase)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedBook, bookPhrase)
	}

	chapterStart, verseStart, err := splitChapterVerse(parsed.Start)
	if err != nil {
		return nil, err
	}

	ref := &Reference{
		Book:         book,
		ChapterStart: chapterStart,
		VerseStart:   verseStart,
		ChapterEnd:   chapterStart,
		VerseEnd:     verseStart,
	}

	if parsed.End != nil {
		if parsed.End.ChapterVerse != "" {
			ref.ChapterEnd, ref.VerseEnd, err = splitChapterVerse(parsed.End.ChapterVerse)
		} else {
			ref.VerseEnd, err = parseComponent(parsed.End.Verse, MaxVerse)
		}
		if err != nil {
			return nil, err
		}
	}

	return ref, nil
}

// splitChapterVerse parses "<chapter>:<verse>", ignoring surrounding whitespace
func splitChapterVerse(token string) (int, int, error) {
	chapterText, verseText, ok := strings.Cut(strings.TrimSpace(token), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedReference, token)
	}
	chapter, err := parseComponent(chapterText, MaxChapter)
	if err != nil {
		return 0, 0, err
	}
	verse, err := parseComponent(verseText, MaxVerse)
	if err != nil {
		return 0, 0, err
	}
	return chapter, verse, nil
}

// parseComponent parses a chapter or verse number that must fit a VerseKey slot
func parseComponent(text string, limit int) (int, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%w: number %q out of range 1-%d", ErrMalformedReference, text, limit)
	}
	return n, nil
}
