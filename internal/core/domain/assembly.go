package domain

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	// NoDataText is the reply when a lookup renders no words
	NoDataText = "(no data)"

	// MaxMessageLength is the reply ceiling of the chat channel, in UTF-16 code units
	MaxMessageLength = 2000

	// Ellipsis marks a truncated reply
	Ellipsis = "..."

	nbsp = "\u00a0"
)

// WordRow is one tagged word returned by the concordance store.
// Several rows may share a key; Word is nil when the track has no text.
type WordRow struct {
	Key  VerseKey `json:"key"`
	Word *string  `json:"word"`
}

// Text returns the word or "" when absent
func (r WordRow) Text() string {
	if r.Word == nil {
		return ""
	}
	return *r.Word
}

var superscriptDigits = [10]string{"⁰", "¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹"}

// Superscript renders n digit by digit with Unicode superscript glyphs
func Superscript(n int) string {
	var sb strings.Builder
	for _, d := range strconv.Itoa(n) {
		if d >= '0' && d <= '9' {
			sb.WriteString(superscriptDigits[d-'0'])
		} else {
			sb.WriteRune(d)
		}
	}
	return sb.String()
}

// SkipCount returns how many following rows repeat members of a compound word.
// The concordance stores "w1_w2_w1" style compounds and then repeats the
// members as separate rows.
func SkipCount(word string) int {
	switch strings.Count(word, "_") {
	case 2:
		return 1
	case 3:
		return 2
	default:
		return 0
	}
}

// Assemble renders rows as reader-facing text: a bold book title, then the
// words with inline chapter and verse markers. The book comes from the first
// row's key. Returns NoDataText when nothing is rendered.
func Assemble(rows []WordRow) string {
	if len(rows) == 0 {
		return NoDataText
	}

	var body strings.Builder
	var (
		lastVerseKey VerseKey
		haveVerse    bool
		lastChapter  int
		haveChapter  bool
		skipNext     int
	)

	for _, row := range rows {
		if skipNext > 0 {
			skipNext--
			continue
		}

		word := row.Text()
		if word == "" {
			continue
		}

		chapter := row.Key.Chapter()
		if !haveChapter || chapter != lastChapter {
			body.WriteString(nbsp + "**" + Superscript(chapter) + "**" + nbsp)
			lastChapter, haveChapter = chapter, true
			haveVerse = false
		}

		if !haveVerse || row.Key != lastVerseKey {
			body.WriteString(nbsp + Superscript(row.Key.Verse()) + nbsp)
			lastVerseKey, haveVerse = row.Key, true
		}

		body.WriteString(word)
		body.WriteString(" ")
		skipNext = SkipCount(word)
	}

	if body.Len() == 0 {
		return NoDataText
	}

	return "**" + BookTitle(rows[0].Key.Book()) + "**\n" + body.String()
}

// UTF16Len returns the length of s in UTF-16 code units, the unit chat
// platforms use for message limits
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// Truncate caps text at limit UTF-16 code units. When it cuts, the last three
// units are replaced with Ellipsis so the result still fits. Cuts never split
// a rune.
func Truncate(text string, limit int) (string, bool) {
	if UTF16Len(text) <= limit {
		return text, false
	}

	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep < 0 {
		keep = 0
	}

	units := 0
	end := 0
	for i, r := range text {
		width := utf16.RuneLen(r)
		if units+width > keep {
			break
		}
		units += width
		end = i + utf8.RuneLen(r)
	}

	return text[:end] + Ellipsis, true
}
