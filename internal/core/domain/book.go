package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BookOrdinal identifies one of the 27 supported books (40 = Matthew ... 66 = Revelation)
type BookOrdinal int

const (
	FirstBook BookOrdinal = 40
	LastBook  BookOrdinal = 66
)

// UnknownBookTitle is shown for ordinals outside the catalog
const UnknownBookTitle = "Unknown Book"

// Valid reports whether the ordinal is inside the catalog range
func (b BookOrdinal) Valid() bool {
	return b >= FirstBook && b <= LastBook
}

// BookInfo describes a catalog entry
type BookInfo struct {
	Ordinal BookOrdinal `json:"ordinal"`
	Title   string      `json:"title"`
	Aliases []string    `json:"aliases"`
}

// bookAliases maps lowercase names and abbreviations to ordinals.
// Numbered books are normally caught by numberedRules first; their entries
// here keep the exact spellings listed in Books().
var bookAliases = map[string]BookOrdinal{
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

var bookTitles = map[BookOrdinal]string{
	40: "Good-message according-to Matthew",
	41: "Good-message according-to Mark",
	42: "Good-message according-to Luke",
	43: "Good-message according-to John",
	44: "Practices of{the sent-off[one]s}",
	45: "Toward Romans",
	46: "Toward Corinthians, Alpha",
	47: "Toward Corinthians, Beta",
	48: "Toward Galatians",
	49: "Toward Ephesians",
	50: "Toward Philippians",
	51: "Toward Colossians",
	52: "Toward Thessalonians, Alpha",
	53: "Toward Thessalonians, Beta",
	54: "Toward Timothy, Alpha",
	55: "Toward Timothy, Beta",
	56: "Toward Titus",
	57: "Toward Philemon",
	58: "Toward Hebrews",
	59: "[James]",
	60: "[1 Peter]",
	61: "[2 Peter]",
	62: "[1 John]",
	63: "[2 John]",
	64: "[3 John]",
	65: "[Jude]",
	66: "[Revelation]",
}

// numberedRule resolves "<digit><base>" tokens such as "1cor" or "2 tim".
// Base is the ordinal of the book numbered 0, so digit 1 maps to Base+1.
type numberedRule struct {
	Prefix   string
	Base     BookOrdinal
	MaxDigit int
}

// Order matters: the first matching prefix wins.
var numberedRules = []numberedRule{
	{Prefix: "cor", Base: 45, MaxDigit: 2},
	{Prefix: "thess", Base: 51, MaxDigit: 2},
	{Prefix: "tim", Base: 53, MaxDigit: 2},
	{Prefix: "pet", Base: 59, MaxDigit: 2},
	{Prefix: "john", Base: 61, MaxDigit: 3},
}

var (
	romanPrefix    = regexp.MustCompile(`^(i{1,3})\s+`)
	numberedPrefix = regexp.MustCompile(`^(\d)\s*(.+)$`)
)

// ResolveBook maps a free-text book token to its ordinal.
// It never fails loudly: an unknown token yields (0, false).
func ResolveBook(token string) (BookOrdinal, bool) {
	raw := strings.TrimSpace(cases.Lower(language.Und).String(token))

	if m := romanPrefix.FindStringSubmatch(raw); m != nil {
		raw = strconv.Itoa(len(m[1])) + " " + raw[len(m[0]):]
	}

	if m := numberedPrefix.FindStringSubmatch(raw); m != nil {
		digit, _ := strconv.Atoi(m[1])
		for _, rule := range numberedRules {
			if !strings.HasPrefix(m[2], rule.Prefix) {
				continue
			}
			if digit >= 1 && digit <= rule.MaxDigit {
				return rule.Base + BookOrdinal(digit), true
			}
			break
		}
	}

	ordinal, ok := bookAliases[raw]
	return ordinal, ok
}

// BookTitle returns the display title for an ordinal, or UnknownBookTitle
func BookTitle(ordinal BookOrdinal) string {
	if !ordinal.Valid() {
		return UnknownBookTitle
	}
	return bookTitles[ordinal]
}

// Books lists the catalog in canonical order
func Books() []BookInfo {
	byOrdinal := make(map[BookOrdinal][]string)
	for alias, ordinal := range bookAliases {
		byOrdinal[ordinal] = append(byOrdinal[ordinal], alias)
	}

	books := make([]BookInfo, 0, int(LastBook-FirstBook)+1)
	for ordinal := FirstBook; ordinal <= LastBook; ordinal++ {
		aliases := byOrdinal[ordinal]
		sort.Strings(aliases)
		books = append(books, BookInfo{
			Ordinal: ordinal,
			Title:   BookTitle(ordinal),
			Aliases: aliases,
		})
	}
	return books
}
