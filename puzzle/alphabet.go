package puzzle

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Alphabet is the set of characters a player may type into a cell.
// The zero value accepts any Unicode letter.
type Alphabet struct {
	Name string
	// RTL marks scripts laid out right to left; horizontal arrows are mirrored.
	RTL   bool
	table *unicode.RangeTable
	upper bool
}

var (
	// Arabic accepts the Arabic block, U+0600 to U+06FF.
	Arabic = Alphabet{
		Name:  "arabic",
		RTL:   true,
		table: &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0600, Hi: 0x06ff, Stride: 1}}},
	}

	// Latin accepts A to Z; lower-case entries are upper-cased first.
	Latin = Alphabet{
		Name:  "latin",
		table: &unicode.RangeTable{R16: []unicode.Range16{{Lo: 'A', Hi: 'Z', Stride: 1}}, LatinOffset: 1},
		upper: true,
	}
)

var alphabets = map[string]Alphabet{
	Arabic.Name: Arabic,
	Latin.Name:  Latin,
}

// LookupAlphabet returns the built-in alphabet with the given name.
func LookupAlphabet(name string) (Alphabet, error) {
	a, ok := alphabets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Alphabet{}, fmt.Errorf("unknown alphabet %q", name)
	}
	return a, nil
}

// Accepts reports whether r may be entered into a cell.
func (a Alphabet) Accepts(r rune) bool {
	if a.table == nil {
		return unicode.IsLetter(r)
	}
	return unicode.Is(a.table, r)
}

// Normalize brings raw input to the form stored in the grid.
func (a Alphabet) Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if a.upper {
		s = cases.Upper(language.Und).String(s)
	}
	return s
}

// Entry normalises value and reports whether it is a legal cell entry:
// either empty (a clear) or exactly one accepted character.
func (a Alphabet) Entry(value string) (string, bool) {
	v := a.Normalize(value)
	if v == "" {
		return "", true
	}
	r, size := utf8.DecodeRuneInString(v)
	if size != len(v) || !a.Accepts(r) {
		return "", false
	}
	return v, true
}
