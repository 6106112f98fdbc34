package datatable

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale, or an unparseable one, is configured.
const DefaultLocale = "en"

// Comparer orders two strings, returning a negative number, zero, or a
// positive number like strings.Compare.
type Comparer interface {
	Compare(a, b string) int
}

// ComparerFunc adapts an ordinary function to a Comparer.
type ComparerFunc func(a, b string) int

func (f ComparerFunc) Compare(a, b string) int {
	return f(a, b)
}

// Binary compares strings by their bytes.
var Binary Comparer = ComparerFunc(strings.Compare)

// Collator is a locale-aware Comparer. It is safe for concurrent use.
type Collator struct {
	mu  sync.Mutex
	c   *collate.Collator
	tag language.Tag
}

// NewCollator returns a Collator for the given BCP 47 locale. An empty or
// invalid locale falls back to DefaultLocale.
func NewCollator(locale string) *Collator {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Collator{c: collate.New(tag), tag: tag}
}

// Compare orders a and b by the collator's locale rules.
func (c *Collator) Compare(a, b string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.CompareString(a, b)
}

// Locale returns the BCP 47 tag the collator was built for.
func (c *Collator) Locale() string {
	return c.tag.String()
}
