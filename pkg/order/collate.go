package order

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator compares menu names with locale-aware ordering. It is
// injected into the aggregator so sorting behavior is testable on its
// own and follows the catalog's language rather than byte order.
type Collator struct {
	c *collate.Collator
}

// NewCollator builds a Collator for the given BCP 47 tag. An empty or
// unparseable tag falls back to Korean, the catalog's default language.
func NewCollator(tag string) *Collator {
	lang := language.Korean
	if tag != "" {
		if parsed, err := language.Parse(tag); err == nil {
			lang = parsed
		}
	}
	return &Collator{c: collate.New(lang)}
}

// Compare returns -1, 0, or +1 following the collation order.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

// Less reports whether a sorts before b.
func (c *Collator) Less(a, b string) bool {
	return c.Compare(a, b) < 0
}
