package order

import (
	"strings"

	"github.com/makeajourney/asnisum/pkg/catalog"
)

// Formatter renders an order as its canonical display line. The
// mention-less form doubles as the grouping key for live tallies, so the
// token order and delimiters here are load-bearing: two orders are the
// same line item iff their formatted text is byte-identical.
type Formatter struct {
	cat *catalog.Catalog
}

// NewFormatter creates a Formatter over the given catalog.
func NewFormatter(cat *catalog.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

// Format renders one order. Token order: mention, temperature label,
// menu text, bean option label, "+"-joined extra labels, "(note)".
// Empty tokens are omitted. Catalog misses degrade to the raw value so
// the output is never silently empty.
func (f *Formatter) Format(o Order, includeMention bool) string {
	parts := make([]string, 0, 6)

	if includeMention && o.UserID != "" {
		parts = append(parts, "<@"+o.UserID+">")
	}

	parts = append(parts, f.cat.TemperatureLabel(string(o.Temperature)))
	parts = append(parts, f.cat.MenuText(o.Menu))

	if o.BeanOption != "" {
		if opt, ok := f.cat.BeanOption(o.BeanOption); ok {
			parts = append(parts, opt.Text)
		} else {
			parts = append(parts, o.BeanOption)
		}
	}

	if extras := f.extraText(o.ExtraOptions); extras != "" {
		parts = append(parts, extras)
	}

	if o.Note != "" {
		parts = append(parts, "("+o.Note+")")
	}

	return strings.Join(parts, " ")
}

// extraText joins the labels of the order's extra options in catalog
// order. Unknown values are skipped; the result is empty when nothing
// matches.
func (f *Formatter) extraText(values []string) string {
	if len(values) == 0 {
		return ""
	}

	chosen := make(map[string]bool, len(values))
	for _, v := range values {
		chosen[v] = true
	}

	var labels []string
	for _, opt := range f.cat.ExtraOptions {
		if chosen[opt.Value] {
			labels = append(labels, opt.Text)
		}
	}
	return strings.Join(labels, "+")
}
