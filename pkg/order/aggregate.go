package order

import (
	"sort"
	"strings"
)

// Line is one aggregated output row: a rendered group key and how many
// orders fell into the group.
type Line struct {
	Text  string
	Count int
}

// compositeKey identifies a close-time summary group. It is compared by
// value; the pipe-delimited string form exists only at the rendering
// boundary, so field content can never collide with the delimiter in
// the grouping itself.
type compositeKey struct {
	Menu        string
	Temperature string
	Bean        string
	Extras      string
	Note        string
}

func (k compositeKey) render() string {
	parts := make([]string, 0, 5)
	for _, field := range []string{k.Menu, k.Temperature, k.Bean, k.Extras, k.Note} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " | ")
}

// Aggregator turns an order ledger into deterministic grouped tallies.
// Both entry points are pure over the snapshot they are given.
type Aggregator struct {
	formatter *Formatter
	collator  *Collator
}

// NewAggregator creates an Aggregator using the given formatter for
// grouping keys and collator for menu-name ordering.
func NewAggregator(formatter *Formatter, collator *Collator) *Aggregator {
	return &Aggregator{formatter: formatter, collator: collator}
}

// LiveStatus groups orders by their mention-less formatted text and
// counts occurrences. Groups are ordered by menu display text under the
// collator; groups with the same menu keep the insertion order of their
// first occurrence.
func (a *Aggregator) LiveStatus(orders []Order) []Line {
	type group struct {
		text     string
		menuText string
		count    int
	}

	index := make(map[string]*group, len(orders))
	var groups []*group

	for _, o := range orders {
		text := a.formatter.Format(o, false)
		g, ok := index[text]
		if !ok {
			g = &group{text: text, menuText: a.formatter.cat.MenuText(o.Menu)}
			index[text] = g
			groups = append(groups, g)
		}
		g.count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return a.collator.Less(groups[i].menuText, groups[j].menuText)
	})

	lines := make([]Line, len(groups))
	for i, g := range groups {
		lines[i] = Line{Text: g.text, Count: g.count}
	}
	return lines
}

// CloseSummary groups orders by composite key (menu value, temperature,
// bean option, sorted extras, note; absent fields excluded from the
// rendered key) and counts occurrences. Groups are ordered by the menu
// component only, under the collator, so line items sharing a menu stay
// adjacent; within one menu, first-occurrence order is kept.
func (a *Aggregator) CloseSummary(orders []Order) []Line {
	counts := make(map[compositeKey]int, len(orders))
	var keys []compositeKey

	for _, o := range orders {
		key := compositeKey{
			Menu:        o.Menu,
			Temperature: string(o.Temperature),
			Bean:        o.BeanOption,
			Extras:      sortedExtras(o.ExtraOptions),
			Note:        o.Note,
		}
		if _, ok := counts[key]; !ok {
			keys = append(keys, key)
		}
		counts[key]++
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return a.collator.Less(keys[i].Menu, keys[j].Menu)
	})

	lines := make([]Line, len(keys))
	for i, key := range keys {
		lines[i] = Line{Text: key.render(), Count: counts[key]}
	}
	return lines
}

// sortedExtras canonicalizes the extra-option set for grouping: value
// order is semantically irrelevant, so it must not split groups.
func sortedExtras(values []string) string {
	if len(values) == 0 {
		return ""
	}
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, "+")
}
