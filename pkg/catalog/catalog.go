// Package catalog holds the menu reference data used by the order bot:
// menu items, bean/temperature/extra option lists, and the category rules
// that decide which items take a bean option.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MenuItem is a single orderable menu entry.
type MenuItem struct {
	Text     string `json:"text"`
	Value    string `json:"value"`
	Category string `json:"category"`
}

// Option is a selectable option with a display label and a stable value.
type Option struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Catalog is the full menu configuration. It is read-only reference data
// for the session engine; the admin page is the only writer.
type Catalog struct {
	Menus              []MenuItem `json:"menus"`
	BeanOptions        []Option   `json:"bean_options"`
	TemperatureOptions []Option   `json:"temperature_options"`
	ExtraOptions       []Option   `json:"extra_options"`

	// TemperatureLabels maps a temperature value to the prefix used when
	// rendering an order line ("hot" -> "따뜻한"), as opposed to the
	// TemperatureOptions labels shown in the order form.
	TemperatureLabels map[string]string `json:"temperature_labels"`

	// CategoriesNeedingBeanOption lists menu categories that always carry
	// a bean option, defaulted when the submitter picked none.
	CategoriesNeedingBeanOption []string `json:"categories_needing_bean_option"`

	// DefaultBeanOption is the bean value assumed for bean-carrying
	// categories when the submitter made no explicit choice.
	DefaultBeanOption string `json:"default_bean_option"`

	// Language is the BCP 47 tag used for locale-aware ordering of menu
	// names in summaries.
	Language string `json:"language"`
}

// Menu returns the menu item with the given value.
func (c *Catalog) Menu(value string) (MenuItem, bool) {
	for _, m := range c.Menus {
		if m.Value == value {
			return m, true
		}
	}
	return MenuItem{}, false
}

// MenuText returns the display text for a menu value. A value missing
// from the catalog is a data-integrity defect; the raw value is returned
// so rendered output is never silently empty.
func (c *Catalog) MenuText(value string) string {
	if m, ok := c.Menu(value); ok {
		return m.Text
	}
	return value
}

// BeanOption returns the bean option with the given value.
func (c *Catalog) BeanOption(value string) (Option, bool) {
	return findOption(c.BeanOptions, value)
}

// ExtraOption returns the extra option with the given value.
func (c *Catalog) ExtraOption(value string) (Option, bool) {
	return findOption(c.ExtraOptions, value)
}

// TemperatureLabel returns the rendering prefix for a temperature value,
// falling back to the raw value for unknown temperatures.
func (c *Catalog) TemperatureLabel(value string) string {
	if label, ok := c.TemperatureLabels[value]; ok {
		return label
	}
	return value
}

func findOption(opts []Option, value string) (Option, bool) {
	for _, o := range opts {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// NeedsBeanOption reports whether the given menu category carries a bean
// option.
func (c *Catalog) NeedsBeanOption(category string) bool {
	for _, cat := range c.CategoriesNeedingBeanOption {
		if cat == category {
			return true
		}
	}
	return false
}

// ResolveBeanOption resolves the stored bean option for an order against
// the menu item's category. For bean-carrying categories an unset choice
// resolves to the catalog default; for other categories the raw choice is
// kept as-is (absent stays absent). This is the single defaulting point;
// callers must not re-implement the rule.
func (c *Catalog) ResolveBeanOption(menuValue, raw string) (string, bool) {
	item, ok := c.Menu(menuValue)
	if ok && c.NeedsBeanOption(item.Category) {
		if raw == "" {
			return c.DefaultBeanOption, true
		}
		return raw, true
	}
	if raw == "" {
		return "", false
	}
	return raw, true
}

// Load reads a catalog from a JSON file. A missing file yields the
// built-in default catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Save writes the catalog as indented JSON, creating parent directories
// as needed.
func Save(path string, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Validate checks structural integrity: non-empty menus, unique values,
// and a default bean option that exists in the bean option list.
func (c *Catalog) Validate() error {
	if len(c.Menus) == 0 {
		return fmt.Errorf("catalog has no menus")
	}

	seen := make(map[string]bool, len(c.Menus))
	for i, m := range c.Menus {
		if m.Value == "" {
			return fmt.Errorf("menus[%d]: value is required", i)
		}
		if seen[m.Value] {
			return fmt.Errorf("menus[%d]: duplicate value %q", i, m.Value)
		}
		seen[m.Value] = true
	}

	if len(c.BeanOptions) > 0 {
		if _, ok := c.BeanOption(c.DefaultBeanOption); !ok {
			return fmt.Errorf("default bean option %q not in bean_options", c.DefaultBeanOption)
		}
	}
	return nil
}
