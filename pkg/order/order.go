// Package order holds the order model, the canonical order-line
// formatter, and the aggregation used for live tallies and close-time
// summaries.
package order

import (
	"github.com/google/uuid"

	"github.com/makeajourney/asnisum/pkg/catalog"
)

// Temperature is the serving temperature of an order.
type Temperature string

const (
	Hot Temperature = "hot"
	Ice Temperature = "ice"
)

// Order is one accepted submission. Immutable once created.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Menu         string      `json:"menu"`
	Temperature  Temperature `json:"temperature"`
	BeanOption   string      `json:"bean_option,omitempty"`
	ExtraOptions []string    `json:"extra_options,omitempty"`
	Note         string      `json:"note,omitempty"`
}

// New builds an Order from a form submission, resolving the bean option
// through the catalog's single defaulting rule.
func New(cat *catalog.Catalog, userID, menu string, temp Temperature, rawBean string, extras []string, note string) Order {
	bean, _ := cat.ResolveBeanOption(menu, rawBean)
	return Order{
		ID:           uuid.New().String(),
		UserID:       userID,
		Menu:         menu,
		Temperature:  temp,
		BeanOption:   bean,
		ExtraOptions: extras,
		Note:         note,
	}
}
