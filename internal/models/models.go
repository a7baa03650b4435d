// Package models holds the gorm-mapped records of the shop and their JSON
// shape as consumed by the administration frontend.
package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// All lists every model managed by AutoMigrate.
func All() []any {
	return []any{&User{}, &Client{}, &Product{}, &Vendor{}, &Sale{}, &Purchase{}}
}
