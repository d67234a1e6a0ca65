package model

// Symbol represents one ticker entry in a collection, sourced read-only
// from the collection store.
type Symbol struct {
	Symbol string `json:"symbol" db:"symbol"`
	Name   string `json:"stock_name" db:"stock_name"`
}
