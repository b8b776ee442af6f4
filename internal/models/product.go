package models

import "github.com/shopspring/decimal"

// Product is the database representation of a row in the products table,
// joined with the owning category's name.
type Product struct {
	ProductID    int64           `db:"product_id"`
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	Currency     string          `db:"currency"`
	Featured     bool            `db:"featured"`
	CategoryID   int64           `db:"category_id"`
	CategoryName string          `db:"category_name"`
	AuditFields
}
