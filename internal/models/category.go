package models

// Category is the database representation of a row in the categories table.
type Category struct {
	CategoryID int64  `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
}
