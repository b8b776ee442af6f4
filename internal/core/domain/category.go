package domain

// Category groups products in the catalog.
type Category struct {
	CategoryID int64  `json:"categoryID"` // Primary Key
	Name       string `json:"name"`       // Unique
	AuditFields
}
