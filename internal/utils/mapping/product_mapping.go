package mapping

import (
	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	"github.com/SscSPs/product_catalog_app/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:    d.ProductID,
		Name:         d.Name,
		Price:        d.Price,
		Currency:     d.Currency,
		Featured:     d.Featured,
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		Name:         m.Name,
		Price:        m.Price,
		Currency:     m.Currency,
		Featured:     m.Featured,
		CategoryID:   m.CategoryID,
		CategoryName: m.CategoryName,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of model Products to a slice of domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
