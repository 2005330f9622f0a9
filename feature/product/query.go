package product

import (
	"strings"

	"product-catalog/feature/product/models"

	"gorm.io/gorm"
)

// Predicate is a named filter condition.
type Predicate struct {
	Name  string
	Apply func(db *gorm.DB) *gorm.DB
}

// PredicateBuilder accumulates a conjunction of named predicates.
type PredicateBuilder struct {
	predicates []Predicate
}

// NewPredicateBuilder creates an empty builder.
func NewPredicateBuilder() *PredicateBuilder {
	return &PredicateBuilder{}
}

// Add appends a predicate.
func (b *PredicateBuilder) Add(name string, apply func(db *gorm.DB) *gorm.DB) *PredicateBuilder {
	b.predicates = append(b.predicates, Predicate{Name: name, Apply: apply})
	return b
}

// WithStatus filters on the status code, defaulting to Active when code is empty.
func (b *PredicateBuilder) WithStatus(code string) *PredicateBuilder {
	code = strings.TrimSpace(code)
	if code == "" {
		code = models.TargetStatus(true).Code
	}
	return b.Add("status", func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.ProductStatus{}).
			Select("id").
			Where("code = ?", code)
		return db.Where("products.product_status_id IN (?)", sub)
	})
}

// WithCompany filters on the exact company code. Empty adds nothing.
func (b *PredicateBuilder) WithCompany(code string) *PredicateBuilder {
	code = strings.TrimSpace(code)
	if code == "" {
		return b
	}
	return b.Add("company", func(db *gorm.DB) *gorm.DB {
		return db.Where("products.company_code = ?", code)
	})
}

// WithSearch matches the keyword inside name, description or SAP number. Empty adds nothing.
func (b *PredicateBuilder) WithSearch(keyword string) *PredicateBuilder {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return b
	}
	like := "%" + keyword + "%"
	return b.Add("search", func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(products.name LIKE ? OR products.description LIKE ? OR products.product_sap_number LIKE ?)",
			like, like, like,
		)
	})
}

// Names lists the accumulated predicates in order.
func (b *PredicateBuilder) Names() []string {
	names := make([]string, 0, len(b.predicates))
	for _, p := range b.predicates {
		names = append(names, p.Name)
	}
	return names
}

// Apply adds every predicate to db.
func (b *PredicateBuilder) Apply(db *gorm.DB) *gorm.DB {
	for _, p := range b.predicates {
		db = p.Apply(db)
	}
	return db
}

// Filter is the listing filter after request parsing.
type Filter struct {
	CompanyCode   string
	SearchKeyword string
	StatusCode    string
}

// Predicates returns the builder for f.
func (f Filter) Predicates() *PredicateBuilder {
	return NewPredicateBuilder().
		WithStatus(f.StatusCode).
		WithCompany(f.CompanyCode).
		WithSearch(f.SearchKeyword)
}

// orderBy returns the ORDER BY clause for sort. id breaks ties so pages are stable.
func orderBy(sort models.SortOrder) string {
	switch sort {
	case models.SortNameAscending:
		return "products.name ASC, products.date_created DESC, products.id DESC"
	case models.SortNameDescending:
		return "products.name DESC, products.date_created DESC, products.id DESC"
	default:
		return "products.date_created DESC, products.id DESC"
	}
}

const (
	defaultPageIndex = 1
	defaultPageSize  = 10
	maxPageSize      = 100
)

// Pagination is a normalized 1-based page request.
type Pagination struct {
	Index int
	Size  int
}

// NewPagination applies defaults and the page size cap.
func NewPagination(index, size int) Pagination {
	if index <= 0 {
		index = defaultPageIndex
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Pagination{Index: index, Size: size}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Index - 1) * p.Size
}

// TotalPages returns ceil(total/size).
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}
