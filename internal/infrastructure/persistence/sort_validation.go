package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" for empty or invalid input, matching shared.PageRequest.Normalize.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// computedSortFields are select-list aliases, ordered by name without a table prefix
var computedSortFields = map[string]bool{
	"products_count": true,
}

// orderClause builds a safe ORDER BY clause for table from user input
func orderClause(table, field, dir string, allowed map[string]bool, defaultField string) string {
	column := ValidateSortField(field, allowed, defaultField)
	if !computedSortFields[column] {
		column = table + "." + column
	}
	return column + " " + ValidateSortOrder(dir)
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"title":       true,
	"unit_price":  true,
	"inventory":   true,
	"last_update": true,
}

// CollectionSortFields contains allowed sort fields for collections
var CollectionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"title":          true,
	"products_count": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"first_name": true,
	"last_name":  true,
	"email":      true,
	"membership": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"placed_at":      true,
	"payment_status": true,
}

// ReviewSortFields contains allowed sort fields for reviews
var ReviewSortFields = map[string]bool{
	"date":       true,
	"created_at": true,
	"name":       true,
}

// TagSortFields contains allowed sort fields for tags
var TagSortFields = map[string]bool{
	"label":      true,
	"created_at": true,
}
