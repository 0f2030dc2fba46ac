package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BatchSortFields contains allowed sort fields for production batches
var BatchSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"batch_number":    true,
	"product_name":    true,
	"status":          true,
	"start_date":      true,
	"completion_date": true,
	"total_cost":      true,
	"cost_per_unit":   true,
}

// OverheadRateSortFields contains allowed sort fields for overhead rates
var OverheadRateSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"rate_per_unit":  true,
	"rate_per_hour":  true,
	"effective_from": true,
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"product_name":     true,
	"quantity_on_hand": true,
	"total_value":      true,
	"last_updated":     true,
}

// SaleSortFields contains allowed sort fields for sales
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"sale_number":    true,
	"customer_name":  true,
	"sale_date":      true,
	"total_revenue":  true,
	"gross_profit":   true,
	"payment_status": true,
	"amount_due":     true,
}

// CashflowSortFields contains allowed sort fields for cashflow entries
var CashflowSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"transaction_date": true,
	"type":             true,
	"category":         true,
	"amount":           true,
}

// OwnerSortFields contains allowed sort fields for owners
var OwnerSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"owner_name":       true,
	"total_investment": true,
}

// BudgetPlanSortFields contains allowed sort fields for budget plans
var BudgetPlanSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"plan_name":    true,
	"period_start": true,
	"period_end":   true,
}

// ZakatRecordSortFields contains allowed sort fields for zakat records
var ZakatRecordSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"calculation_date": true,
	"gregorian_year":   true,
	"status":           true,
}
