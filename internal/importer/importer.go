// Package importer provides the parsing of revenue spreadsheets into
// ledger entries.
package importer

import (
	"github.com/agencydesk/backend/internal/models"
)

// RevenuePreview is a row from an uploaded revenue file together with the
// names it referenced. The names are resolved against the company's clients
// and projects before the entry is saved.
type RevenuePreview struct {
	Entry       models.MonthlyRevenue `json:"entry"`       // The ledger entry parsed from the row
	ClientName  string                `json:"clientName"`  // Client name referenced in the row, may contain * wildcards
	ProjectName string                `json:"projectName"` // Project name referenced in the row, may contain * wildcards
}
