package revenuecsv

// The column order of revenue CSV exports.
const (
	Month int = iota
	Client
	Project
	Type
	Amount
	Note
)
