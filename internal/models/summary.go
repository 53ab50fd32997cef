package models

import (
	"time"

	"github.com/agencydesk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthSummary is the financial and capacity summary of a company for one
// month.
type MonthSummary struct {
	Month          types.Month     `json:"month" example:"2024-03"`
	Revenue        decimal.Decimal `json:"revenue" example:"55000"`       // Booked revenue of the month
	OperatingCost  decimal.Decimal `json:"operatingCost" example:"47500"` // Payroll plus running costs
	Profit         decimal.Decimal `json:"profit" example:"7500"`
	MarginPct      decimal.Decimal `json:"marginPct" example:"13.64"`      // Profit as a percentage of revenue, 0 when revenue is 0
	AllocatedHours decimal.Decimal `json:"allocatedHours" example:"580"`   // Hours allocated across all projects
	CapacityHours  decimal.Decimal `json:"capacityHours" example:"692.8"`  // Monthly capacity of all full time members
	UtilizationPct decimal.Decimal `json:"utilizationPct" example:"83.72"` // Allocated hours as a percentage of capacity, 0 when capacity is 0
}

// YearSummary is twelve month summaries plus annual totals.
type YearSummary struct {
	Year      int             `json:"year" example:"2024"`
	Months    []MonthSummary  `json:"months"`
	Revenue   decimal.Decimal `json:"revenue" example:"660000"`
	Cost      decimal.Decimal `json:"cost" example:"570000"`
	Profit    decimal.Decimal `json:"profit" example:"90000"`
	MarginPct decimal.Decimal `json:"marginPct" example:"13.64"` // Annual profit as a percentage of annual revenue, 0 when revenue is 0
}

// allocatedHours returns the hours allocated across all of the company's
// projects for one month.
func (c Company) allocatedHours(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var hours decimal.NullDecimal

	err := db.Table("project_allocations").
		Joins("JOIN projects ON projects.id = project_allocations.project_id").
		Where("projects.company_id = ? AND project_allocations.year = ? AND project_allocations.month = ? AND project_allocations.deleted_at IS NULL", c.ID, month.Year(), int(month.Month())).
		Select("SUM(project_allocations.allocated_hours)").
		Row().
		Scan(&hours)
	if err != nil {
		return decimal.Zero, err
	}

	return hours.Decimal, nil
}

// capacityHours returns the combined monthly capacity of the company's full
// time members active in the month.
func (c Company) capacityHours(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var members []UserProfile
	err := db.Where(&UserProfile{CompanyID: c.ID}).
		Where("status = ?", StatusFullTime).
		Find(&members).Error
	if err != nil {
		return decimal.Zero, err
	}

	capacity := decimal.Zero
	for _, member := range members {
		if member.ActiveIn(month) {
			capacity = capacity.Add(member.MonthlyCapacity())
		}
	}

	return capacity, nil
}

// SummarizeMonth computes the company's summary for one month. Revenue is
// the booked part of RevenueByMonth, so a hand-entered ledger takes
// precedence here too.
func (c Company) SummarizeMonth(db *gorm.DB, month types.Month) (MonthSummary, error) {
	revenue, err := c.RevenueByMonth(db, month.Year())
	if err != nil {
		return MonthSummary{}, err
	}

	return c.summarizeMonth(db, month, revenue)
}

func (c Company) summarizeMonth(db *gorm.DB, month types.Month, revenue RevenueReport) (MonthSummary, error) {
	costs, err := c.OperatingCost(db, month)
	if err != nil {
		return MonthSummary{}, err
	}

	allocated, err := c.allocatedHours(db, month)
	if err != nil {
		return MonthSummary{}, err
	}

	capacity, err := c.capacityHours(db, month)
	if err != nil {
		return MonthSummary{}, err
	}

	summary := MonthSummary{
		Month:          month,
		Revenue:        revenue.Months[int(month.Month())-1].Booked,
		OperatingCost:  costs.Total(),
		AllocatedHours: allocated,
		CapacityHours:  capacity,
	}

	summary.Profit = summary.Revenue.Sub(summary.OperatingCost)

	if summary.Revenue.IsPositive() {
		summary.MarginPct = summary.Profit.Div(summary.Revenue).Mul(decimal.NewFromInt(100))
	}

	if summary.CapacityHours.IsPositive() {
		summary.UtilizationPct = summary.AllocatedHours.Div(summary.CapacityHours).Mul(decimal.NewFromInt(100))
	}

	return summary, nil
}

// SummarizeYear computes twelve month summaries and the annual totals. The
// revenue report is fetched once for the whole year.
func (c Company) SummarizeYear(db *gorm.DB, year int) (YearSummary, error) {
	revenue, err := c.RevenueByMonth(db, year)
	if err != nil {
		return YearSummary{}, err
	}

	summary := YearSummary{
		Year:   year,
		Months: make([]MonthSummary, 0, 12),
	}

	for m := 1; m <= 12; m++ {
		month, err := c.summarizeMonth(db, types.NewMonth(year, time.Month(m)), revenue)
		if err != nil {
			return YearSummary{}, err
		}

		summary.Months = append(summary.Months, month)
		summary.Revenue = summary.Revenue.Add(month.Revenue)
		summary.Cost = summary.Cost.Add(month.OperatingCost)
	}

	summary.Profit = summary.Revenue.Sub(summary.Cost)

	if summary.Revenue.IsPositive() {
		summary.MarginPct = summary.Profit.Div(summary.Revenue).Mul(decimal.NewFromInt(100))
	}

	return summary, nil
}

// CapacitySnapshot is a recorded capacity computation, written when a
// capacity report is asked to persist its result.
type CapacitySnapshot struct {
	DefaultModel
	CompanyID          uuid.UUID       `gorm:"uniqueIndex:capacity_company_month"`
	Company            Company         `json:"-"`
	Year               int             `gorm:"uniqueIndex:capacity_company_month"`
	Month              int             `gorm:"uniqueIndex:capacity_company_month"`
	TotalCapacityHours decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AllocatedHours     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	UtilizationPct     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// CapacityReport is the capacity view of one month.
type CapacityReport struct {
	Month          types.Month     `json:"month" example:"2024-03"`
	CapacityHours  decimal.Decimal `json:"capacityHours" example:"692.8"`
	AllocatedHours decimal.Decimal `json:"allocatedHours" example:"580"`
	UtilizationPct decimal.Decimal `json:"utilizationPct" example:"83.72"`
}

// Capacity computes the company's capacity report for one month. With
// persist set, the result is also upserted as a CapacitySnapshot.
func (c Company) Capacity(db *gorm.DB, month types.Month, persist bool) (CapacityReport, error) {
	capacity, err := c.capacityHours(db, month)
	if err != nil {
		return CapacityReport{}, err
	}

	allocated, err := c.allocatedHours(db, month)
	if err != nil {
		return CapacityReport{}, err
	}

	report := CapacityReport{
		Month:          month,
		CapacityHours:  capacity,
		AllocatedHours: allocated,
	}

	if report.CapacityHours.IsPositive() {
		report.UtilizationPct = report.AllocatedHours.Div(report.CapacityHours).Mul(decimal.NewFromInt(100))
	}

	if !persist {
		return report, nil
	}

	snapshot := CapacitySnapshot{
		CompanyID:          c.ID,
		Year:               month.Year(),
		Month:              int(month.Month()),
		TotalCapacityHours: report.CapacityHours,
		AllocatedHours:     report.AllocatedHours,
		UtilizationPct:     report.UtilizationPct,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("company_id = ? AND year = ? AND month = ?", c.ID, snapshot.Year, snapshot.Month).
			Delete(&CapacitySnapshot{}).Error
		if err != nil {
			return err
		}

		return tx.Create(&snapshot).Error
	})
	if err != nil {
		return CapacityReport{}, err
	}

	return report, nil
}
