package models

import (
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cost types.
const (
	CostTypePayroll   = "payroll"
	CostTypeOffice    = "office"
	CostTypeSoftware  = "software"
	CostTypeMarketing = "marketing"
	CostTypeOther     = "other"
)

// Cost frequencies.
const (
	FrequencyMonthly = "monthly"
	FrequencyOneTime = "one_time"
	FrequencySpread  = "spread"
)

// Cost is a structured operating cost of a company.
type Cost struct {
	DefaultModel
	CompanyID    uuid.UUID
	Company      Company `json:"-"`
	Name         string
	CostType     string
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Frequency    string          // "monthly", "one_time" or "spread"
	StartDate    time.Time
	EndDate      *time.Time // nil means the cost is open ended
	IsContractor bool
	IsActive     bool
}

func (c *Cost) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Cost)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Cost) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave := tx.Statement.Dest.(Cost)

	if tx.Statement.Changed("CompanyID") {
		err := c.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (c *Cost) checkIntegrity(tx *gorm.DB, toSave Cost) error {
	return tx.First(&Company{}, toSave.CompanyID).Error
}

func (c *Cost) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.CostType == "" {
		c.CostType = CostTypeOther
	}

	if c.Frequency == "" {
		c.Frequency = FrequencyMonthly
	}

	if c.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return ErrCostDatesInverted
	}

	return nil
}

// span returns the cost's validity as an inclusive period. Open ended costs
// are clamped to the month being queried by the caller.
func (c Cost) span(fallbackEnd time.Time) (types.Period, error) {
	end := fallbackEnd
	if c.EndDate != nil {
		end = *c.EndDate
	}

	return types.NewPeriod(c.StartDate, end)
}

// MonthlyAmount returns the cost's contribution to one month. Monthly costs
// contribute their full amount to every overlapped month, one-time costs
// only to their start month, spread costs their amount divided over the
// calendar months of their own range.
func (c Cost) MonthlyAmount(month types.Month) decimal.Decimal {
	period, err := c.span(month.Last())
	if err != nil {
		return decimal.Zero
	}

	if !period.ContainsMonth(month) {
		return decimal.Zero
	}

	switch c.Frequency {
	case FrequencyOneTime:
		if types.MonthOf(c.StartDate).Equal(month) {
			return c.Amount
		}
		return decimal.Zero

	case FrequencySpread:
		return c.Amount.Div(decimal.NewFromInt(int64(period.MonthSpan())))

	default:
		return c.Amount
	}
}

// Expense is a flat monthly cost from the first generation of the schema.
// Read only, kept so older installations keep reporting correct numbers.
type Expense struct {
	DefaultModel
	CompanyID     uuid.UUID
	Company       Company `json:"-"`
	Name          string
	Category      string
	MonthlyAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	IsActive      bool
	StartDate     *time.Time
	EndDate       *time.Time
}

// coversMonth reports whether the expense applies to the month. Absent
// bounds mean the expense always applies.
func (e Expense) coversMonth(month types.Month) bool {
	if e.StartDate != nil && types.MonthOf(*e.StartDate).After(month) {
		return false
	}

	if e.EndDate != nil && types.MonthOf(*e.EndDate).Before(month) {
		return false
	}

	return true
}

// ContractorExpense is a per-month contractor payment from the first
// generation of the schema. Read only.
type ContractorExpense struct {
	DefaultModel
	CompanyID uuid.UUID
	Company   Company `json:"-"`
	Name      string
	Year      int
	Month     int
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// CostBreakdown splits a company's operating cost for one month.
type CostBreakdown struct {
	Payroll    decimal.Decimal `json:"payroll" example:"42000"`   // Salaries of active full and part time members
	Contractor decimal.Decimal `json:"contractor" example:"8000"` // Contractor costs
	Other      decimal.Decimal `json:"other" example:"5500"`      // Everything else
}

// Total returns the sum of all cost categories.
func (b CostBreakdown) Total() decimal.Decimal {
	return b.Payroll.Add(b.Contractor).Add(b.Other)
}

// OperatingCost computes the company's operating cost for one month.
//
// Payroll always comes from member profiles. The rest comes from structured
// Cost rows when that part of the schema exists, and from the legacy Expense
// and ContractorExpense tables otherwise. The two paths are never mixed, a
// cost entered in both generations of the schema would otherwise be counted
// twice.
func (c Company) OperatingCost(db *gorm.DB, month types.Month) (CostBreakdown, error) {
	var breakdown CostBreakdown

	var members []UserProfile
	err := db.Where(&UserProfile{CompanyID: c.ID}).
		Where("status IN ?", []string{StatusFullTime, StatusPartTime}).
		Find(&members).Error
	if err != nil {
		return CostBreakdown{}, err
	}

	for _, member := range members {
		if member.ActiveIn(month) {
			breakdown.Payroll = breakdown.Payroll.Add(member.MonthlySalaryCost)
		}
	}

	if Schema.StructuredCosts {
		err = c.structuredCosts(db, month, &breakdown)
	} else {
		err = c.legacyCosts(db, month, &breakdown)
	}
	if err != nil {
		return CostBreakdown{}, err
	}

	return breakdown, nil
}

func (c Company) structuredCosts(db *gorm.DB, month types.Month, breakdown *CostBreakdown) error {
	var costs []Cost
	err := db.Where(&Cost{CompanyID: c.ID}).
		Where("is_active = ? AND cost_type != ?", true, CostTypePayroll).
		Find(&costs).Error
	if err != nil {
		return err
	}

	for _, cost := range costs {
		amount := cost.MonthlyAmount(month)
		if amount.IsZero() {
			continue
		}

		if cost.IsContractor {
			breakdown.Contractor = breakdown.Contractor.Add(amount)
		} else {
			breakdown.Other = breakdown.Other.Add(amount)
		}
	}

	return nil
}

func (c Company) legacyCosts(db *gorm.DB, month types.Month, breakdown *CostBreakdown) error {
	var expenses []Expense
	err := db.Where(&Expense{CompanyID: c.ID}).
		Where("is_active = ?", true).
		Find(&expenses).Error
	if err != nil {
		return err
	}

	for _, expense := range expenses {
		if expense.coversMonth(month) {
			breakdown.Other = breakdown.Other.Add(expense.MonthlyAmount)
		}
	}

	var contractors []ContractorExpense
	err = db.Where(&ContractorExpense{CompanyID: c.ID}).
		Where("year = ? AND month = ?", month.Year(), int(month.Month())).
		Find(&contractors).Error
	if err != nil {
		return err
	}

	for _, contractor := range contractors {
		breakdown.Contractor = breakdown.Contractor.Add(contractor.Amount)
	}

	return nil
}
